package x11

import (
	"sync"
	"time"

	"github.com/1broseidon/floatkit/internal/floating"
)

// animation is one running tween. Frames are computed on the UI thread;
// the ticker goroutine only posts them.
type animation struct {
	id       floating.ID
	start    time.Time
	duration time.Duration
	from     keyframe
	to       keyframe
	origin   floating.Rect
	done     func()
	finished bool

	stop     chan struct{}
	stopOnce sync.Once
}

func (a *animation) cancel() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// Animate tweens the window's center, scale and alpha to the animation's
// targets, one frame per FrameInterval, and calls done on the UI thread
// after the last frame.
func (h *Host) Animate(a floating.Animation, done func()) {
	v, ok := h.views[a.Window]
	if !ok {
		done()
		return
	}
	to := keyframe{Center: a.Center, Scale: a.Scale, Alpha: a.Alpha}
	if a.Duration <= 0 {
		h.apply(v, a.From, to)
		done()
		return
	}
	if v.anim != nil {
		v.anim.cancel()
	}

	an := &animation{
		id:       a.Window,
		start:    time.Now(),
		duration: a.Duration,
		from:     keyframe{Center: a.From.Center(), Scale: v.scale, Alpha: v.alpha},
		to:       to,
		origin:   a.From,
		done:     done,
		stop:     make(chan struct{}),
	}
	v.anim = an

	go func() {
		ticker := time.NewTicker(h.opts.FrameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := h.loop.Post(func() { h.frame(an) }); err != nil {
					return
				}
			case <-an.stop:
				return
			}
		}
	}()
}

func (h *Host) frame(an *animation) {
	if an.finished {
		return
	}
	t := float64(time.Since(an.start)) / float64(an.duration)
	if t > 1 {
		t = 1
	}
	if v, ok := h.views[an.id]; ok {
		h.apply(v, an.origin, tween(an.from, an.to, t))
	}
	if t < 1 {
		return
	}
	an.finished = true
	an.cancel()
	if v, ok := h.views[an.id]; ok && v.anim == an {
		v.anim = nil
	}
	an.done()
}

// apply sets the view's logical frame to origin centered on k and redraws
// the X window at k's scale.
func (h *Host) apply(v *view, origin floating.Rect, k keyframe) {
	wasScaled := v.scale < 1
	v.frame = origin.WithCenter(k.Center)
	v.scale = k.Scale
	v.alpha = k.Alpha
	h.place(v)
	if wasScaled && v.scale >= 1 {
		h.drawTitle(v)
	}
}
