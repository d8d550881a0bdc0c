package x11

import "github.com/1broseidon/floatkit/internal/floating"

// keyframe is the animatable state of one window.
type keyframe struct {
	Center floating.Point
	Scale  float64
	Alpha  float64
}

// easeInOut is the smoothstep curve: slow start, slow finish.
func easeInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// tween returns the state at progress t in [0,1] between from and to.
func tween(from, to keyframe, t float64) keyframe {
	e := easeInOut(t)
	return keyframe{
		Center: floating.Point{
			X: lerp(from.Center.X, to.Center.X, e),
			Y: lerp(from.Center.Y, to.Center.Y, e),
		},
		Scale: lerp(from.Scale, to.Scale, e),
		Alpha: lerp(from.Alpha, to.Alpha, e),
	}
}

// scaled returns r scaled by s about its center, never smaller than one
// pixel in either direction.
func scaled(r floating.Rect, s float64) floating.Rect {
	w := max(r.Width*s, 1)
	h := max(r.Height*s, 1)
	return floating.Rect{Width: w, Height: h}.WithCenter(r.Center())
}

type decoration int

const (
	decorBody decoration = iota
	decorTitle
	decorMinimize
	decorClose
)

// decorationAt classifies a press at (x, y) inside a window of the given
// width. The title strip is titleHeight tall; its two rightmost squares
// are the close and minimize buttons.
func decorationAt(width, titleHeight, x, y float64) decoration {
	if titleHeight <= 0 || y < 0 || y >= titleHeight {
		return decorBody
	}
	switch {
	case x >= width-titleHeight:
		return decorClose
	case x >= width-2*titleHeight:
		return decorMinimize
	default:
		return decorTitle
	}
}
