package x11

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/floatkit/internal/drag"
	"github.com/1broseidon/floatkit/internal/floating"
	"github.com/1broseidon/floatkit/internal/hotkeys"
	"github.com/1broseidon/floatkit/internal/uiloop"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

const colorTitleText uint32 = 0xffffff

// Input receives clicks on floating windows.
type Input interface {
	Tap(id floating.ID)
	DragTarget(id floating.ID) drag.Target
	CloseRequested(id floating.ID)
	MinimizeRequested(id floating.ID)
}

// Options controls how windows are drawn.
type Options struct {
	DeskTitle      string
	DeskBackground uint32
	Background     uint32
	ActiveBorder   uint32
	InactiveBorder uint32
	BorderWidth    int
	TitleHeight    int
	FrameInterval  time.Duration
	Logger         *slog.Logger
}

type view struct {
	win    xproto.Window
	frame  floating.Rect
	hidden bool
	title  string
	active bool
	scale  float64
	alpha  float64
	drag   *drag.Controller
	anim   *animation
}

// Host draws floating windows as children of a desk window. All methods
// except NewHost must run on the UI thread, i.e. inside loop tasks or X
// callbacks dispatched by Run.
type Host struct {
	conn   *Connection
	loop   *uiloop.Loop
	opts   Options
	logger *slog.Logger

	desk   xproto.Window
	bounds floating.Rect
	font   xproto.Font
	gc     xproto.Gcontext
	text   bool

	views map[floating.ID]*view
	order []floating.ID
	taps  []func(floating.Point)
	input Input
	keys  *hotkeys.Handler
}

// NewHost creates and maps the desk window on the monitor under the pointer.
func NewHost(conn *Connection, loop *uiloop.Loop, opts Options) (*Host, error) {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if opts.DeskTitle == "" {
		opts.DeskTitle = "floatkit"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	area, err := conn.DeskArea()
	if err != nil {
		return nil, err
	}

	h := &Host{
		conn:   conn,
		loop:   loop,
		opts:   opts,
		logger: logger,
		bounds: floating.Rect{Width: area.Width, Height: area.Height},
		views:  make(map[floating.ID]*view),
	}
	if err := h.createDesk(area); err != nil {
		return nil, err
	}
	h.text = h.openFont()
	return h, nil
}

func (h *Host) createDesk(area floating.Rect) error {
	xu := h.conn.XUtil
	c := xu.Conn()
	screen := xu.Screen()

	wid, err := xproto.NewWindowId(c)
	if err != nil {
		return fmt.Errorf("allocate desk window: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c,
		screen.RootDepth,
		wid,
		h.conn.Root,
		int16(area.X), int16(area.Y),
		uint16(area.Width), uint16(area.Height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			h.opts.DeskBackground,
			xproto.EventMaskButtonPress | xproto.EventMaskStructureNotify,
		},
	).Check()
	if err != nil {
		return fmt.Errorf("create desk window: %w", err)
	}
	h.desk = wid

	if err := ewmh.WmNameSet(xu, wid, h.opts.DeskTitle); err != nil {
		h.logger.Debug("set desk _NET_WM_NAME failed", "error", err)
	}
	_ = icccm.WmNameSet(xu, wid, h.opts.DeskTitle)
	_ = icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: "floatkit", Class: "Floatkit"})
	if err := icccm.WmProtocolsSet(xu, wid, []string{"WM_DELETE_WINDOW"}); err != nil {
		h.logger.Debug("set WM_PROTOCOLS failed", "error", err)
	}

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if ev.Detail != xproto.ButtonIndex1 {
			return
		}
		h.deskTap(floating.Point{X: float64(ev.EventX), Y: float64(ev.EventY)})
	}).Connect(xu, wid)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		h.bounds = floating.Rect{Width: float64(ev.Width), Height: float64(ev.Height)}
	}).Connect(xu, wid)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if ev.Format != 32 {
			return
		}
		del, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
		if err != nil || ev.Data.Data32[0] != uint32(del) {
			return
		}
		h.logger.Info("desk window closed")
		h.loop.Stop()
	}).Connect(xu, wid)

	return xproto.MapWindowChecked(c, wid).Check()
}

func (h *Host) openFont() bool {
	c := h.conn.XUtil.Conn()
	font, err := xproto.NewFontId(c)
	if err != nil {
		return false
	}
	opened := false
	for _, name := range []string{"fixed", "9x15", "8x13", "6x13"} {
		if xproto.OpenFontChecked(c, font, uint16(len(name)), name).Check() == nil {
			opened = true
			break
		}
	}
	if !opened {
		h.logger.Warn("no core X font available; title bars will not be drawn")
		return false
	}
	gc, err := xproto.NewGcontextId(c)
	if err != nil {
		xproto.CloseFont(c, font)
		return false
	}
	err = xproto.CreateGCChecked(
		c,
		gc,
		xproto.Drawable(h.desk),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{colorTitleText, h.opts.InactiveBorder, uint32(font), 0},
	).Check()
	if err != nil {
		xproto.CloseFont(c, font)
		return false
	}
	h.font = font
	h.gc = gc
	return true
}

// SetInput installs the receiver for window clicks.
func (h *Host) SetInput(in Input) { h.input = in }

func (h *Host) Bounds() floating.Rect { return h.bounds }

func (h *Host) Attach(id floating.ID, frame floating.Rect, _ int) error {
	if _, ok := h.views[id]; ok {
		return fmt.Errorf("view %s already attached", id.Short())
	}
	if frame.Width < 1 || frame.Height < 1 {
		return fmt.Errorf("view %s has empty frame %vx%v", id.Short(), frame.Width, frame.Height)
	}

	xu := h.conn.XUtil
	c := xu.Conn()
	screen := xu.Screen()
	wid, err := xproto.NewWindowId(c)
	if err != nil {
		return fmt.Errorf("allocate window: %w", err)
	}
	err = xproto.CreateWindowChecked(
		c,
		screen.RootDepth,
		wid,
		h.desk,
		int16(frame.X), int16(frame.Y),
		uint16(frame.Width), uint16(frame.Height),
		uint16(h.opts.BorderWidth),
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		[]uint32{h.opts.Background, h.opts.InactiveBorder, xproto.EventMaskExposure},
	).Check()
	if err != nil {
		return fmt.Errorf("create window %s: %w", id.Short(), err)
	}

	v := &view{win: wid, frame: frame, scale: 1, alpha: 1}
	h.views[id] = v
	h.order = append(h.order, id)

	xevent.ExposeFun(func(*xgbutil.XUtil, xevent.ExposeEvent) {
		h.drawTitle(v)
	}).Connect(xu, wid)

	mousebind.Drag(xu, h.conn.Root, wid, "1", true,
		func(_ *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			return h.press(id, rootX, rootY, eventX, eventY), 0
		},
		func(_ *xgbutil.XUtil, rootX, rootY, _, _ int) {
			if v.drag != nil {
				v.drag.Move(float64(rootX), float64(rootY))
			}
		},
		func(_ *xgbutil.XUtil, rootX, rootY, _, _ int) {
			if v.drag != nil {
				v.drag.End(float64(rootX), float64(rootY))
				v.drag = nil
			}
		},
	)

	xproto.MapWindow(c, wid)
	return nil
}

// press routes a button press on a window and reports whether a title bar
// drag starts.
func (h *Host) press(id floating.ID, rootX, rootY, eventX, eventY int) bool {
	v, ok := h.views[id]
	if !ok || h.input == nil {
		return false
	}
	switch decorationAt(v.frame.Width, float64(h.opts.TitleHeight), float64(eventX), float64(eventY)) {
	case decorClose:
		h.input.CloseRequested(id)
		return false
	case decorMinimize:
		h.input.MinimizeRequested(id)
		return false
	case decorTitle:
		if target := h.input.DragTarget(id); target != nil {
			c := drag.NewController(target, func(dx, dy float64) { h.move(id, dx, dy) })
			if !c.Begin(float64(rootX), float64(rootY)) {
				return false
			}
			v.drag = c
			return true
		}
	}
	h.input.Tap(id)
	return false
}

func (h *Host) deskTap(p floating.Point) {
	for _, fn := range h.taps {
		fn(p)
	}
}

func (h *Host) Detach(id floating.ID) {
	v, ok := h.views[id]
	if !ok {
		return
	}
	if v.anim != nil {
		v.anim.cancel()
	}
	xu := h.conn.XUtil
	mousebind.Detach(xu, v.win)
	xevent.Detach(xu, v.win)
	xproto.DestroyWindow(xu.Conn(), v.win)
	delete(h.views, id)
	h.removeOrder(id)
}

func (h *Host) Raise(id floating.ID) {
	v, ok := h.views[id]
	if !ok {
		return
	}
	xproto.ConfigureWindow(h.conn.XUtil.Conn(), v.win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	h.removeOrder(id)
	h.order = append(h.order, id)
}

func (h *Host) SetHidden(id floating.ID, hidden bool) {
	v, ok := h.views[id]
	if !ok || v.hidden == hidden {
		return
	}
	v.hidden = hidden
	if hidden {
		xproto.UnmapWindow(h.conn.XUtil.Conn(), v.win)
	} else {
		xproto.MapWindow(h.conn.XUtil.Conn(), v.win)
	}
}

func (h *Host) Frame(id floating.ID) (floating.Rect, bool) {
	v, ok := h.views[id]
	if !ok {
		return floating.Rect{}, false
	}
	return v.frame, true
}

func (h *Host) HitTest(p floating.Point) (floating.ID, bool) {
	for i := len(h.order) - 1; i >= 0; i-- {
		id := h.order[i]
		if v := h.views[id]; !v.hidden && v.frame.Contains(p) {
			return id, true
		}
	}
	return "", false
}

func (h *Host) OnTap(fn func(floating.Point)) {
	h.taps = append(h.taps, fn)
}

func (h *Host) SetTitle(id floating.ID, title string) {
	v, ok := h.views[id]
	if !ok {
		return
	}
	v.title = title
	h.drawTitle(v)
}

func (h *Host) SetActive(id floating.ID, active bool) {
	v, ok := h.views[id]
	if !ok {
		return
	}
	v.active = active
	xproto.ChangeWindowAttributes(h.conn.XUtil.Conn(), v.win, xproto.CwBorderPixel, []uint32{h.borderColor(v)})
	h.drawTitle(v)
}

// Name reports the X display.
func (h *Host) Name() string { return "x11:" + h.conn.Display }

// Bind grabs a global key sequence such as "Mod4-Shift-m". fn runs on the
// UI thread.
func (h *Host) Bind(keys string, fn func()) error {
	if h.keys == nil {
		h.keys = hotkeys.NewHandler(h.conn.XUtil, h.conn.Root)
	}
	return h.keys.Bind(keys, fn)
}

// Run dispatches X events and loop tasks until ctx ends or loop stops.
func (h *Host) Run(ctx context.Context, loop *uiloop.Loop) error {
	return h.conn.Run(ctx, loop)
}

// Close destroys every window and disconnects.
func (h *Host) Close() {
	c := h.conn.XUtil.Conn()
	for id := range h.views {
		h.Detach(id)
	}
	if h.text {
		xproto.FreeGC(c, h.gc)
		xproto.CloseFont(c, h.font)
	}
	xevent.Detach(h.conn.XUtil, h.desk)
	xproto.DestroyWindow(c, h.desk)
	h.conn.Close()
}

func (h *Host) borderColor(v *view) uint32 {
	if v.active {
		return h.opts.ActiveBorder
	}
	return h.opts.InactiveBorder
}

// place moves the X window to the view's logical frame at its current scale.
func (h *Host) place(v *view) {
	r := scaled(v.frame, v.scale)
	xproto.ConfigureWindow(
		h.conn.XUtil.Conn(),
		v.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(int32(r.X)),
			uint32(int32(r.Y)),
			uint32(r.Width),
			uint32(r.Height),
		},
	)
}

func (h *Host) move(id floating.ID, dx, dy float64) {
	v, ok := h.views[id]
	if !ok {
		return
	}
	v.frame.X += dx
	v.frame.Y += dy
	h.place(v)
}

// drawTitle paints the title strip with the caption and the minimize and
// close glyphs.
func (h *Host) drawTitle(v *view) {
	th := h.opts.TitleHeight
	if th <= 0 || v.scale < 1 || !h.text {
		return
	}
	c := h.conn.XUtil.Conn()
	bar := h.borderColor(v)
	width := int(v.frame.Width)

	xproto.ChangeGC(c, h.gc, xproto.GcForeground, []uint32{bar})
	xproto.PolyFillRectangle(c, xproto.Drawable(v.win), h.gc, []xproto.Rectangle{
		{X: 0, Y: 0, Width: uint16(width), Height: uint16(th)},
	})
	xproto.ChangeGC(c, h.gc, xproto.GcForeground|xproto.GcBackground, []uint32{colorTitleText, bar})

	baseline := int16(th/2 + 4)
	title := v.title
	if fit := (width - 2*th - 8) / 6; fit < len(title) {
		title = title[:max(fit, 0)]
	}
	if len(title) > 255 {
		title = title[:255]
	}
	if title != "" {
		xproto.ImageText8(c, byte(len(title)), xproto.Drawable(v.win), h.gc, 6, baseline, title)
	}
	xproto.ImageText8(c, 1, xproto.Drawable(v.win), h.gc, int16(width-2*th+th/2-3), baseline, "_")
	xproto.ImageText8(c, 1, xproto.Drawable(v.win), h.gc, int16(width-th+th/2-3), baseline, "x")
}

func (h *Host) removeOrder(id floating.ID) {
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			return
		}
	}
}
