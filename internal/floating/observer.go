package floating

// Observer receives every lifecycle transition of every window in a
// registry. All calls happen on the UI thread, synchronously inside the
// transition that triggers them.
type Observer interface {
	OnLoaded(w Window)
	OnWillAppear(w Window)
	OnDidAppear(w Window)

	OnWillDrag(w Window)
	OnDragging(w Window)
	OnDidDrag(w Window)

	OnSelected(w Window)
	OnDeselected(w Window)

	OnWillMinimize(w Window)
	OnDidMinimize(w Window)
	OnWillRestore(w Window)
	OnDidRestore(w Window)

	OnWillDisappear(w Window)
	OnDidDisappear(w Window)

	// OnAllClosed fires when the registry goes from one or more live
	// windows to none.
	OnAllClosed()
}

// LayoutObserver is an optional extension of Observer. When the registry's
// observer implements it, OnWillLayout and OnDidLayout fire during Present
// between OnWillAppear and OnDidAppear.
type LayoutObserver interface {
	OnWillLayout(w Window)
	OnDidLayout(w Window)
}

// NopObserver implements Observer with empty methods. Embed it to
// override only the callbacks you need.
type NopObserver struct{}

func (NopObserver) OnLoaded(Window)        {}
func (NopObserver) OnWillAppear(Window)    {}
func (NopObserver) OnDidAppear(Window)     {}
func (NopObserver) OnWillDrag(Window)      {}
func (NopObserver) OnDragging(Window)      {}
func (NopObserver) OnDidDrag(Window)       {}
func (NopObserver) OnSelected(Window)      {}
func (NopObserver) OnDeselected(Window)    {}
func (NopObserver) OnWillMinimize(Window)  {}
func (NopObserver) OnDidMinimize(Window)   {}
func (NopObserver) OnWillRestore(Window)   {}
func (NopObserver) OnDidRestore(Window)    {}
func (NopObserver) OnWillDisappear(Window) {}
func (NopObserver) OnDidDisappear(Window)  {}
func (NopObserver) OnAllClosed()           {}

var _ Observer = NopObserver{}

// Observers fans every callback out to each of obs, in order.
func Observers(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (m multiObserver) each(fn func(Observer)) {
	for _, o := range m {
		if o != nil {
			fn(o)
		}
	}
}

func (m multiObserver) OnLoaded(w Window)     { m.each(func(o Observer) { o.OnLoaded(w) }) }
func (m multiObserver) OnWillAppear(w Window) { m.each(func(o Observer) { o.OnWillAppear(w) }) }
func (m multiObserver) OnDidAppear(w Window)  { m.each(func(o Observer) { o.OnDidAppear(w) }) }
func (m multiObserver) OnWillDrag(w Window)   { m.each(func(o Observer) { o.OnWillDrag(w) }) }
func (m multiObserver) OnDragging(w Window)   { m.each(func(o Observer) { o.OnDragging(w) }) }
func (m multiObserver) OnDidDrag(w Window)    { m.each(func(o Observer) { o.OnDidDrag(w) }) }
func (m multiObserver) OnSelected(w Window)   { m.each(func(o Observer) { o.OnSelected(w) }) }
func (m multiObserver) OnDeselected(w Window) { m.each(func(o Observer) { o.OnDeselected(w) }) }
func (m multiObserver) OnWillMinimize(w Window) {
	m.each(func(o Observer) { o.OnWillMinimize(w) })
}
func (m multiObserver) OnDidMinimize(w Window) { m.each(func(o Observer) { o.OnDidMinimize(w) }) }
func (m multiObserver) OnWillRestore(w Window) { m.each(func(o Observer) { o.OnWillRestore(w) }) }
func (m multiObserver) OnDidRestore(w Window)  { m.each(func(o Observer) { o.OnDidRestore(w) }) }
func (m multiObserver) OnWillDisappear(w Window) {
	m.each(func(o Observer) { o.OnWillDisappear(w) })
}
func (m multiObserver) OnDidDisappear(w Window) {
	m.each(func(o Observer) { o.OnDidDisappear(w) })
}
func (m multiObserver) OnAllClosed() { m.each(func(o Observer) { o.OnAllClosed() }) }

func (m multiObserver) OnWillLayout(w Window) {
	m.each(func(o Observer) {
		if lo, ok := o.(LayoutObserver); ok {
			lo.OnWillLayout(w)
		}
	})
}

func (m multiObserver) OnDidLayout(w Window) {
	m.each(func(o Observer) {
		if lo, ok := o.(LayoutObserver); ok {
			lo.OnDidLayout(w)
		}
	})
}
