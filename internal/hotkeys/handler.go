// Package hotkeys binds global X11 key sequences to floatkit actions.
package hotkeys

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Binder attaches a key sequence to a callback.
type Binder interface {
	Bind(keys string, fn func()) error
}

// Handler grabs key sequences on the root window.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ Binder = (*Handler)(nil)

var ignoreModsOnce sync.Once

// NewHandler prepares xu for key grabs on root.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window) *Handler {
	keybind.Initialize(xu)
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})
	return &Handler{xu: xu, root: root}
}

// Bind grabs keys globally. fn runs on the X event thread.
func (h *Handler) Bind(keys string, fn func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		fn()
	}).Connect(h.xu, h.root, keys, true)
}

// BindAll binds every action in bindings (action -> keys) that has a
// callback in actions. Unknown actions and failed grabs are collected into
// one error; the remaining bindings still take effect.
func BindAll(b Binder, bindings map[string]string, actions map[string]func()) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var failed []string
	for _, name := range names {
		keys := strings.TrimSpace(bindings[name])
		if keys == "" {
			continue
		}
		fn, ok := actions[name]
		if !ok {
			failed = append(failed, fmt.Sprintf("%s: unknown action", name))
			continue
		}
		if err := b.Bind(keys, fn); err != nil {
			failed = append(failed, fmt.Sprintf("%s (%s): %v", name, keys, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("hotkeys: %s", strings.Join(failed, "; "))
	}
	return nil
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}
	xevent.IgnoreMods = ignoreMasks(base)
}

// ignoreMasks returns every combination of base, including none.
func ignoreMasks(base []uint16) []uint16 {
	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}
	out := make([]uint16, 0, len(unique))
	for mask := range unique {
		out = append(out, mask)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
