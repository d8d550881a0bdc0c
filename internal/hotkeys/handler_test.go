package hotkeys

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeBinder struct {
	bound map[string]func()
	fail  map[string]bool
}

func (f *fakeBinder) Bind(keys string, fn func()) error {
	if f.fail[keys] {
		return errors.New("grab failed")
	}
	if f.bound == nil {
		f.bound = make(map[string]func())
	}
	f.bound[keys] = fn
	return nil
}

func TestBindAll(t *testing.T) {
	var fired []string
	actions := map[string]func(){
		"minimize_all": func() { fired = append(fired, "minimize_all") },
		"cycle":        func() { fired = append(fired, "cycle") },
	}
	b := &fakeBinder{}
	err := BindAll(b, map[string]string{
		"minimize_all": "Mod4-Shift-m",
		"cycle":        " Mod4-grave ",
		"restore_all":  "",
	}, actions)
	if err != nil {
		t.Fatalf("BindAll: %v", err)
	}
	if len(b.bound) != 2 {
		t.Fatalf("bound = %v, want 2 bindings", b.bound)
	}
	b.bound["Mod4-grave"]()
	b.bound["Mod4-Shift-m"]()
	if !reflect.DeepEqual(fired, []string{"cycle", "minimize_all"}) {
		t.Errorf("fired = %v", fired)
	}
}

func TestBindAll_CollectsFailures(t *testing.T) {
	b := &fakeBinder{fail: map[string]bool{"Mod4-x": true}}
	err := BindAll(b, map[string]string{
		"close_active": "Mod4-x",
		"tile":         "Mod4-t",
		"cycle":        "Mod4-grave",
	}, map[string]func(){
		"close_active": func() {},
		"cycle":        func() {},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"close_active (Mod4-x): grab failed", "tile: unknown action"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if _, ok := b.bound["Mod4-grave"]; !ok {
		t.Error("valid binding skipped after a failure")
	}
}

func TestIgnoreMasks(t *testing.T) {
	tests := []struct {
		base []uint16
		want []uint16
	}{
		{[]uint16{2}, []uint16{0, 2}},
		{[]uint16{2, 16}, []uint16{0, 2, 16, 18}},
		{[]uint16{2, 16, 128}, []uint16{0, 2, 16, 18, 128, 130, 144, 146}},
	}
	for _, tt := range tests {
		if got := ignoreMasks(tt.base); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ignoreMasks(%v) = %v, want %v", tt.base, got, tt.want)
		}
	}
}
