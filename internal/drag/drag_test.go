package drag

import (
	"fmt"
	"reflect"
	"testing"
)

type recordingTarget struct {
	calls    []string
	refuse   bool
	dragging bool
}

func (r *recordingTarget) DragBegin() {
	r.calls = append(r.calls, "begin")
	r.dragging = !r.refuse
}
func (r *recordingTarget) DragMove(dx, dy float64) {
	r.calls = append(r.calls, fmt.Sprintf("move %.0f,%.0f", dx, dy))
}
func (r *recordingTarget) DragEnd() {
	r.calls = append(r.calls, "end")
	r.dragging = false
}
func (r *recordingTarget) IsDragging() bool { return r.dragging }

func TestController_Sequence(t *testing.T) {
	target := &recordingTarget{}
	var moved [][2]float64
	c := NewController(target, func(dx, dy float64) {
		moved = append(moved, [2]float64{dx, dy})
	})

	c.Begin(10, 10)
	c.Move(15, 12)
	c.Move(15, 12)
	c.Move(12, 20)
	c.End(13, 20)

	want := []string{"begin", "move 5,2", "move -3,8", "move 1,0", "end"}
	if !reflect.DeepEqual(target.calls, want) {
		t.Errorf("calls = %v, want %v", target.calls, want)
	}
	wantMoved := [][2]float64{{5, 2}, {-3, 8}, {1, 0}}
	if !reflect.DeepEqual(moved, wantMoved) {
		t.Errorf("moved = %v, want %v", moved, wantMoved)
	}
	if c.IsDragging() {
		t.Errorf("still dragging after End")
	}
}

func TestController_IgnoresOutOfOrderEvents(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Controller)
		want []string
	}{
		{"move without begin", func(c *Controller) { c.Move(1, 1) }, nil},
		{"end without begin", func(c *Controller) { c.End(1, 1) }, nil},
		{"cancel without begin", func(c *Controller) { c.Cancel() }, nil},
		{"double begin", func(c *Controller) {
			c.Begin(0, 0)
			c.Begin(5, 5)
			c.Move(6, 6)
		}, []string{"begin", "move 6,6"}},
		{"end twice", func(c *Controller) {
			c.Begin(0, 0)
			c.End(0, 0)
			c.End(3, 3)
		}, []string{"begin", "end"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &recordingTarget{}
			c := NewController(target, nil)
			tt.run(c)
			if !reflect.DeepEqual(target.calls, tt.want) {
				t.Errorf("calls = %v, want %v", target.calls, tt.want)
			}
		})
	}
}

func TestController_RefusedBegin(t *testing.T) {
	target := &recordingTarget{refuse: true}
	moved := 0
	c := NewController(target, func(dx, dy float64) { moved++ })

	if c.Begin(0, 0) {
		t.Errorf("Begin accepted a refused drag")
	}
	c.Move(10, 10)
	c.End(20, 20)

	if want := []string{"begin"}; !reflect.DeepEqual(target.calls, want) {
		t.Errorf("calls = %v, want %v", target.calls, want)
	}
	if moved != 0 || c.IsDragging() {
		t.Errorf("moved = %d, dragging = %v after a refused begin", moved, c.IsDragging())
	}
}

func TestController_TargetDropsDrag(t *testing.T) {
	target := &recordingTarget{}
	moved := 0
	c := NewController(target, func(dx, dy float64) { moved++ })

	if !c.Begin(0, 0) {
		t.Fatal("Begin refused")
	}
	c.Move(5, 5)
	target.dragging = false
	c.Move(10, 10)
	c.End(20, 20)

	if want := []string{"begin", "move 5,5"}; !reflect.DeepEqual(target.calls, want) {
		t.Errorf("calls = %v, want %v", target.calls, want)
	}
	if moved != 1 || c.State() != StateIdle {
		t.Errorf("moved = %d, state = %v", moved, c.State())
	}
}

func TestController_Cancel(t *testing.T) {
	target := &recordingTarget{}
	c := NewController(target, nil)
	c.Begin(0, 0)
	c.Cancel()

	if want := []string{"begin", "end"}; !reflect.DeepEqual(target.calls, want) {
		t.Errorf("calls = %v, want %v", target.calls, want)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestState_String(t *testing.T) {
	if StateIdle.String() != "idle" || StateDragging.String() != "dragging" || State(7).String() != "unknown" {
		t.Errorf("unexpected State strings")
	}
}
