package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/floatkit/internal/config"
	"github.com/1broseidon/floatkit/internal/ipc"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		arg      string
		byID     bool
		wantSlot int
		wantID   string
	}{
		{"0", false, 0, ""},
		{"3", false, 3, ""},
		{"3", true, -1, "3"},
		{"ab12", false, -1, "ab12"},
		{"-1", false, -1, "-1"},
	}
	for _, tt := range tests {
		sel := parseSelector(tt.arg, tt.byID)
		if tt.wantSlot >= 0 {
			if sel.Slot == nil || *sel.Slot != tt.wantSlot || sel.ID != "" {
				t.Errorf("parseSelector(%q, %v) = %+v, want slot %d", tt.arg, tt.byID, sel, tt.wantSlot)
			}
			continue
		}
		if sel.Slot != nil || sel.ID != tt.wantID {
			t.Errorf("parseSelector(%q, %v) = %+v, want id %q", tt.arg, tt.byID, sel, tt.wantID)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestOptionalFloat(t *testing.T) {
	var o optionalFloat
	if o.v != nil || o.String() != "" {
		t.Fatal("unset flag should be nil")
	}
	if err := o.Set("12.5"); err != nil {
		t.Fatal(err)
	}
	if o.v == nil || *o.v != 12.5 || o.String() != "12.5" {
		t.Errorf("after Set: %v", o.String())
	}
	if err := o.Set("wide"); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteWindowTable(t *testing.T) {
	var buf bytes.Buffer
	writeWindowTable(&buf, []ipc.WindowInfo{
		{ID: "0123456789abcdef", Slot: 0, Title: "Notes", Kind: "note", State: "presented", Active: true, X: 50, Y: 100, Width: 200, Height: 350},
		{ID: "fedcba", Slot: 1, Title: "Player", Kind: "media", State: "presented", Minimized: true},
	})
	out := buf.String()
	for _, want := range []string{"SLOT", "0*", "01234567", "Notes", "200x350+50+100", "fedcba", "minimized"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789") {
		t.Errorf("ID not shortened:\n%s", out)
	}
}
