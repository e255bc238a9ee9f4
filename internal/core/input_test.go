package core

import (
	"testing"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key    string
		action Action
	}{
		{"up", ActionUp},
		{"w", ActionUp},
		{"k", ActionUp},
		{"down", ActionDown},
		{"j", ActionDown},
		{"left", ActionLeft},
		{"a", ActionLeft},
		{"h", ActionLeft},
		{"right", ActionRight},
		{"l", ActionRight},
		{"enter", ActionConfirm},
		{"esc", ActionBack},
		{"r", ActionRestart},
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"x", ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := ActionForKey(tc.key); got != tc.action {
				t.Errorf("ActionForKey(%q) = %v, expected %v", tc.key, got, tc.action)
			}
		})
	}
}

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action Action
		dir    grid.Direction
		ok     bool
	}{
		{ActionUp, grid.Up, true},
		{ActionDown, grid.Down, true},
		{ActionLeft, grid.Left, true},
		{ActionRight, grid.Right, true},
		{ActionRestart, 0, false},
		{ActionNone, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			dir, ok := tc.action.Direction()
			if ok != tc.ok {
				t.Fatalf("Direction() ok = %v, expected %v", ok, tc.ok)
			}
			if ok && dir != tc.dir {
				t.Errorf("Direction() = %v, expected %v", dir, tc.dir)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	if got := (RuntimeConfig{Seed: 42}).ResolveSeed(); got != 42 {
		t.Errorf("ResolveSeed() = %d, expected 42", got)
	}
	if got := (RuntimeConfig{}).ResolveSeed(); got == 0 {
		t.Error("ResolveSeed() should generate a seed when unset")
	}
}
