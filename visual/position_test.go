// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"errors"
	"testing"
)

func TestPositionInputAttachTwice(t *testing.T) {
	line, _ := newTestLine(t)
	c := NewPositionInput()
	if err := c.Attach(line); err != nil {
		t.Fatal(err)
	}
	if err := c.Attach(line); !errors.Is(err, ErrAttached) {
		t.Errorf("second Attach err = %v, want ErrAttached", err)
	}
}

func TestPositionInputUpdateDetached(t *testing.T) {
	c := NewPositionInput()
	if err := c.Update(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Update err = %v, want ErrNotAttached", err)
	}
}

func TestPositionInputUpdateWithoutBuffer(t *testing.T) {
	line, _ := newTestLine(t)
	c := line.PositionInput().(*PositionInput)
	if err := c.Update(); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("Update err = %v, want ErrNoBuffer", err)
	}
}

func TestPositionInputModeFollowsData(t *testing.T) {
	line, _ := newTestLine(t, Positions([][]float32{{0, 0}, {1, 1}}))
	c := line.PositionInput().(*PositionInput)
	if c.Mode() != PositionNone {
		t.Errorf("mode before paint = %v, want none", c.Mode())
	}

	if err := line.Paint(); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != PositionVec2 {
		t.Errorf("mode = %v, want vec2", c.Mode())
	}

	line.SetData(Positions([][]float32{{0, 0, 0}, {1, 1, 1}}))
	if err := line.Paint(); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != PositionVec3 {
		t.Errorf("mode = %v, want vec3 after 3D data", c.Mode())
	}

	line.SetData(Positions([][]float32{{0, 0}, {1, 1}}))
	if err := line.Paint(); err != nil {
		t.Fatal(err)
	}
	if c.Mode() != PositionVec2 {
		t.Errorf("mode = %v, want vec2 after switching back", c.Mode())
	}
}

func TestPositionInputDetachUnbindsHook(t *testing.T) {
	line, _ := newTestLine(t, Positions([][]float32{{0, 0}, {1, 1}}))
	if err := line.Paint(); err != nil {
		t.Fatal(err)
	}

	c := line.PositionInput().(*PositionInput)
	c.Detach()
	if c.Mode() != PositionNone {
		t.Errorf("mode after detach = %v, want none", c.Mode())
	}
	if _, ok := line.Program().BoundFunction("local_position"); ok {
		t.Error("local_position still bound after detach")
	}
	// The color hook belongs to another component and must survive.
	if _, ok := line.Program().BoundFunction("frag_color"); !ok {
		t.Error("detach removed a hook it does not own")
	}
}
