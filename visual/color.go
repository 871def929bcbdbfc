// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"github.com/gogpu/shade"
)

// ColorMode identifies which color input variant is bound.
type ColorMode uint8

const (
	// ColorNone means the component is detached or not yet updated.
	ColorNone ColorMode = iota

	// ColorUniform binds one RGBA uniform for the whole strip.
	ColorUniform

	// ColorPerVertex reads a per-vertex color attribute in the vertex
	// stage and carries it to the fragment stage through a varying.
	ColorPerVertex
)

func (m ColorMode) String() string {
	switch m {
	case ColorUniform:
		return "uniform"
	case ColorPerVertex:
		return "per-vertex"
	default:
		return "none"
	}
}

// colorInputSource returns the fragment color. Its rgba slot is either
// a uniform vec4 or a varying written by the support function.
const colorInputSource = `
	vec4 $color_input() {
	    return $rgba;
	}
`

// colorSupportSource runs in the vertex stage and copies the
// per-vertex color attribute into the varying read by the fragment
// function.
const colorSupportSource = `
	void $color_input_support() {
	    $output = $input;
	}
`

// ColorInput selects between uniform and per-vertex color sourcing,
// based on whether the visual's vertex buffer carries a color field.
//
// In per-vertex mode the component binds two linked Functions: a
// support callback on the vert_post_hook chain copying the color
// attribute into a shared varying, and the frag_color function reading
// that varying. In uniform mode only the frag_color function is bound,
// returning a uniform vec4; re-updating after a mode change fully
// replaces the prior bindings, leaving no residual varying or support
// callback behind.
type ColorInput struct {
	line         *Line
	frag         *shade.Function
	support      *shade.Function
	supportBound bool
	mode         ColorMode
}

// NewColorInput creates a detached color input component.
func NewColorInput() *ColorInput {
	return &ColorInput{
		frag:    shade.NewFunction(colorInputSource),
		support: shade.NewFunction(colorSupportSource),
	}
}

// Mode returns the currently bound variant.
func (c *ColorInput) Mode() ColorMode { return c.mode }

// Attach implements Component.
func (c *ColorInput) Attach(line *Line) error {
	if c.line != nil {
		return ErrAttached
	}
	c.line = line
	return nil
}

// Detach implements Component. It unbinds the frag_color hook and the
// support callback, if bound.
func (c *ColorInput) Detach() {
	if c.line == nil {
		return
	}
	c.removeSupport()
	c.line.program.UnsetHook("frag_color")
	c.line = nil
	c.mode = ColorNone
}

// Update implements Component.
func (c *ColorInput) Update() error {
	if c.line == nil {
		return ErrNotAttached
	}
	if c.line.buffer == nil {
		return ErrNoBuffer
	}
	program := c.line.program
	if field, ok := c.line.buffer.Field("color"); ok {
		// Per-vertex: declare the shared varying on the fragment
		// function, then link the support function's output to it so
		// both sides resolve to the same generated variable.
		c.frag.SetBinding("rgba", shade.Varying, shade.Vec4, nil)
		if err := program.SetHook("frag_color", c.frag); err != nil {
			return err
		}
		if !c.supportBound {
			if err := program.AddCallback("vert_post_hook", c.support); err != nil {
				return err
			}
			c.supportBound = true
		}
		c.support.SetBinding("input", shade.Attribute, shade.Vec4, field)
		c.support.BindSlotTo("output", c.frag, "rgba")
		c.mode = ColorPerVertex
		return nil
	}
	c.removeSupport()
	c.frag.SetBinding("rgba", shade.Uniform, shade.Vec4, c.line.Color())
	if err := program.SetHook("frag_color", c.frag); err != nil {
		return err
	}
	c.mode = ColorUniform
	return nil
}

func (c *ColorInput) removeSupport() {
	if !c.supportBound {
		return
	}
	// Ignore the error: the chain exists for every Line program.
	_ = c.line.program.RemoveCallback("vert_post_hook", c.support)
	c.supportBound = false
}
