// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"fmt"

	"github.com/gogpu/shade"
)

// PositionMode identifies which position input variant is bound.
type PositionMode uint8

const (
	// PositionNone means the component is detached or not yet updated.
	PositionNone PositionMode = iota

	// PositionVec2 reads a vec2 attribute and a float z uniform.
	PositionVec2

	// PositionVec3 reads a vec3 attribute.
	PositionVec3
)

func (m PositionMode) String() string {
	switch m {
	case PositionVec2:
		return "vec2"
	case PositionVec3:
		return "vec3"
	default:
		return "none"
	}
}

// xyPositionSource builds the local position from an (x, y) attribute
// and a z uniform.
const xyPositionSource = `
	vec4 $input_xy_pos() {
	    return vec4($xy_pos, $z_pos, 1.0);
	}
`

// xyzPositionSource builds the local position from an (x, y, z)
// attribute.
const xyzPositionSource = `
	vec4 $input_xyz_pos() {
	    return vec4($xyz_pos, 1.0);
	}
`

// PositionInput selects, per update, which of two Function variants
// supplies the local_position hook, based on the trailing dimension of
// the position field in the visual's vertex buffer: 2 selects the
// vec2+z variant, 3 the vec3 variant. Exactly one variant is bound at
// a time; switching is a full rebind.
type PositionInput struct {
	line *Line
	xy   *shade.Function
	xyz  *shade.Function
	mode PositionMode
}

// NewPositionInput creates a detached position input component.
func NewPositionInput() *PositionInput {
	return &PositionInput{
		xy:  shade.NewFunction(xyPositionSource),
		xyz: shade.NewFunction(xyzPositionSource),
	}
}

// Mode returns the currently bound variant.
func (c *PositionInput) Mode() PositionMode { return c.mode }

// Attach implements Component.
func (c *PositionInput) Attach(line *Line) error {
	if c.line != nil {
		return ErrAttached
	}
	c.line = line
	return nil
}

// Detach implements Component. It unbinds the local_position hook.
func (c *PositionInput) Detach() {
	if c.line == nil {
		return
	}
	c.line.program.UnsetHook("local_position")
	c.line = nil
	c.mode = PositionNone
}

// Update implements Component.
func (c *PositionInput) Update() error {
	if c.line == nil {
		return ErrNotAttached
	}
	if c.line.buffer == nil {
		return ErrNoBuffer
	}
	field, ok := c.line.buffer.Field("pos")
	if !ok {
		return fmt.Errorf("%w: vertex buffer has no position field", ErrBadShape)
	}
	switch field.Components() {
	case 2:
		c.xy.SetBinding("xy_pos", shade.Attribute, shade.Vec2, field)
		c.xy.SetBinding("z_pos", shade.Uniform, shade.Float, float32(0))
		if err := c.line.program.SetHook("local_position", c.xy); err != nil {
			return err
		}
		c.mode = PositionVec2
	case 3:
		c.xyz.SetBinding("xyz_pos", shade.Attribute, shade.Vec3, field)
		if err := c.line.program.SetHook("local_position", c.xyz); err != nil {
			return err
		}
		c.mode = PositionVec3
	default:
		return fmt.Errorf("%w: position has %d components, want 2 or 3",
			ErrBadShape, field.Components())
	}
	return nil
}
