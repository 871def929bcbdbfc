// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/shade"
	"github.com/gogpu/shade/render"
)

// lineVertexTemplate is the fixed vertex skeleton. The hook names and
// signatures below, together with the fragment ones, are the ABI
// between the composition core and the surrounding visual code.
const lineVertexTemplate = `
vec4 local_position();
vec4 map_local_to_nd(vec4);
void vert_post_hook();

void main(void) {
    vec4 local_pos = local_position();
    vec4 nd_pos = map_local_to_nd(local_pos);
    gl_Position = nd_pos;

    vert_post_hook();
}
`

// lineFragmentTemplate is the fixed fragment skeleton.
const lineFragmentTemplate = `
vec4 frag_color();
void frag_post_hook();

void main(void) {
    gl_FragColor = frag_color();

    frag_post_hook();
}
`

// Line draws a line strip over N vertices. It owns its option state,
// a vertex buffer derived from it lazily, one position input
// component, one color input component, and one ModularProgram.
//
// Any SetData invalidates the buffer; the next Paint rebuilds it,
// lets the components rebind, and issues the draw. All errors are
// fatal for that frame: Paint returns them and draws nothing.
type Line struct {
	device  render.Device
	program *shade.ModularProgram
	opts    lineOptions

	// buffer is nil whenever opts changed since the last rebuild.
	buffer *render.VertexBuffer

	position Component
	color    Component
}

// NewLine creates a line visual on the given device. A nil device
// falls back to a render.NullDevice. Defaults: white uniform color,
// width 1, identity transform.
func NewLine(device render.Device, opts ...LineOption) (*Line, error) {
	if device == nil {
		device = render.NewNullDevice()
	}
	program, err := shade.NewModularProgram(device,
		lineVertexTemplate, lineFragmentTemplate, shade.WithLabel("line"))
	if err != nil {
		return nil, err
	}
	// Generic chains for attaching post-processing callbacks.
	if err := program.AddChain("vert_post_hook"); err != nil {
		return nil, err
	}
	if err := program.AddChain("frag_post_hook"); err != nil {
		return nil, err
	}
	l := &Line{
		device:  device,
		program: program,
		opts:    defaultLineOptions(),
	}
	for _, o := range opts {
		o(&l.opts)
	}
	if err := l.SetPositionInput(NewPositionInput()); err != nil {
		return nil, err
	}
	if err := l.SetColorInput(NewColorInput()); err != nil {
		return nil, err
	}
	return l, nil
}

// SetData partially updates the visual's options; fields not covered
// by an option keep their prior value. The vertex buffer is always
// invalidated and rebuilt on the next Paint.
func (l *Line) SetData(opts ...LineOption) {
	for _, o := range opts {
		o(&l.opts)
	}
	l.buffer = nil
}

// SetTransform replaces the local-to-ND transform. Takes effect on the
// next Paint without a buffer rebuild.
func (l *Line) SetTransform(t Transform) {
	if t != nil {
		l.opts.transform = t
	}
}

// Transform returns the current transform.
func (l *Line) Transform() Transform { return l.opts.transform }

// Width returns the current line width.
func (l *Line) Width() float32 { return l.opts.width }

// Color returns the current uniform color as RGBA, alpha defaulted
// to 1 for RGB input. Meaningful only while no per-vertex colors are
// set.
func (l *Line) Color() [4]float32 {
	c := [4]float32{0, 0, 0, 1}
	copy(c[:], l.opts.color)
	return c
}

// Program returns the visual's modular program. Components and tests
// inspect and bind through it.
func (l *Line) Program() *shade.ModularProgram { return l.program }

// VertexBuffer returns the derived vertex buffer, or nil while options
// changed since the last rebuild.
func (l *Line) VertexBuffer() *render.VertexBuffer { return l.buffer }

// PositionInput returns the attached position input component.
func (l *Line) PositionInput() Component { return l.position }

// ColorInput returns the attached color input component.
func (l *Line) ColorInput() Component { return l.color }

// SetPositionInput replaces the position input component. The new
// component is attached before the previous one is detached, so a
// failed Attach leaves the visual unchanged and paintable. The buffer
// is invalidated so the new component binds on the next Paint.
// Setting the already-attached component is a no-op.
func (l *Line) SetPositionInput(c Component) error {
	if c == nil {
		return fmt.Errorf("visual: position input must not be nil")
	}
	if c == l.position {
		return nil
	}
	if err := c.Attach(l); err != nil {
		return err
	}
	if l.position != nil {
		l.position.Detach()
	}
	l.position = c
	l.buffer = nil
	return nil
}

// SetColorInput replaces the color input component. Like
// SetPositionInput, a failed Attach leaves the previous component in
// place.
func (l *Line) SetColorInput(c Component) error {
	if c == nil {
		return fmt.Errorf("visual: color input must not be nil")
	}
	if c == l.color {
		return nil
	}
	if err := c.Attach(l); err != nil {
		return err
	}
	if l.color != nil {
		l.color.Detach()
	}
	l.color = c
	l.buffer = nil
	return nil
}

// AddVertexCallback appends a callback Function to the vert_post_hook
// chain. Callbacks run after the vertex position has been set, in
// attachment order.
func (l *Line) AddVertexCallback(fn *shade.Function) error {
	return l.program.AddCallback("vert_post_hook", fn)
}

// AddFragmentCallback appends a callback Function to the
// frag_post_hook chain. Callbacks run after the fragment color has
// been set, in attachment order.
func (l *Line) AddFragmentCallback(fn *shade.Function) error {
	return l.program.AddCallback("frag_post_hook", fn)
}

// Bounds returns the axis-aligned bounds of the current positions in
// local coordinates. ok is false while no positions are set. The z
// extent is zero for 2D data.
func (l *Line) Bounds() (min, max [3]float32, ok bool) {
	if len(l.opts.pos) == 0 {
		return min, max, false
	}
	for i := range min {
		min[i] = math32.Inf(1)
		max[i] = math32.Inf(-1)
	}
	for _, row := range l.opts.pos {
		for i := 0; i < 3; i++ {
			v := float32(0)
			if i < len(row) {
				v = row[i]
			}
			min[i] = math32.Min(min[i], v)
			max[i] = math32.Max(max[i], v)
		}
	}
	return min, max, true
}

// Paint draws the current state as one line strip. With no position
// data it is a no-op. On any error the frame is skipped entirely:
// nothing partial is drawn and no state is silently retried.
func (l *Line) Paint() error {
	if len(l.opts.pos) == 0 {
		return nil
	}
	if l.buffer == nil {
		if err := l.validate(); err != nil {
			return err
		}
		if err := l.buildBuffer(); err != nil {
			return err
		}
		if err := l.position.Update(); err != nil {
			return err
		}
		if err := l.color.Update(); err != nil {
			return err
		}
	}
	if err := l.program.SetHook("map_local_to_nd", l.opts.transform.ShaderMap()); err != nil {
		return err
	}
	return l.program.Draw(render.DrawCall{
		Topology:    gputypes.PrimitiveTopologyLineStrip,
		VertexCount: l.buffer.Count(),
		LineWidth:   l.opts.width,
		Buffer:      l.buffer,
	})
}

// validate checks data shapes before any buffer is built.
func (l *Line) validate() error {
	dim := len(l.opts.pos[0])
	if dim != 2 && dim != 3 {
		return fmt.Errorf("%w: position trailing dimension %d, want 2 or 3",
			ErrBadShape, dim)
	}
	for i, row := range l.opts.pos {
		if len(row) != dim {
			return fmt.Errorf("%w: position row %d has %d components, row 0 has %d",
				ErrBadShape, i, len(row), dim)
		}
	}
	if l.opts.colors != nil {
		if len(l.opts.colors) != len(l.opts.pos) {
			return fmt.Errorf("%w: %d colors for %d vertices",
				ErrBadShape, len(l.opts.colors), len(l.opts.pos))
		}
		for i, row := range l.opts.colors {
			if len(row) != 3 && len(row) != 4 {
				return fmt.Errorf("%w: color row %d has %d components, want 3 or 4",
					ErrBadShape, i, len(row))
			}
		}
	} else if n := len(l.opts.color); n != 3 && n != 4 {
		return fmt.Errorf("%w: uniform color has %d components, want 3 or 4",
			ErrBadShape, n)
	}
	return nil
}

// buildBuffer derives the interleaved vertex buffer from the current
// options: a position field, plus a vec4 color field when per-vertex
// colors are set. The buffer is rebuilt whole, never patched.
func (l *Line) buildBuffer() error {
	dim := len(l.opts.pos[0])
	posFormat := gputypes.VertexFormatFloat32x2
	if dim == 3 {
		posFormat = gputypes.VertexFormatFloat32x3
	}
	fields := []render.Field{{Name: "pos", Format: posFormat}}
	if l.opts.colors != nil {
		fields = append(fields, render.Field{
			Name:   "color",
			Format: gputypes.VertexFormatFloat32x4,
		})
	}
	buffer, err := render.NewVertexBuffer(len(l.opts.pos), fields...)
	if err != nil {
		return err
	}
	if err := buffer.SetField("pos", l.opts.pos); err != nil {
		return err
	}
	if l.opts.colors != nil {
		rgba := make([][]float32, len(l.opts.colors))
		for i, row := range l.opts.colors {
			r := []float32{0, 0, 0, 1}
			copy(r, row)
			rgba[i] = r
		}
		if err := buffer.SetField("color", rgba); err != nil {
			return err
		}
	}
	l.buffer = buffer
	return nil
}
