// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrUnknownField indicates a vertex buffer field name that does not
// exist in the buffer's layout.
var ErrUnknownField = errors.New("render: unknown vertex buffer field")

// Field describes one named per-vertex value inside a VertexBuffer,
// for example the position or color column of a line visual.
type Field struct {
	// Name identifies the field within its buffer.
	Name string

	// Format is the component layout of one element.
	Format gputypes.VertexFormat

	// Offset is the float32 offset of the field from the start of a
	// vertex. Assigned by NewVertexBuffer.
	Offset int

	// Location is the shader attribute location. Assigned sequentially
	// by NewVertexBuffer.
	Location int
}

// Components returns the number of float32 components of the field.
func (f Field) Components() int {
	return formatComponents(f.Format)
}

func formatComponents(format gputypes.VertexFormat) int {
	switch format {
	case gputypes.VertexFormatFloat32:
		return 1
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	default:
		return 0
	}
}

// VertexBuffer holds interleaved per-vertex float32 data together with
// the layout metadata describing its fields. It stands in for the GPU
// vertex buffer object owned by a visual: the visual rebuilds it (never
// mutates it in place) whenever its option data changes.
type VertexBuffer struct {
	data   []float32
	stride int // float32s per vertex
	count  int
	fields []Field
}

// NewVertexBuffer creates a buffer for count vertices with the given
// fields. Field offsets and attribute locations are assigned in
// declaration order. Only float32 vertex formats are supported.
func NewVertexBuffer(count int, fields ...Field) (*VertexBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("render: vertex count must be positive, got %d", count)
	}
	if len(fields) == 0 {
		return nil, errors.New("render: vertex buffer needs at least one field")
	}
	stride := 0
	laid := make([]Field, len(fields))
	for i, f := range fields {
		n := formatComponents(f.Format)
		if n == 0 {
			return nil, fmt.Errorf("render: field %q: unsupported vertex format %v", f.Name, f.Format)
		}
		f.Offset = stride
		f.Location = i
		laid[i] = f
		stride += n
	}
	return &VertexBuffer{
		data:   make([]float32, count*stride),
		stride: stride,
		count:  count,
		fields: laid,
	}, nil
}

// Count returns the number of vertices.
func (b *VertexBuffer) Count() int { return b.count }

// Stride returns the number of float32s per vertex.
func (b *VertexBuffer) Stride() int { return b.stride }

// Data returns the interleaved vertex data. The slice is owned by the
// buffer and must not be mutated by the caller.
func (b *VertexBuffer) Data() []float32 { return b.data }

// Fields returns the buffer's fields in declaration order.
func (b *VertexBuffer) Fields() []Field {
	out := make([]Field, len(b.fields))
	copy(out, b.fields)
	return out
}

// Field returns the named field and whether it exists.
func (b *VertexBuffer) Field(name string) (Field, bool) {
	for _, f := range b.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SetField copies one row per vertex into the named field. Each row
// must have exactly the field's component count, and len(rows) must
// equal the buffer's vertex count.
func (b *VertexBuffer) SetField(name string, rows [][]float32) error {
	f, ok := b.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if len(rows) != b.count {
		return fmt.Errorf("render: field %q: %d rows for %d vertices", name, len(rows), b.count)
	}
	n := f.Components()
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("render: field %q: row %d has %d components, want %d", name, i, len(row), n)
		}
		copy(b.data[i*b.stride+f.Offset:], row)
	}
	return nil
}

// Vertex returns the float32s of the named field at the given vertex
// index. The returned slice aliases the buffer data.
func (b *VertexBuffer) Vertex(name string, i int) ([]float32, error) {
	f, ok := b.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if i < 0 || i >= b.count {
		return nil, fmt.Errorf("render: vertex index %d out of range [0,%d)", i, b.count)
	}
	at := i*b.stride + f.Offset
	return b.data[at : at+f.Components()], nil
}

// Layout returns the buffer layout in the form GPU pipelines consume.
// Strides and offsets are in bytes.
func (b *VertexBuffer) Layout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(b.fields))
	for i, f := range b.fields {
		attrs[i] = gputypes.VertexAttribute{
			Format:         f.Format,
			Offset:         uint64(f.Offset * 4),
			ShaderLocation: uint32(f.Location),
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(b.stride * 4),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
