// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// AttributeBinding connects a generated shader attribute to the vertex
// buffer field that supplies its data.
type AttributeBinding struct {
	// Name is the attribute's generated variable name in the compiled
	// shader source.
	Name string

	// Field is the buffer field sourcing the attribute.
	Field Field
}

// UniformBinding carries the current value for one generated uniform.
// Value is the flattened float32 representation: one element for a
// float, four for a vec4, sixteen for a mat4.
type UniformBinding struct {
	Name  string
	Value []float32
}

// DrawCall describes one draw executed by a compiled Program.
// The composition layer fills Attributes and Uniforms from its resolved
// variable table; the caller supplies topology, buffer, and line state.
type DrawCall struct {
	// Topology is the primitive topology to draw.
	Topology gputypes.PrimitiveTopology

	// VertexCount is the number of vertices consumed from Buffer.
	VertexCount int

	// LineWidth is the line width in backend units. Ignored for
	// non-line topologies.
	LineWidth float32

	// Buffer is the interleaved vertex data.
	Buffer *VertexBuffer

	// Attributes map generated attribute names to buffer fields.
	Attributes []AttributeBinding

	// Uniforms carry the current uniform values.
	Uniforms []UniformBinding
}
