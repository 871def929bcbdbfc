// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
)

// NullDevice is a Device that performs no GPU work. It records every
// compiled program and executed draw call, which makes it the default
// device for headless use and the workhorse of the composition tests.
//
// NullDevice validates draw calls the way a real backend would reject
// them (missing buffer, vertex count out of range, attribute bound to
// a field of another buffer) but never parses GLSL: source errors are
// the domain of an actual compiler backend.
type NullDevice struct {
	// Compiles records every program compilation in order.
	Compiles []ProgramDescriptor

	// Draws records every executed draw call in order.
	Draws []DrawCall
}

// NewNullDevice creates an empty recording device.
func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

// CompileProgram records the descriptor and returns a program whose
// draws are recorded on the device.
func (d *NullDevice) CompileProgram(desc ProgramDescriptor) (Program, error) {
	d.Compiles = append(d.Compiles, desc)
	Logger().Debug("render: null device compiled program",
		"label", desc.Label,
		"vertexBytes", len(desc.VertexSource),
		"fragmentBytes", len(desc.FragmentSource))
	return &nullProgram{device: d, label: desc.Label}, nil
}

// LastCompile returns the most recent compile, or false when none.
func (d *NullDevice) LastCompile() (ProgramDescriptor, bool) {
	if len(d.Compiles) == 0 {
		return ProgramDescriptor{}, false
	}
	return d.Compiles[len(d.Compiles)-1], true
}

// LastDraw returns the most recent draw call, or false when none.
func (d *NullDevice) LastDraw() (DrawCall, bool) {
	if len(d.Draws) == 0 {
		return DrawCall{}, false
	}
	return d.Draws[len(d.Draws)-1], true
}

type nullProgram struct {
	device    *NullDevice
	label     string
	destroyed bool
}

func (p *nullProgram) Draw(call DrawCall) error {
	if p.destroyed {
		return fmt.Errorf("render: program %q: draw after Destroy", p.label)
	}
	if call.Buffer == nil {
		return errors.New("render: draw call has no vertex buffer")
	}
	if call.VertexCount <= 0 || call.VertexCount > call.Buffer.Count() {
		return fmt.Errorf("render: vertex count %d out of range for buffer of %d",
			call.VertexCount, call.Buffer.Count())
	}
	for _, a := range call.Attributes {
		f, ok := call.Buffer.Field(a.Field.Name)
		if !ok || f != a.Field {
			return fmt.Errorf("render: attribute %q bound to field %q not in draw buffer",
				a.Name, a.Field.Name)
		}
	}
	p.device.Draws = append(p.device.Draws, call)
	return nil
}

func (p *nullProgram) Destroy() {
	p.destroyed = true
}
