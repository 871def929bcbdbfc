// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the primary integration point between the composition
// layer and GPU frameworks like gogpu. The host application implements
// DeviceHandle and passes it to NewDevice, allowing the composition layer
// to use the shared GPU device.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// local name for the interface while maintaining full compatibility with
// the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for headless operation where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null handle.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null handle.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null handle.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns an empty AdapterInfo for the null handle.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null handle.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// ProgramDescriptor describes a shader program to compile.
// Both sources are complete GLSL translation units produced by the
// composition layer.
type ProgramDescriptor struct {
	// Label is an optional debug label for the program.
	Label string

	// VertexSource is the vertex stage GLSL source.
	VertexSource string

	// FragmentSource is the fragment stage GLSL source.
	FragmentSource string
}

// Device compiles shader programs. It is the boundary between the
// composition layer and an actual GPU backend.
type Device interface {
	// CompileProgram compiles vertex and fragment GLSL into an
	// executable program. A failed compile returns a *CompileError
	// carrying the shader stage and the backend diagnostic text.
	CompileProgram(desc ProgramDescriptor) (Program, error)
}

// Program is a compiled shader program.
type Program interface {
	// Draw executes one draw call using the program.
	Draw(call DrawCall) error

	// Destroy releases resources held by the program. The program
	// must not be used afterwards.
	Destroy()
}

// CompileError reports a backend shader compile or link failure.
// Log is the backend diagnostic, verbatim.
type CompileError struct {
	Stage string // "vertex", "fragment", or "link"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("render: %s shader compilation failed: %s", e.Stage, e.Log)
}
