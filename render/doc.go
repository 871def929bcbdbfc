// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between the shader
// composition core and GPU backends.
//
// This package defines the abstractions that the composition layer
// (package shade) and the visuals (package visual) depend on, without
// implementing any GPU work itself:
//
//   - Device: compiles generated GLSL into an executable Program
//   - Program: executes draw calls against bound vertex data
//   - VertexBuffer: interleaved per-vertex data with typed field layout
//   - DeviceHandle: GPU device access provided by the host application
//
// # Key Principle
//
// The composition layer RECEIVES a GPU device from the host application,
// it does NOT create its own. Host integrations implement Backend and
// register it via RegisterBackend; NewDevice then turns a host-provided
// DeviceHandle into a Device. Without a registered backend, NewDevice
// returns a NullDevice, which records compiled sources and draw calls
// instead of touching a GPU. The NullDevice is also what the tests use
// to exercise composition end to end.
//
// # Usage
//
//	dev, _ := render.NewDevice(render.NullDeviceHandle{})
//	prog, err := dev.CompileProgram(render.ProgramDescriptor{
//	    Label:          "line",
//	    VertexSource:   vertexGLSL,
//	    FragmentSource: fragmentGLSL,
//	})
//	if err != nil {
//	    // CompileError carries the shader stage and the backend
//	    // diagnostic verbatim.
//	}
package render
