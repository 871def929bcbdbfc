// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import "errors"

var (
	// ErrAttached indicates an Attach on a component that is already
	// attached to a visual.
	ErrAttached = errors.New("visual: component already attached")

	// ErrNotAttached indicates an Update on a detached component.
	ErrNotAttached = errors.New("visual: component not attached")

	// ErrNoBuffer indicates an Update on a component whose visual has
	// not built a vertex buffer yet.
	ErrNoBuffer = errors.New("visual: visual has no vertex buffer")

	// ErrBadShape indicates position or color data whose shape cannot
	// be drawn: a trailing dimension that is neither 2 nor 3, a color
	// that is not RGB/RGBA, or a per-vertex color array whose length
	// does not match the vertex count. Reported before any vertex
	// buffer is built.
	ErrBadShape = errors.New("visual: data shape mismatch")
)

// Component is a pluggable strategy that configures shader bindings on
// a Line based on the layout of the data it observes. A component is
// attached to exactly one visual at a time; detaching unbinds exactly
// the hooks it owns and leaves the rest of the program untouched.
type Component interface {
	// Attach connects the component to a visual. Attaching an already
	// attached component returns ErrAttached.
	Attach(line *Line) error

	// Detach unbinds the component's functions from the visual's
	// program and disconnects it. Detaching a detached component is a
	// no-op.
	Detach()

	// Update inspects the visual's current vertex buffer and binds the
	// matching Function variant(s) into the program. Called by the
	// visual after every buffer rebuild.
	Update() error
}
