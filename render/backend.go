// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"sync"
)

// Backend creates Devices from a host-provided DeviceHandle. GPU
// integrations implement Backend and register it via RegisterBackend,
// typically from an init function so that users opt in with a blank
// import:
//
//	import _ "example.com/shade-wgpu" // registers the wgpu backend
type Backend interface {
	// Name returns the backend name (e.g., "wgpu", "gl").
	Name() string

	// NewDevice creates a Device bound to the host's GPU device.
	NewDevice(h DeviceHandle) (Device, error)
}

var (
	backendMu sync.RWMutex
	backend   Backend
)

// RegisterBackend registers a GPU backend. Only one backend can be
// registered; subsequent calls replace the previous one.
func RegisterBackend(b Backend) error {
	if b == nil {
		return errors.New("render: backend must not be nil")
	}
	backendMu.Lock()
	backend = b
	backendMu.Unlock()
	Logger().Info("render: backend registered", "name", b.Name())
	return nil
}

// ActiveBackend returns the currently registered backend, or nil.
func ActiveBackend() Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	return b
}

// NewDevice creates a Device for the given host handle. When a backend
// is registered the device comes from it; otherwise a NullDevice is
// returned so that composition keeps working headlessly.
func NewDevice(h DeviceHandle) (Device, error) {
	b := ActiveBackend()
	if b == nil {
		Logger().Debug("render: no backend registered, using NullDevice")
		return NewNullDevice(), nil
	}
	return b.NewDevice(h)
}
