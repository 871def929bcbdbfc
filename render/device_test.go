// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var h DeviceHandle = NullDeviceHandle{}
	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("null handle should return nil GPU objects")
	}
	if got := h.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat = %v, want undefined", got)
	}
	// The handle must satisfy the full DeviceProvider surface,
	// AdapterInfo included.
	var info gpucontext.AdapterInfo = h.AdapterInfo()
	_ = info
}

func TestCompileErrorMessage(t *testing.T) {
	e := &CompileError{Stage: "fragment", Log: "0:3: 'x' : undeclared identifier"}
	got := e.Error()
	for _, want := range []string{"fragment", "undeclared identifier"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}
