// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package visual provides data-driven visuals built on the shade
// composition core.
//
// The only visual implemented so far is Line, a line-strip over N
// vertices. Its position and color sourcing are plugged in through
// input components: small strategy objects that inspect the current
// vertex buffer layout and bind the matching shader Function variant
// into the program's hooks. Positions may be 2D (z supplied as a
// uniform) or 3D; colors may be one uniform RGBA for the whole strip
// or a per-vertex attribute carried to the fragment stage through a
// shared varying.
//
//	dev := render.NewNullDevice()
//	line, _ := visual.NewLine(dev,
//	    visual.Positions([][]float32{{0, 0}, {1, 1}, {2, 0}}),
//	    visual.UniformColor(1, 0, 0, 1),
//	    visual.Width(2),
//	)
//	if err := line.Paint(); err != nil {
//	    // the frame is skipped; nothing partial was drawn
//	}
//
// Visuals are single-threaded: all mutation and painting must happen
// on the rendering thread (or be serialized by the caller).
package visual
