// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

// LineOption configures a Line at creation or through SetData.
// Options not passed to SetData retain their prior value.
type LineOption func(*lineOptions)

// lineOptions holds the drawable state of a Line. The vertex buffer is
// derived from it lazily on paint.
type lineOptions struct {
	pos       [][]float32
	color     []float32   // uniform RGB or RGBA; nil while per-vertex
	colors    [][]float32 // per-vertex RGB/RGBA rows; nil while uniform
	width     float32
	transform Transform
}

func defaultLineOptions() lineOptions {
	return lineOptions{
		color:     []float32{1, 1, 1, 1},
		width:     1,
		transform: NewNullTransform(),
	}
}

// Positions sets the vertex positions, one row of 2 or 3 floats per
// vertex. The slice is retained; the caller must not mutate it after
// handing it over.
func Positions(pos [][]float32) LineOption {
	return func(o *lineOptions) {
		o.pos = pos
	}
}

// UniformColor sets one fixed color for the whole strip, as RGB or
// RGBA components (alpha defaults to 1). Replaces any per-vertex
// colors.
func UniformColor(rgba ...float32) LineOption {
	return func(o *lineOptions) {
		o.color = rgba
		o.colors = nil
	}
}

// Colors sets one color per vertex, each row RGB or RGBA (alpha
// defaults to 1). The row count must match the vertex count. Replaces
// any uniform color.
func Colors(colors [][]float32) LineOption {
	return func(o *lineOptions) {
		o.colors = colors
		o.color = nil
	}
}

// Width sets the line width in backend units.
func Width(w float32) LineOption {
	return func(o *lineOptions) {
		o.width = w
	}
}

// WithTransform sets the local-to-ND transform.
func WithTransform(t Transform) LineOption {
	return func(o *lineOptions) {
		if t != nil {
			o.transform = t
		}
	}
}
