// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import "github.com/gogpu/shade"

// Transform supplies the GPU-side mapping from a visual's local
// coordinates to normalized device coordinates. The visual binds the
// returned Function into the map_local_to_nd hook on every paint, so
// transform parameter changes take effect without touching the vertex
// buffer.
type Transform interface {
	// ShaderMap returns the mapping Function. It must take one vec4
	// and return a vec4.
	ShaderMap() *shade.Function
}

const nullTransformSource = `
	vec4 $null_transform(vec4 pos) {
	    return pos;
	}
`

// NullTransform is the identity mapping: local coordinates are already
// normalized device coordinates. It is the default transform of a Line.
type NullTransform struct {
	fn *shade.Function
}

// NewNullTransform creates an identity transform.
func NewNullTransform() *NullTransform {
	return &NullTransform{fn: shade.NewFunction(nullTransformSource)}
}

// ShaderMap implements Transform.
func (t *NullTransform) ShaderMap() *shade.Function { return t.fn }

// Map implements the mapping on the CPU, for symmetry with the shader.
func (t *NullTransform) Map(p [3]float32) [3]float32 { return p }

const stTransformSource = `
	vec4 $st_transform(vec4 pos) {
	    return vec4(pos.xyz * $scale + $translate, pos.w);
	}
`

// STTransform scales then translates coordinates. Scale and translate
// ride as uniforms, so updating them never recompiles the program.
type STTransform struct {
	fn        *shade.Function
	scale     [3]float32
	translate [3]float32
}

// NewSTTransform creates a scale-translate transform.
func NewSTTransform(scale, translate [3]float32) *STTransform {
	return &STTransform{
		fn:        shade.NewFunction(stTransformSource),
		scale:     scale,
		translate: translate,
	}
}

// SetScale updates the scale factors.
func (t *STTransform) SetScale(s [3]float32) { t.scale = s }

// SetTranslate updates the translation offsets.
func (t *STTransform) SetTranslate(d [3]float32) { t.translate = d }

// ShaderMap implements Transform. The current scale and translate are
// bound as vec3 uniforms.
func (t *STTransform) ShaderMap() *shade.Function {
	t.fn.SetBinding("scale", shade.Uniform, shade.Vec3, t.scale)
	t.fn.SetBinding("translate", shade.Uniform, shade.Vec3, t.translate)
	return t.fn
}

// Map implements the mapping on the CPU, for symmetry with the shader.
func (t *STTransform) Map(p [3]float32) [3]float32 {
	return [3]float32{
		p[0]*t.scale[0] + t.translate[0],
		p[1]*t.scale[1] + t.translate[1],
		p[2]*t.scale[2] + t.translate[2],
	}
}
