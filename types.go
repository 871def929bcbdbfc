package shade

import "github.com/gogpu/gputypes"

// Kind classifies how a shader variable is supplied to a program.
type Kind uint8

const (
	// Attribute is a per-vertex input sourced from a vertex buffer
	// field. Vertex stage only.
	Attribute Kind = iota

	// Uniform is a constant for the whole draw call.
	Uniform

	// Varying is written by the vertex stage and interpolated
	// per-fragment.
	Varying
)

// String returns the GLSL storage qualifier.
func (k Kind) String() string {
	switch k {
	case Attribute:
		return "attribute"
	case Uniform:
		return "uniform"
	case Varying:
		return "varying"
	default:
		return "unknown"
	}
}

// prefix returns the conventional variable name prefix for the kind.
func (k Kind) prefix() string {
	switch k {
	case Attribute:
		return "a"
	case Uniform:
		return "u"
	default:
		return "v"
	}
}

// Type is the GLSL type of a shader variable.
type Type uint8

const (
	Float Type = iota
	Vec2
	Vec3
	Vec4
	Mat4
)

// String returns the GLSL spelling of the type.
func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat4:
		return "mat4"
	default:
		return "unknown"
	}
}

// Components returns the number of float32 components of the type.
func (t Type) Components() int {
	switch t {
	case Float:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat4:
		return 16
	default:
		return 0
	}
}

// VertexFormat returns the vertex buffer format matching the type, and
// whether the type is usable as a per-vertex attribute.
func (t Type) VertexFormat() (gputypes.VertexFormat, bool) {
	switch t {
	case Float:
		return gputypes.VertexFormatFloat32, true
	case Vec2:
		return gputypes.VertexFormatFloat32x2, true
	case Vec3:
		return gputypes.VertexFormatFloat32x3, true
	case Vec4:
		return gputypes.VertexFormatFloat32x4, true
	default:
		return 0, false
	}
}
