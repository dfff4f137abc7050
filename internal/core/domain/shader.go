package domain

import "go.trai.ch/zerr"

// ShaderKind is the pipeline stage a shader source belongs to.
// Its value doubles as the source file extension.
type ShaderKind string

const (
	// KindVertex is a vertex shader.
	KindVertex ShaderKind = "vert"
	// KindFragment is a fragment shader.
	KindFragment ShaderKind = "frag"
)

// ShaderKinds lists the supported kinds in enumeration order.
var ShaderKinds = []ShaderKind{KindVertex, KindFragment}

// ParseShaderKind converts an extension token into a ShaderKind.
func ParseShaderKind(s string) (ShaderKind, error) {
	switch ShaderKind(s) {
	case KindVertex, KindFragment:
		return ShaderKind(s), nil
	default:
		return "", zerr.With(ErrInvalidShaderKind, "kind", s)
	}
}

// Dimension selects the 2D or 3D render system a shader is written for.
type Dimension string

const (
	// Dim2D is the 2D variant.
	Dim2D Dimension = "2D"
	// Dim3D is the 3D variant.
	Dim3D Dimension = "3D"
)

// Dimensions lists the supported dimensions in enumeration order.
var Dimensions = []Dimension{Dim2D, Dim3D}

// ParseDimension converts a dimension token into a Dimension.
// Only the uppercase tokens are accepted so that output names stay consistent.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case Dim2D, Dim3D:
		return Dimension(s), nil
	default:
		return "", zerr.With(ErrInvalidDimension, "dimension", s)
	}
}

// Variant selects which fixed job list a run compiles.
type Variant string

const (
	// VariantFull compiles every kind for every dimension.
	VariantFull Variant = "full"
	// VariantReduced compiles only the 2D vertex and fragment shaders.
	VariantReduced Variant = "reduced"
)

// ParseVariant converts a config value into a Variant. The empty string selects VariantFull.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "":
		return VariantFull, nil
	case VariantFull, VariantReduced:
		return Variant(s), nil
	default:
		return "", zerr.With(ErrInvalidVariant, "variant", s)
	}
}
