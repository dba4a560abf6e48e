package doc

// PaintType identifies the paint variant. Only solid color paints are
// interpreted by the ghost engine; other variants round-trip through
// serialization untouched.
type PaintType string

// Paint types.
const (
	PaintSolid          PaintType = "SOLID"
	PaintGradientLinear PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial PaintType = "GRADIENT_RADIAL"
	PaintImage          PaintType = "IMAGE"
)

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Paint is a single fill descriptor. Nodes and text segments carry an
// ordered list of paints; order matters for compositing.
type Paint struct {
	Type    PaintType `json:"type"`
	Color   Color     `json:"color"`
	Opacity float64   `json:"opacity,omitempty"`
}

// SolidBlack returns a single-element fill list holding an opaque
// solid black paint. Used as the fallback when no usable fill exists.
func SolidBlack() []Paint {
	return []Paint{{Type: PaintSolid, Color: Color{}, Opacity: 1}}
}

func clonePaints(ps []Paint) []Paint {
	if ps == nil {
		return nil
	}
	out := make([]Paint, len(ps))
	copy(out, ps)
	return out
}
