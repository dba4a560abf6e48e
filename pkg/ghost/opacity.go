package ghost

import "math"

// fallbackFontSize stands in when a text node has no single font size
// (mixed styling reports a non-numeric size).
const fallbackFontSize = 14.0

// Opacity computes the synthetic ghost opacity for a text node from
// its font size and character count.
//
// The function is deterministic and monotonic non-decreasing in both
// arguments within the clamped domain, and the result always lies in
// [MinOpacity, MaxOpacity] regardless of input, including zero-length
// text and non-numeric font sizes.
func (c Config) Opacity(fontSize float64, characterCount int) float64 {
	if fontSize <= 0 || math.IsNaN(fontSize) {
		fontSize = fallbackFontSize
	}
	sizeFactor := clamp(fontSize/24, 0.5, 1.0)
	lengthFactor := clamp(float64(characterCount)/50, 0.7, 1.0)
	return clamp(c.BaseOpacity*sizeFactor*lengthFactor, c.MinOpacity, c.MaxOpacity)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
