package ghost

import (
	"math"
	"testing"
)

func TestOpacity_Saturated(t *testing.T) {
	cfg := DefaultConfig()
	// Both factors saturate at 1.0, leaving the base untouched.
	got := cfg.Opacity(24, 50)
	if math.Abs(got-0.2) > 1e-12 {
		t.Errorf("Opacity(24, 50) = %v, want 0.2", got)
	}
}

func TestOpacity_FloorClamp(t *testing.T) {
	cfg := DefaultConfig()
	// sizeFactor 0.5, lengthFactor 0.7 -> 0.07, clamped to the floor.
	got := cfg.Opacity(12, 25)
	if got != cfg.MinOpacity {
		t.Errorf("Opacity(12, 25) = %v, want floor %v", got, cfg.MinOpacity)
	}
}

func TestOpacity_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	fontSizes := []float64{-10, 0, math.NaN(), 1, 12, 14, 24, 96, 10000}
	charCounts := []int{0, 1, 25, 50, 100, 1 << 20}

	for _, fs := range fontSizes {
		for _, cc := range charCounts {
			got := cfg.Opacity(fs, cc)
			if got < cfg.MinOpacity || got > cfg.MaxOpacity {
				t.Errorf("Opacity(%v, %d) = %v, want within [%v, %v]",
					fs, cc, got, cfg.MinOpacity, cfg.MaxOpacity)
			}
		}
	}
}

func TestOpacity_MonotonicInFontSize(t *testing.T) {
	cfg := DefaultConfig()
	prev := math.Inf(-1)
	for fs := 1.0; fs <= 64; fs++ {
		got := cfg.Opacity(fs, 50)
		if got < prev {
			t.Fatalf("Opacity(%v, 50) = %v decreased below %v", fs, got, prev)
		}
		prev = got
	}
}

func TestOpacity_MonotonicInLength(t *testing.T) {
	cfg := DefaultConfig()
	prev := math.Inf(-1)
	for cc := 0; cc <= 200; cc++ {
		got := cfg.Opacity(24, cc)
		if got < prev {
			t.Fatalf("Opacity(24, %d) = %v decreased below %v", cc, got, prev)
		}
		prev = got
	}
}

func TestOpacity_MixedFontSizeDefault(t *testing.T) {
	cfg := DefaultConfig()
	// Non-numeric font size falls back to 14.
	want := cfg.Opacity(14, 50)
	for _, fs := range []float64{0, -1, math.NaN()} {
		if got := cfg.Opacity(fs, 50); got != want {
			t.Errorf("Opacity(%v, 50) = %v, want fallback value %v", fs, got, want)
		}
	}
}
