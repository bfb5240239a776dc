package ggcanvas

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 0.02 }

func TestParseColorHex(t *testing.T) {
	col := parseColor("#ff0000", gg.RGBA{})
	if !almost(col.R, 1) || !almost(col.G, 0) || !almost(col.B, 0) || !almost(col.A, 1) {
		t.Errorf("#ff0000 = %+v", col)
	}
}

func TestParseColorRGBFunc(t *testing.T) {
	col := parseColor("rgb(0, 128, 255)", gg.RGBA{})
	if !almost(col.R, 0) || !almost(col.G, 0.5) || !almost(col.B, 1) {
		t.Errorf("rgb(0,128,255) = %+v", col)
	}

	col = parseColor("rgba(255, 0, 0, 0.5)", gg.RGBA{})
	if !almost(col.A, 0.5) {
		t.Errorf("rgba alpha = %v, want 0.5", col.A)
	}
}

func TestParseColorHSLFunc(t *testing.T) {
	// hsl(0, 100%, 50%) is pure red.
	col := parseColor("hsl(0, 100%, 50%)", gg.RGBA{})
	if !almost(col.R, 1) || !almost(col.G, 0) || !almost(col.B, 0) {
		t.Errorf("hsl red = %+v", col)
	}

	// hsl(120, 100%, 50%) is pure green.
	col = parseColor("hsl(120, 100%, 50%)", gg.RGBA{})
	if !almost(col.G, 1) || !almost(col.R, 0) {
		t.Errorf("hsl green = %+v", col)
	}
}

func TestParseColorFallback(t *testing.T) {
	fb := gg.RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1}
	for _, bad := range []string{"", "red", "rgb(oops)", "hsl()"} {
		if col := parseColor(bad, fb); col != fb {
			t.Errorf("parseColor(%q) = %+v, want fallback", bad, col)
		}
	}
}
