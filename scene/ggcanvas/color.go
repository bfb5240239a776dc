package ggcanvas

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/sitesmith/studio/schema"
)

// parseColor turns the CSS-ish color strings the schema admits into a gg
// color. The schema validator already gated the prefix; malformed tails
// fall back to the caller's default rather than failing a layer.
func parseColor(s string, fallback gg.RGBA) gg.RGBA {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return gg.Hex(s)
	case strings.HasPrefix(s, "rgba("), strings.HasPrefix(s, "rgb("):
		if col, ok := parseRGBFunc(s); ok {
			return col
		}
	case strings.HasPrefix(s, "hsla("), strings.HasPrefix(s, "hsl("):
		if col, ok := parseHSLFunc(s); ok {
			return col
		}
	}
	return fallback
}

func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end <= open {
		return nil, false
	}
	parts := strings.Split(s[open+1:end], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseRGBFunc(s string) (gg.RGBA, bool) {
	parts, ok := funcArgs(s)
	if !ok || len(parts) < 3 {
		return gg.RGBA{}, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSuffix(parts[i], "%"), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		if strings.HasSuffix(parts[i], "%") {
			v = v / 100 * 255
		}
		ch[i] = clamp01(v / 255)
	}
	a := 1.0
	if len(parts) > 3 {
		v, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		a = clamp01(v)
	}
	return gg.RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

func parseHSLFunc(s string) (gg.RGBA, bool) {
	parts, ok := funcArgs(s)
	if !ok || len(parts) < 3 {
		return gg.RGBA{}, false
	}
	h, err1 := strconv.ParseFloat(strings.TrimSuffix(parts[0], "deg"), 64)
	sat, err2 := strconv.ParseFloat(strings.TrimSuffix(parts[1], "%"), 64)
	l, err3 := strconv.ParseFloat(strings.TrimSuffix(parts[2], "%"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return gg.RGBA{}, false
	}
	a := 1.0
	if len(parts) > 3 {
		v, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		a = clamp01(v)
	}
	r, g, b := hslToRGB(math.Mod(h, 360)/360, clamp01(sat/100), clamp01(l/100))
	return gg.RGBA{R: r, G: g, B: b, A: a}, true
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToChannel(p, q, h+1.0/3), hueToChannel(p, q, h), hueToChannel(p, q, h-1.0/3)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// gradientBrush builds a gg brush for a schema gradient filling the given
// box. Linear gradients honor the declared angle; radial gradients radiate
// from the box center.
func gradientBrush(g *schema.Gradient, x, y, w, h float64) gg.Brush {
	cx, cy := x+w/2, y+h/2

	if g.Type == schema.GradientRadial {
		brush := gg.NewRadialGradientBrush(cx, cy, 0, math.Max(w, h)/2)
		for _, stop := range g.Stops {
			brush.AddColorStop(stop.Offset, parseColor(stop.Color, gg.RGBA{A: 1}))
		}
		return brush
	}

	rad := g.Angle * math.Pi / 180
	dx := math.Cos(rad) * w / 2
	dy := math.Sin(rad) * h / 2
	brush := gg.NewLinearGradientBrush(cx-dx, cy-dy, cx+dx, cy+dy)
	for _, stop := range g.Stops {
		brush.AddColorStop(stop.Offset, parseColor(stop.Color, gg.RGBA{A: 1}))
	}
	return brush
}
