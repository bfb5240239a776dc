package ggcanvas

import (
	"image"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	studio "github.com/sitesmith/studio"
	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

func (c *Canvas) drawShape(n *scene.ShapeNode) {
	b := n.B
	fallback := parseColor(n.Fill, gg.RGBA{R: 0.8, G: 0.8, B: 0.8, A: 1})

	if n.Gradient != nil {
		c.dc.SetFillBrush(gradientBrush(n.Gradient, b.X, b.Y, b.Width, b.Height))
	} else {
		c.dc.SetColor(withOpacity(fallback, b.Opacity).Color())
	}

	cx := b.X + b.Width/2
	cy := b.Y + b.Height/2

	switch n.Shape {
	case schema.ShapeCircle:
		c.dc.DrawCircle(cx, cy, n.Radius())
	case schema.ShapeEllipse:
		c.dc.DrawEllipse(cx, cy, b.Width/2, b.Height/2)
	case schema.ShapeTriangle:
		c.dc.MoveTo(cx, b.Y)
		c.dc.LineTo(b.X+b.Width, b.Y+b.Height)
		c.dc.LineTo(b.X, b.Y+b.Height)
		c.dc.ClosePath()
	case schema.ShapeLine:
		c.drawLine(n)
		return
	case schema.ShapePolygon:
		c.dc.DrawRegularPolygon(6, cx, cy, n.Radius(), 0)
	default: // rectangle
		if n.BorderRadius > 0 {
			c.dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, n.BorderRadius)
		} else {
			c.dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		}
	}

	if n.Stroke != "" && n.StrokeWidth > 0 {
		c.dc.FillPreserve()
		c.dc.SetColor(withOpacity(parseColor(n.Stroke, gg.RGBA{A: 1}), b.Opacity).Color())
		c.dc.SetLineWidth(n.StrokeWidth)
		c.dc.Stroke()
	} else {
		c.dc.Fill()
	}
}

// drawLine strokes the box's horizontal midline, the divider semantics of
// a line layer.
func (c *Canvas) drawLine(n *scene.ShapeNode) {
	b := n.B
	width := n.StrokeWidth
	if width <= 0 {
		width = 2
	}
	col := n.Stroke
	if col == "" {
		col = n.Fill
	}
	c.dc.SetColor(withOpacity(parseColor(col, gg.RGBA{A: 1}), b.Opacity).Color())
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(b.X, b.Y+b.Height/2, b.X+b.Width, b.Y+b.Height/2)
	c.dc.Stroke()
}

func (c *Canvas) drawText(n *scene.TextNode) {
	face := c.face(n.FontFamily, n.FontSize)
	if face == nil {
		studio.Logger().Debug("no font source for family, skipping text node",
			"family", n.FontFamily, "node", n.B.ID)
		return
	}
	c.dc.SetFont(face)
	c.dc.SetColor(withOpacity(parseColor(n.Color, gg.RGBA{A: 1}), n.B.Opacity).Color())

	lineHeight := n.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.2
	}
	step := n.FontSize * lineHeight

	var x, ax float64
	switch n.Align {
	case schema.AlignCenter:
		x, ax = n.B.X+n.B.Width/2, 0.5
	case schema.AlignRight:
		x, ax = n.B.X+n.B.Width, 1
	default:
		x, ax = n.B.X, 0
	}

	for i, line := range strings.Split(n.Content, "\n") {
		if line == "" {
			continue
		}
		lineCenterY := n.B.Y + (float64(i)+0.5)*step
		c.dc.DrawStringAnchored(line, x, lineCenterY, ax, 0.5)
	}
}

// face returns a cached text face for the family at the given size, or
// nil when the family has no registered source.
func (c *Canvas) face(family string, size float64) text.Face {
	src, ok := c.sources[family]
	if !ok {
		f := c.fonts.Lookup(family)
		if f == nil {
			return nil
		}
		parsed, err := text.NewFontSource(f.Data)
		if err != nil {
			studio.Logger().Warn("registered font failed to parse for rendering",
				"family", family, "error", err)
			return nil
		}
		src = parsed
		c.sources[family] = src
	}
	return src.Face(size)
}

func (c *Canvas) drawImage(n *scene.ImageNode) {
	if n.Image == nil {
		return
	}
	b := n.B

	if n.BorderRadius > 0 {
		c.dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, n.BorderRadius)
		c.dc.Clip()
	} else {
		c.dc.ClipRect(b.X, b.Y, b.Width, b.Height)
	}
	defer c.dc.ResetClip()

	buf := gg.ImageBufFromImage(n.Image)
	srcW := float64(n.Image.Bounds().Dx())
	srcH := float64(n.Image.Bounds().Dy())
	if srcW <= 0 || srcH <= 0 {
		return
	}

	opts := gg.DrawImageOptions{
		Interpolation: gg.InterpBilinear,
		Opacity:       b.Opacity,
		BlendMode:     gg.BlendNormal,
	}

	switch n.Fit {
	case schema.FitContain, schema.FitScaleDown:
		scale := math.Min(b.Width/srcW, b.Height/srcH)
		if n.Fit == schema.FitScaleDown && scale > 1 {
			scale = 1
		}
		dw, dh := srcW*scale, srcH*scale
		opts.X = b.X + (b.Width-dw)/2
		opts.Y = b.Y + (b.Height-dh)/2
		opts.DstWidth, opts.DstHeight = dw, dh
	case schema.FitFill:
		opts.X, opts.Y = b.X, b.Y
		opts.DstWidth, opts.DstHeight = b.Width, b.Height
	case schema.FitNone:
		opts.X = b.X + (b.Width-srcW)/2
		opts.Y = b.Y + (b.Height-srcH)/2
	default: // cover
		scale := math.Max(b.Width/srcW, b.Height/srcH)
		cropW := b.Width / scale
		cropH := b.Height / scale
		src := image.Rect(
			int((srcW-cropW)/2), int((srcH-cropH)/2),
			int((srcW+cropW)/2), int((srcH+cropH)/2),
		)
		opts.SrcRect = &src
		opts.X, opts.Y = b.X, b.Y
		opts.DstWidth, opts.DstHeight = b.Width, b.Height
	}

	c.dc.DrawImageEx(buf, opts)
}

func withOpacity(col gg.RGBA, opacity float64) gg.RGBA {
	if opacity >= 1 {
		return col
	}
	col.A *= opacity
	return col
}
