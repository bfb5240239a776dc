// Package ggcanvas implements the scene.Canvas port on top of the gg
// drawing context, rasterizing the retained node set for preview and
// export.
//
// The adapter keeps an in-memory scene model as source of truth and
// repaints the pixmap from it whenever retained state changes. Adds are
// incremental (the new node paints over the existing raster); removals
// and transforms trigger a full repaint.
package ggcanvas

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/sitesmith/studio/assets"
	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

// Canvas rasterizes scene nodes through gg.
type Canvas struct {
	dc    *gg.Context
	model *scene.Mem

	fonts   *assets.FontRegistry
	sources map[string]*text.FontSource
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithFonts supplies the registry consulted for text node font families.
func WithFonts(r *assets.FontRegistry) Option {
	return func(c *Canvas) { c.fonts = r }
}

// New creates a canvas with the given pixel dimensions.
func New(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		dc:      gg.NewContext(width, height),
		model:   scene.NewMem(),
		fonts:   assets.DefaultFonts,
		sources: make(map[string]*text.FontSource),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.model.SetSize(float64(width), float64(height))
	c.paintBackground()
	return c
}

var _ scene.Canvas = (*Canvas)(nil)

// AddNode implements scene.Canvas.
func (c *Canvas) AddNode(n scene.Node) error {
	if err := c.model.AddNode(n); err != nil {
		return err
	}
	c.drawNode(n)
	return nil
}

// RemoveNode implements scene.Canvas.
func (c *Canvas) RemoveNode(id string) error {
	if err := c.model.RemoveNode(id); err != nil {
		return err
	}
	c.repaint()
	return nil
}

// SetTransform implements scene.Canvas.
func (c *Canvas) SetTransform(id string, t scene.Transform) error {
	if err := c.model.SetTransform(id, t); err != nil {
		return err
	}
	c.repaint()
	return nil
}

// SetSize implements scene.Canvas. The raster is recreated at the new
// dimensions and repainted.
func (c *Canvas) SetSize(width, height float64) {
	w, h := int(math.Round(width)), int(math.Round(height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.model.SetSize(width, height)
	if err := c.dc.Resize(w, h); err != nil {
		c.dc = gg.NewContext(w, h)
	}
	c.repaint()
}

// SetBackground implements scene.Canvas.
func (c *Canvas) SetBackground(bg schema.Background) {
	c.model.SetBackground(bg)
	c.repaint()
}

// Clear implements scene.Canvas.
func (c *Canvas) Clear() {
	c.model.Clear()
	c.repaint()
}

// Nodes implements scene.Canvas.
func (c *Canvas) Nodes() []scene.Node { return c.model.Nodes() }

// Serialize implements scene.Canvas.
func (c *Canvas) Serialize() ([]byte, error) { return c.model.Serialize() }

// Image returns the current raster.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the current raster as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("ggcanvas: encode png: %w", err)
	}
	return nil
}

// repaint redraws the full raster from the retained model.
func (c *Canvas) repaint() {
	c.paintBackground()
	for _, n := range c.model.Nodes() {
		c.drawNode(n)
	}
}

func (c *Canvas) paintBackground() {
	bg := c.model.Background()
	w := float64(c.dc.Width())
	h := float64(c.dc.Height())

	switch {
	case bg.Type == schema.BackgroundGradient && bg.Gradient != nil:
		c.dc.ClearWithColor(gg.RGBA{R: 1, G: 1, B: 1, A: 1})
		c.dc.SetFillBrush(gradientBrush(bg.Gradient, 0, 0, w, h))
		c.dc.DrawRectangle(0, 0, w, h)
		c.dc.Fill()
	case bg.Color != "":
		c.dc.ClearWithColor(parseColor(bg.Color, gg.RGBA{R: 1, G: 1, B: 1, A: 1}))
	default:
		// Image backgrounds arrive as an image node from the renderer;
		// here the surface just starts white.
		c.dc.ClearWithColor(gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	}
}

func (c *Canvas) drawNode(n scene.Node) {
	b := n.Base()
	if !b.Visible || b.Opacity <= 0 {
		return
	}

	c.dc.Push()
	defer c.dc.Pop()

	if b.Rotation != 0 {
		cx := b.X + b.Width/2
		cy := b.Y + b.Height/2
		c.dc.RotateAbout(b.Rotation*math.Pi/180, cx, cy)
	}

	switch node := n.(type) {
	case *scene.ShapeNode:
		c.drawShape(node)
	case *scene.TextNode:
		c.drawText(node)
	case *scene.ImageNode:
		c.drawImage(node)
	}
}
