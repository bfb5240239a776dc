// Package render walks a validated document and builds its retained scene
// on a canvas: preload assets, compute layout, instantiate one node per
// layer, isolating failures per layer so one bad element never takes the
// frame down.
//
// Rendering is assets-first: every image and font the document references
// is resolved before the first node is added, so the scene never flashes
// unstyled content. A render that fails as a whole paints a dedicated
// error state and returns the error to the caller.
package render

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	studio "github.com/sitesmith/studio"
	"github.com/sitesmith/studio/assets"
	"github.com/sitesmith/studio/layout"
	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

// ErrSuperseded is returned by a render pass that was overtaken by a
// newer RenderTemplate call on the same renderer. The overtaken pass
// stops writing to the canvas as soon as it notices; the newest pass owns
// the surface.
var ErrSuperseded = errors.New("render: superseded by a newer render")

// ErrNoFrames is returned for documents without frames. Validated
// documents always have one; this guards direct callers.
var ErrNoFrames = errors.New("render: document has no frames")

// Renderer renders documents onto a single canvas. One renderer owns one
// canvas; renders are expected to be issued sequentially, and a newer
// render supersedes any still in flight.
type Renderer struct {
	canvas     scene.Canvas
	preloader  *assets.Preloader
	debug      bool
	generation atomic.Uint64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPreloader injects a shared asset preloader (and its cache).
func WithPreloader(p *assets.Preloader) Option {
	return func(r *Renderer) { r.preloader = p }
}

// WithDebug enables per-layer debug logging.
func WithDebug(debug bool) Option {
	return func(r *Renderer) { r.debug = debug }
}

// NewRenderer creates a renderer drawing onto canvas.
func NewRenderer(canvas scene.Canvas, opts ...Option) *Renderer {
	r := &Renderer{canvas: canvas}
	for _, opt := range opts {
		opt(r)
	}
	if r.preloader == nil {
		r.preloader = assets.NewPreloader(assets.WithDebug(r.debug))
	}
	return r
}

// RenderRaw validates untrusted template input and renders it. Validation
// failure (non-object root) triggers the error-state render.
func (r *Renderer) RenderRaw(ctx context.Context, raw any) error {
	doc, err := schema.Validate(raw)
	if err != nil {
		r.RenderError(err)
		return err
	}
	return r.RenderTemplate(ctx, doc)
}

// RenderTemplate renders a validated document's first frame onto the
// canvas. Per-layer failures are logged and skipped; an error that
// escapes the per-layer guards paints the error state and is returned.
func (r *Renderer) RenderTemplate(ctx context.Context, doc schema.Document) (err error) {
	gen := r.generation.Add(1)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render: %v", p)
		}
		if err != nil && !errors.Is(err, ErrSuperseded) {
			r.RenderError(err)
		}
	}()

	if len(doc.Frames) == 0 {
		return ErrNoFrames
	}
	frame := doc.Frames[0]

	studio.Logger().Info("render started",
		"template", doc.ID, "layers", len(frame.Layers))

	urls, families := collectAssets(doc)
	images := r.preloader.PreloadImages(ctx, urls)
	r.preloader.PreloadFonts(ctx, families)

	// The preload join is the long suspension point; check for a newer
	// render before touching the canvas at all.
	if r.generation.Load() != gen {
		studio.Logger().Info("render superseded during preload", "template", doc.ID)
		return ErrSuperseded
	}

	r.canvas.Clear()
	r.canvas.SetSize(frame.Width, frame.Height)
	r.canvas.SetBackground(frame.Background)
	if frame.Background.Type == schema.BackgroundImage && frame.Background.Src != "" {
		r.addBackgroundImage(frame, images)
	}

	geometry := frameGeometry(frame)

	for i := range frame.Layers {
		if r.generation.Load() != gen {
			studio.Logger().Info("render superseded mid-frame", "template", doc.ID)
			return ErrSuperseded
		}
		l := &frame.Layers[i]
		pos := position{x: l.X, y: l.Y, w: l.Width, h: l.Height}
		if g, ok := geometry[l.ID]; ok {
			pos = g
		}
		r.renderLayerIsolated(l, pos, images)
	}

	studio.Logger().Info("render done", "template", doc.ID, "nodes", len(r.canvas.Nodes()))
	return nil
}

// renderLayerIsolated guards one layer render so a failure cannot abort
// siblings.
func (r *Renderer) renderLayerIsolated(l *schema.Layer, pos position, images map[string]*assets.Asset) {
	defer func() {
		if p := recover(); p != nil {
			studio.Logger().Warn("layer render failed, skipping",
				"layer", l.ID, "type", l.Type, "panic", p)
		}
	}()
	if err := r.renderLayer(l, pos, images); err != nil {
		studio.Logger().Warn("layer render failed, skipping",
			"layer", l.ID, "type", l.Type, "error", err)
	}
}

// frameGeometry computes cursor-layout geometry for a frame's top-level
// layers when the frame declares a flex layout. Free and grid frames keep
// authored positions.
func frameGeometry(frame schema.Frame) map[string]position {
	dir := ""
	switch frame.Layout {
	case schema.LayoutFlexColumn:
		dir = schema.DirectionColumn
	case schema.LayoutFlexRow:
		dir = schema.DirectionRow
	default:
		return nil
	}

	section := schema.Section{
		ID: "frame",
		Constraints: schema.Constraints{
			Width:         schema.Dimension{Mode: schema.SizeFixed, Value: frame.Width},
			Height:        schema.Dimension{Mode: schema.SizeFixed, Value: frame.Height},
			Gap:           frame.Gap,
			Padding:       schema.Sides{Top: frame.Padding, Right: frame.Padding, Bottom: frame.Padding, Left: frame.Padding},
			FlexDirection: dir,
		},
	}
	for _, l := range frame.Layers {
		section.Components = append(section.Components, schema.Component{
			ID: l.ID,
			Constraints: schema.Constraints{
				Width:  schema.Dimension{Mode: schema.SizeFixed, Value: l.Width},
				Height: schema.Dimension{Mode: schema.SizeFixed, Value: l.Height},
			},
		})
	}

	res := layout.ApplyIn(section, frame.Width, frame.Height)
	out := make(map[string]position, len(res.Components))
	for _, c := range res.Components {
		out[c.ID] = position{x: c.X, y: c.Y, w: c.Width, h: c.Height}
	}
	return out
}

// position is resolved absolute geometry for one layer.
type position struct {
	x, y, w, h float64
}

func (r *Renderer) addBackgroundImage(frame schema.Frame, images map[string]*assets.Asset) {
	asset := images[frame.Background.Src]
	if asset == nil {
		return
	}
	node := &scene.ImageNode{
		B: scene.Base{
			ID: "background", Name: "Background",
			Width: frame.Width, Height: frame.Height,
			Opacity: 1, Visible: true, BlendMode: string(schema.BlendNormal),
		},
		Src:         frame.Background.Src,
		Image:       asset.Image,
		Fit:         schema.FitCover,
		Placeholder: asset.Placeholder(),
	}
	if err := r.canvas.AddNode(node); err != nil {
		studio.Logger().Warn("background image node rejected", "error", err)
	}
}
