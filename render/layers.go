package render

import (
	"fmt"

	studio "github.com/sitesmith/studio"
	"github.com/sitesmith/studio/assets"
	"github.com/sitesmith/studio/layout"
	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

// renderLayer instantiates the node(s) for one layer at the given
// resolved position. Groups recurse and add no node of their own.
func (r *Renderer) renderLayer(l *schema.Layer, pos position, images map[string]*assets.Asset) error {
	if r.debug {
		studio.Logger().Debug("render layer", "id", l.ID, "type", l.Type,
			"x", pos.x, "y", pos.y, "w", pos.w, "h", pos.h)
	}

	base := scene.Base{
		ID:        l.ID,
		Name:      l.Name,
		X:         pos.x,
		Y:         pos.y,
		Width:     pos.w,
		Height:    pos.h,
		Rotation:  l.Rotation,
		Opacity:   l.Opacity,
		Visible:   l.Visible,
		Locked:    l.Locked,
		BlendMode: string(l.BlendMode),
	}

	switch l.Type {
	case schema.LayerText:
		return r.canvas.AddNode(&scene.TextNode{
			B:             base,
			Content:       l.Content,
			FontFamily:    l.FontFamily,
			FontSize:      l.FontSize,
			FontWeight:    l.FontWeight,
			FontStyle:     l.FontStyle,
			Align:         l.TextAlign,
			Color:         l.Color,
			LineHeight:    l.LineHeight,
			LetterSpacing: l.LetterSpacing,
		})

	case schema.LayerImage:
		return r.addImageNode(l, base, images)

	case schema.LayerShape:
		return r.canvas.AddNode(&scene.ShapeNode{
			B:            base,
			Shape:        l.Shape,
			Fill:         l.Fill,
			Stroke:       l.Stroke,
			StrokeWidth:  l.StrokeWidth,
			BorderRadius: l.BorderRadius,
			Gradient:     l.Gradient,
		})

	case schema.LayerGroup:
		return r.renderGroup(l, pos, images)

	case schema.LayerComponent:
		return r.renderComponent(l, base)

	default:
		return fmt.Errorf("render: unknown layer type %q", l.Type)
	}
}

// addImageNode adds the bitmap node for an image layer, substituting the
// preloaded placeholder when the source failed. A failed image still
// produces exactly one node — never zero.
func (r *Renderer) addImageNode(l *schema.Layer, base scene.Base, images map[string]*assets.Asset) error {
	node := &scene.ImageNode{
		B:            base,
		Src:          l.Src,
		Fit:          l.Fit,
		BorderRadius: l.BorderRadius,
	}
	if asset := images[l.Src]; asset != nil {
		node.Image = asset.Image
		node.Placeholder = asset.Placeholder()
	} else {
		node.Image = assets.Placeholder(int(base.Width), int(base.Height))
		node.Placeholder = true
	}
	return r.canvas.AddNode(node)
}

// renderGroup positions and renders a group's children. With a flex
// sub-layout the children flow through the cursor engine inside the
// group's box; otherwise child coordinates are relative to the group
// origin.
func (r *Renderer) renderGroup(l *schema.Layer, pos position, images map[string]*assets.Asset) error {
	geometry := groupGeometry(l, pos)

	for i := range l.Layers {
		child := &l.Layers[i]
		childPos := position{
			x: pos.x + child.X,
			y: pos.y + child.Y,
			w: child.Width,
			h: child.Height,
		}
		if g, ok := geometry[child.ID]; ok {
			childPos = g
		}
		r.renderLayerIsolated(child, childPos, images)
	}
	return nil
}

func groupGeometry(l *schema.Layer, pos position) map[string]position {
	if l.Layout == nil {
		return nil
	}
	dir := ""
	switch l.Layout.Mode {
	case schema.LayoutFlexColumn:
		dir = schema.DirectionColumn
	case schema.LayoutFlexRow:
		dir = schema.DirectionRow
	default:
		return nil
	}

	section := schema.Section{
		ID: l.ID,
		Constraints: schema.Constraints{
			Width:  schema.Dimension{Mode: schema.SizeFixed, Value: pos.w},
			Height: schema.Dimension{Mode: schema.SizeFixed, Value: pos.h},
			Gap:    l.Layout.Gap,
			Padding: schema.Sides{
				Top: l.Layout.Padding, Right: l.Layout.Padding,
				Bottom: l.Layout.Padding, Left: l.Layout.Padding,
			},
			FlexDirection: dir,
		},
	}
	for _, child := range l.Layers {
		section.Components = append(section.Components, schema.Component{
			ID: child.ID,
			Constraints: schema.Constraints{
				Width:  schema.Dimension{Mode: schema.SizeFixed, Value: child.Width},
				Height: schema.Dimension{Mode: schema.SizeFixed, Value: child.Height},
			},
		})
	}

	res := layout.ApplyIn(section, pos.w, pos.h)
	out := make(map[string]position, len(res.Components))
	for _, c := range res.Components {
		out[c.ID] = position{x: pos.x + c.X, y: pos.y + c.Y, w: c.Width, h: c.Height}
	}
	return out
}

// renderComponent expands a component layer into its primitive nodes. A
// button is a filled rounded rectangle plus a centered label; every other
// component renders the same composite with its own label, which keeps
// each part independently selectable in the editor.
func (r *Renderer) renderComponent(l *schema.Layer, base scene.Base) error {
	fill := propString(l.Props, "color", "#3b82f6")
	if !schema.IsColor(fill) {
		fill = "#3b82f6"
	}
	label := propString(l.Props, "label", "")
	if label == "" {
		label = l.Name
	}
	if label == "" || label == "Layer" {
		label = l.Component
	}

	bg := base
	bg.ID = l.ID + "-bg"
	bg.Name = l.Name + " background"
	if err := r.canvas.AddNode(&scene.ShapeNode{
		B:            bg,
		Shape:        schema.ShapeRectangle,
		Fill:         fill,
		BorderRadius: propNumber(l.Props, "borderRadius", 8),
	}); err != nil {
		return err
	}

	text := base
	text.ID = l.ID + "-label"
	text.Name = l.Name + " label"
	return r.canvas.AddNode(&scene.TextNode{
		B:          text,
		Content:    label,
		FontFamily: propString(l.Props, "fontFamily", schema.DefaultFontFamily),
		FontSize:   propNumber(l.Props, "fontSize", schema.DefaultFontSize),
		FontWeight: "bold",
		Align:      schema.AlignCenter,
		Color:      propString(l.Props, "textColor", "#ffffff"),
		LineHeight: schema.DefaultLineHeight,
	})
}

func propString(props map[string]any, key, def string) string {
	if s, ok := props[key].(string); ok && s != "" {
		return s
	}
	return def
}

func propNumber(props map[string]any, key string, def float64) float64 {
	switch n := props[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}
