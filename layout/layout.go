// Package layout computes absolute pixel geometry for a section's
// component run from its declarative sizing constraints.
//
// The model is a single-pass, non-wrapping box walk: each dimension
// resolves through its mode (fixed, fill, hug), then a cursor advances
// along the flex direction placing components one after another. There is
// no wrapping, no grow/shrink distribution, and no intrinsic measurement
// of text or images. Apply is a pure function: same input, same geometry,
// and the input tree is never mutated.
package layout

import "github.com/sitesmith/studio/schema"

// Content-size fallbacks used when a hug dimension carries no value.
// Hug sizing without measurement has nothing to hug, so these stand in
// for typical section and component footprints.
const (
	HugSectionWidth    = 1200.0
	HugSectionHeight   = 400.0
	HugComponentWidth  = 200.0
	HugComponentHeight = 100.0
)

// ComponentLayout is the resolved absolute geometry of one component.
// Recomputed on every render pass, never persisted; ID correlates the box
// back to its source component.
type ComponentLayout struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result is the geometry computed for a section.
//
// JustifyContent echoes the section's declared main-axis distribution.
// The cursor walk does not apply it: components always pack from the
// start. It is surfaced here so callers can tell "declared but
// unimplemented" apart from "absent".
type Result struct {
	Width          float64
	Height         float64
	Components     []ComponentLayout
	JustifyContent string
}

// Apply computes geometry for a top-level section. Top-level fill
// dimensions have no parent to fill and resolve to 0, so top-level
// sections are expected to declare fixed or hug sizes.
func Apply(section schema.Section) Result {
	return ApplyIn(section, 0, 0)
}

// ApplyIn computes geometry for a section nested in a parent of the given
// resolved size.
func ApplyIn(section schema.Section, parentWidth, parentHeight float64) Result {
	c := section.Constraints

	width := resolve(c.Width, parentWidth, HugSectionWidth)
	height := resolve(c.Height, parentHeight, HugSectionHeight)

	res := Result{
		Width:          width,
		Height:         height,
		Components:     make([]ComponentLayout, 0, len(section.Components)),
		JustifyContent: c.JustifyContent,
	}

	cursorX := c.Padding.Left
	cursorY := c.Padding.Top
	row := c.FlexDirection != schema.DirectionColumn

	for _, comp := range section.Components {
		cc := comp.Constraints
		w := resolve(cc.Width, width, HugComponentWidth)
		h := resolve(cc.Height, height, HugComponentHeight)

		x := cursorX + cc.Margin.Left
		y := cursorY + cc.Margin.Top

		// Cross-axis alignment overrides the cursor position on the
		// perpendicular axis.
		if row {
			switch c.AlignItems {
			case schema.FlexCenter:
				y = (height - h) / 2
			case schema.FlexEnd:
				y = height - h - c.Padding.Bottom
			}
		} else {
			switch c.AlignItems {
			case schema.FlexCenter:
				x = (width - w) / 2
			case schema.FlexEnd:
				x = width - w - c.Padding.Right
			}
		}

		res.Components = append(res.Components, ComponentLayout{
			ID:     comp.ID,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})

		// Advance by size + gap from the offset position. Trailing
		// margins do not participate in the flow.
		if row {
			cursorX = x + w + c.Gap
		} else {
			cursorY = y + h + c.Gap
		}
	}

	return res
}

// resolve turns one declared dimension into pixels. fill uses the parent
// size (0 when there is no parent context); hug uses the declared value or
// the content-size fallback.
func resolve(d schema.Dimension, parent, hugDefault float64) float64 {
	switch d.Mode {
	case schema.SizeFill:
		return parent
	case schema.SizeHug:
		if d.Value > 0 {
			return d.Value
		}
		return hugDefault
	default: // fixed, and anything unrecognized behaves as fixed
		if d.Value > 0 {
			return d.Value
		}
		return 0
	}
}
