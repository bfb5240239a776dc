// Package schema defines the document model for design templates and the
// validator that coerces arbitrary untrusted JSON into it.
//
// The JSON field names and enum values in this package are a wire contract:
// existing documents produced by the builder (or by the AI template
// pipeline) round-trip through these types bit-exactly.
package schema

// Document is a validated design template. After Validate it always has at
// least one frame and at least one variant.
type Document struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Frames   []Frame   `json:"frames"`
	Variants []Variant `json:"variants,omitempty"`
}

// Variant describes one output target of a template (e.g. web, story,
// square). Templates with no variants get a single default web variant.
type Variant struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutMode selects how a frame arranges its direct children.
type LayoutMode string

// Frame layout modes.
const (
	LayoutFree       LayoutMode = "free"
	LayoutFlexColumn LayoutMode = "flex-column"
	LayoutFlexRow    LayoutMode = "flex-row"
	LayoutGrid       LayoutMode = "grid"
)

// LayoutModes lists all valid frame layout modes, first entry is the
// default.
var LayoutModes = []LayoutMode{LayoutFree, LayoutFlexColumn, LayoutFlexRow, LayoutGrid}

// Frame is a fixed-size artboard holding ordered layers. Layer order is
// paint order: the last layer paints in front.
type Frame struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background Background `json:"background"`
	Layers     []Layer    `json:"layers"`
	Layout     LayoutMode `json:"layout"`
	Gap        float64    `json:"gap"`
	Padding    float64    `json:"padding"`
}

// BackgroundType discriminates frame background descriptors.
type BackgroundType string

// Background descriptor kinds.
const (
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
)

// Background describes what a frame paints behind its layers.
type Background struct {
	Type     BackgroundType `json:"type"`
	Color    string         `json:"color,omitempty"`
	Gradient *Gradient      `json:"gradient,omitempty"`
	Src      string         `json:"src,omitempty"`
}

// GradientType discriminates gradient descriptors.
type GradientType string

// Gradient kinds.
const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Gradient is a multi-stop color ramp.
type Gradient struct {
	Type  GradientType   `json:"type"`
	Stops []GradientStop `json:"stops"`
	Angle float64        `json:"angle,omitempty"`
}

// GradientStop is one color position on a gradient, offset in [0, 1].
type GradientStop struct {
	Color  string  `json:"color"`
	Offset float64 `json:"offset"`
}
