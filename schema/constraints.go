package schema

// SizeMode selects how a dimension resolves to pixels.
type SizeMode string

// Dimension resolution modes.
const (
	SizeFixed SizeMode = "fixed"
	SizeHug   SizeMode = "hug"
	SizeFill  SizeMode = "fill"
)

// SizeModes lists all valid size modes, first entry is the default.
var SizeModes = []SizeMode{SizeFixed, SizeHug, SizeFill}

// Dimension is one axis of a box's declared size.
type Dimension struct {
	Mode  SizeMode `json:"mode"`
	Value float64  `json:"value,omitempty"`
}

// Sides is a 4-sided length set (padding or margin).
type Sides struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// FlexDirection values.
const (
	DirectionRow    = "row"
	DirectionColumn = "column"
)

// AlignItems / JustifyContent values.
const (
	FlexStart    = "flex-start"
	FlexEnd      = "flex-end"
	FlexCenter   = "center"
	SpaceBetween = "space-between"
	SpaceAround  = "space-around"
)

// Constraints is the declarative sizing and arrangement contract attached
// to a section or component. Constraints are authored by the template
// source and consumed once per render pass by the layout engine; the
// engine never mutates them.
type Constraints struct {
	Width          Dimension `json:"width"`
	Height         Dimension `json:"height"`
	Padding        Sides     `json:"padding"`
	Margin         Sides     `json:"margin"`
	Gap            float64   `json:"gap"`
	FlexDirection  string    `json:"flexDirection"`
	AlignItems     string    `json:"alignItems"`
	JustifyContent string    `json:"justifyContent"`
}

// Section is a layout container: one top-level band of a page, holding an
// ordered run of components.
type Section struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Constraints Constraints `json:"constraints"`
	Components  []Component `json:"components"`
}

// Component is one leaf box inside a section.
type Component struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Constraints Constraints    `json:"constraints"`
	Props       map[string]any `json:"props,omitempty"`
}
