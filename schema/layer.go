package schema

// LayerType discriminates the layer tagged union.
type LayerType string

// Layer kinds. The first entry is the default substituted for an
// unrecognized type.
const (
	LayerText      LayerType = "text"
	LayerImage     LayerType = "image"
	LayerShape     LayerType = "shape"
	LayerGroup     LayerType = "group"
	LayerComponent LayerType = "component"
)

// LayerTypes lists all valid layer types.
var LayerTypes = []LayerType{LayerText, LayerImage, LayerShape, LayerGroup, LayerComponent}

// FitMode controls how an image layer maps its bitmap into its box.
type FitMode string

// Image fit modes.
const (
	FitCover     FitMode = "cover"
	FitContain   FitMode = "contain"
	FitFill      FitMode = "fill"
	FitScaleDown FitMode = "scale-down"
	FitNone      FitMode = "none"
)

// FitModes lists all valid image fit modes, first entry is the default.
var FitModes = []FitMode{FitCover, FitContain, FitFill, FitScaleDown, FitNone}

// ShapeKind selects the primitive drawn by a shape layer.
type ShapeKind string

// Shape kinds.
const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeTriangle  ShapeKind = "triangle"
	ShapeLine      ShapeKind = "line"
	ShapePolygon   ShapeKind = "polygon"
)

// ShapeKinds lists all valid shape kinds, first entry is the default.
var ShapeKinds = []ShapeKind{ShapeRectangle, ShapeCircle, ShapeEllipse, ShapeTriangle, ShapeLine, ShapePolygon}

// BlendMode selects how a layer composites over what is already painted.
type BlendMode string

// Blend modes.
const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
	BlendDarken   BlendMode = "darken"
	BlendLighten  BlendMode = "lighten"
)

// BlendModes lists all valid blend modes, first entry is the default.
var BlendModes = []BlendMode{BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendDarken, BlendLighten}

// FilterType discriminates image filters.
type FilterType string

// Image filter kinds.
const (
	FilterBlur       FilterType = "blur"
	FilterBrightness FilterType = "brightness"
	FilterContrast   FilterType = "contrast"
	FilterGrayscale  FilterType = "grayscale"
	FilterSaturate   FilterType = "saturate"
	FilterSepia      FilterType = "sepia"
	FilterInvert     FilterType = "invert"
)

// FilterTypes lists all valid filter types, first entry is the default.
var FilterTypes = []FilterType{FilterBlur, FilterBrightness, FilterContrast, FilterGrayscale, FilterSaturate, FilterSepia, FilterInvert}

// Filter is one visual effect applied to an image layer.
type Filter struct {
	Type  FilterType `json:"type"`
	Value float64    `json:"value"`
}

// TextAlign values.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// TextAligns lists all valid text alignments, first entry is the default.
var TextAligns = []string{AlignLeft, AlignCenter, AlignRight, AlignJustify}

// GroupLayout is the optional sub-layout descriptor of a group layer.
type GroupLayout struct {
	Mode    LayoutMode `json:"mode"`
	Gap     float64    `json:"gap"`
	Padding float64    `json:"padding"`
}

// Layer is one visual element of a frame. It is a tagged union on Type:
// only the field group matching Type is meaningful, the rest stay at their
// zero values and are omitted from JSON. Groups nest recursively; a layer
// belongs to exactly one parent, so the structure is a tree by
// construction.
type Layer struct {
	// Common fields, valid for every type.
	Type      LayerType `json:"type"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Rotation  float64   `json:"rotation"`
	Opacity   float64   `json:"opacity"`
	Visible   bool      `json:"visible"`
	Locked    bool      `json:"locked"`
	BlendMode BlendMode `json:"blendMode"`

	// Text fields.
	Content       string  `json:"content,omitempty"`
	FontFamily    string  `json:"fontFamily,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontWeight    string  `json:"fontWeight,omitempty"`
	FontStyle     string  `json:"fontStyle,omitempty"`
	TextAlign     string  `json:"textAlign,omitempty"`
	Color         string  `json:"color,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`

	// Image fields.
	Src          string   `json:"src,omitempty"`
	Fit          FitMode  `json:"fit,omitempty"`
	Filters      []Filter `json:"filters,omitempty"`
	BorderRadius float64  `json:"borderRadius,omitempty"`

	// Shape fields. BorderRadius is shared with image layers.
	Shape       ShapeKind `json:"shape,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Gradient    *Gradient `json:"gradient,omitempty"`

	// Group fields.
	Layers []Layer      `json:"layers,omitempty"`
	Layout *GroupLayout `json:"layout,omitempty"`

	// Component fields.
	Component string         `json:"component,omitempty"`
	Variant   string         `json:"variant,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
}

// Walk calls fn for every layer in the subtree rooted at l, parents before
// children. It returns false from fn to stop descending into a group.
func (l *Layer) Walk(fn func(*Layer) bool) {
	if !fn(l) {
		return
	}
	if l.Type == LayerGroup {
		for i := range l.Layers {
			l.Layers[i].Walk(fn)
		}
	}
}
