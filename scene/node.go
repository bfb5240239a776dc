package scene

import (
	"image"

	"github.com/sitesmith/studio/schema"
)

// Kind identifies a node's primitive type.
type Kind string

// Node kinds.
const (
	KindShape Kind = "shape"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Base carries the geometry and compositing state every node shares.
// Editor selection and layout correlation key off ID.
type Base struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rotation  float64 `json:"rotation"`
	Opacity   float64 `json:"opacity"`
	Visible   bool    `json:"visible"`
	Locked    bool    `json:"locked"`
	BlendMode string  `json:"blendMode"`
}

// Node is one renderable element on the canvas.
type Node interface {
	Kind() Kind
	Base() *Base
}

// ShapeNode is a filled primitive: rectangle, circle, ellipse, triangle,
// line, or polygon.
type ShapeNode struct {
	B            Base             `json:"base"`
	Shape        schema.ShapeKind `json:"shape"`
	Fill         string           `json:"fill"`
	Stroke       string           `json:"stroke,omitempty"`
	StrokeWidth  float64          `json:"strokeWidth,omitempty"`
	BorderRadius float64          `json:"borderRadius,omitempty"`
	Gradient     *schema.Gradient `json:"gradient,omitempty"`
}

func (n *ShapeNode) Kind() Kind  { return KindShape }
func (n *ShapeNode) Base() *Base { return &n.B }

// Radius returns the radius a circle primitive inscribes in the node's
// box.
func (n *ShapeNode) Radius() float64 {
	r := n.B.Width
	if n.B.Height < r {
		r = n.B.Height
	}
	return r / 2
}

// TextNode is a styled text run.
type TextNode struct {
	B             Base    `json:"base"`
	Content       string  `json:"content"`
	FontFamily    string  `json:"fontFamily"`
	FontSize      float64 `json:"fontSize"`
	FontWeight    string  `json:"fontWeight"`
	FontStyle     string  `json:"fontStyle"`
	Align         string  `json:"align"`
	Color         string  `json:"color"`
	LineHeight    float64 `json:"lineHeight"`
	LetterSpacing float64 `json:"letterSpacing"`
}

func (n *TextNode) Kind() Kind  { return KindText }
func (n *TextNode) Base() *Base { return &n.B }

// ImageNode is a bitmap placed in a box. Placeholder marks substitutes
// for assets that failed to load; Src keeps the original reference for
// serialization either way.
type ImageNode struct {
	B            Base           `json:"base"`
	Src          string         `json:"src"`
	Image        image.Image    `json:"-"`
	Fit          schema.FitMode `json:"fit"`
	BorderRadius float64        `json:"borderRadius,omitempty"`
	Placeholder  bool           `json:"placeholder,omitempty"`
}

func (n *ImageNode) Kind() Kind  { return KindImage }
func (n *ImageNode) Base() *Base { return &n.B }
