package schema

// Field defaults substituted by the validator. These are part of the
// observable contract: validating an empty object yields exactly these
// values.
const (
	DefaultName        = "Untitled Template"
	DefaultFrameWidth  = 1920.0
	DefaultFrameHeight = 1080.0
	DefaultBackground  = "#ffffff"

	DefaultLayerSize = 100.0
	DefaultOpacity   = 1.0

	DefaultTextContent = "Text"
	DefaultFontFamily  = "Inter"
	DefaultFontSize    = 16.0
	DefaultFontWeight  = "normal"
	DefaultFontStyle   = "normal"
	DefaultTextColor   = "#000000"
	DefaultLineHeight  = 1.2

	DefaultShapeFill = "#cccccc"

	DefaultComponentName = "button"
	DefaultVariantName   = "web"

	MinFontSize = 8.0
	MaxFontSize = 500.0
)

// DefaultFrame returns the frame synthesized when a document has none: a
// white 1920x1080 artboard with no layers.
func DefaultFrame() Frame {
	return Frame{
		Width:  DefaultFrameWidth,
		Height: DefaultFrameHeight,
		Background: Background{
			Type:  BackgroundColor,
			Color: DefaultBackground,
		},
		Layers: []Layer{},
		Layout: LayoutFree,
	}
}

// DefaultVariant returns the variant synthesized when a document declares
// none.
func DefaultVariant() Variant {
	return Variant{
		Name:   DefaultVariantName,
		Width:  DefaultFrameWidth,
		Height: DefaultFrameHeight,
	}
}
