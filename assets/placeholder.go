package assets

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default placeholder dimensions, used when an image fails to load and
// the layer geometry is not yet known.
const (
	PlaceholderWidth  = 400
	PlaceholderHeight = 300
)

// PlaceholderCaption is drawn centered on every generated placeholder.
const PlaceholderCaption = "Image unavailable"

var (
	placeholderFill    = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	placeholderCaption = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
)

// Placeholder generates the flat-gray substitute image used when an
// asset cannot be loaded: solid fill with a centered caption.
func Placeholder(width, height int) image.Image {
	if width < 1 {
		width = PlaceholderWidth
	}
	if height < 1 {
		height = PlaceholderHeight
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderFill), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	captionWidth := font.MeasureString(face, PlaceholderCaption).Ceil()
	if captionWidth >= width {
		return img
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(placeholderCaption),
		Face: face,
		Dot: fixed.P(
			(width-captionWidth)/2,
			(height+face.Metrics().Ascent.Ceil())/2,
		),
	}
	d.DrawString(PlaceholderCaption)

	return img
}
