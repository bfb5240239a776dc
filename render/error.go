package render

import (
	studio "github.com/sitesmith/studio"
	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

// Error-state surface styling.
const (
	errorBackground = "#fef2f2"
	errorTextColor  = "#b91c1c"
	errorTitle      = "Failed to render template"

	errorSurfaceWidth  = 800.0
	errorSurfaceHeight = 450.0
)

// RenderError paints the terminal error state: clear surface, tinted
// background, and a centered two-line message. It is always reachable and
// overrides whatever partial content a failed render left behind.
func (r *Renderer) RenderError(cause error) {
	studio.Logger().Warn("rendering error state", "error", cause)

	r.canvas.Clear()
	r.canvas.SetSize(errorSurfaceWidth, errorSurfaceHeight)
	r.canvas.SetBackground(schema.Background{
		Type:  schema.BackgroundColor,
		Color: errorBackground,
	})

	detail := ""
	if cause != nil {
		detail = cause.Error()
	}

	title := &scene.TextNode{
		B: scene.Base{
			ID: "error-title", Name: "Error title",
			X: 0, Y: errorSurfaceHeight/2 - 40,
			Width: errorSurfaceWidth, Height: 32,
			Opacity: 1, Visible: true, BlendMode: string(schema.BlendNormal),
		},
		Content:    errorTitle,
		FontFamily: schema.DefaultFontFamily,
		FontSize:   24,
		FontWeight: "bold",
		Align:      schema.AlignCenter,
		Color:      errorTextColor,
		LineHeight: schema.DefaultLineHeight,
	}
	message := &scene.TextNode{
		B: scene.Base{
			ID: "error-message", Name: "Error message",
			X: 0, Y: errorSurfaceHeight/2 + 8,
			Width: errorSurfaceWidth, Height: 24,
			Opacity: 1, Visible: true, BlendMode: string(schema.BlendNormal),
		},
		Content:    detail,
		FontFamily: schema.DefaultFontFamily,
		FontSize:   14,
		Align:      schema.AlignCenter,
		Color:      errorTextColor,
		LineHeight: schema.DefaultLineHeight,
	}

	if err := r.canvas.AddNode(title); err != nil {
		studio.Logger().Warn("error-state title rejected", "error", err)
	}
	if detail != "" {
		if err := r.canvas.AddNode(message); err != nil {
			studio.Logger().Warn("error-state message rejected", "error", err)
		}
	}
}
