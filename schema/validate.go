package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/jsonc"
)

// ErrNotObject is returned when the template root is not a JSON object.
// It is the only error Validate can produce: everything below the root is
// coerced, never rejected.
var ErrNotObject = errors.New("schema: template root is not an object")

// Validate coerces arbitrary untrusted input into a fully populated,
// renderable Document. Every field is defaulted independently: wrong-typed
// scalars, out-of-enum values, and out-of-range numbers are replaced with
// their documented defaults; a document with no frames gains one default
// frame. Validate never fails for object input, and a validated document
// is a fixed point: Validate(Validate(x)) equals Validate(x).
func Validate(raw any) (Document, error) {
	m, err := toObject(raw)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:   coerceString(m, "id", ""),
		Name: coerceString(m, "name", DefaultName),
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	seen := make(map[string]bool)

	for _, f := range array(m, "frames") {
		fm, ok := f.(map[string]any)
		if !ok {
			continue
		}
		doc.Frames = append(doc.Frames, validateFrame(fm, seen))
	}
	if len(doc.Frames) == 0 {
		doc.Frames = []Frame{DefaultFrame()}
	}

	for _, v := range array(m, "variants") {
		vm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		doc.Variants = append(doc.Variants, Variant{
			Name:   coerceString(vm, "name", DefaultVariantName),
			Width:  coercePositive(vm, "width", DefaultFrameWidth),
			Height: coercePositive(vm, "height", DefaultFrameHeight),
		})
	}
	if len(doc.Variants) == 0 {
		doc.Variants = []Variant{DefaultVariant()}
	}

	return doc, nil
}

// ValidateJSON decodes template JSON and validates it. The decode is
// lenient about comments and trailing commas, which LLM output routinely
// contains.
func ValidateJSON(data []byte) (Document, error) {
	var raw any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return Document{}, fmt.Errorf("schema: parse template: %w", err)
	}
	return Validate(raw)
}

func validateFrame(m map[string]any, seen map[string]bool) Frame {
	fr := Frame{
		Width:      coercePositive(m, "width", DefaultFrameWidth),
		Height:     coercePositive(m, "height", DefaultFrameHeight),
		Background: validateBackground(object(m, "background")),
		Layers:     []Layer{},
		Layout:     LayoutMode(coerceEnum(m, "layout", layoutModeStrings())),
		Gap:        coerceNonNegative(m, "gap", 0),
		Padding:    coerceNonNegative(m, "padding", 0),
	}
	for _, l := range array(m, "layers") {
		lm, ok := l.(map[string]any)
		if !ok {
			continue
		}
		fr.Layers = append(fr.Layers, validateLayer(lm, seen))
	}
	return fr
}

func validateBackground(m map[string]any) Background {
	bg := Background{
		Type:  BackgroundColor,
		Color: DefaultBackground,
	}
	if m == nil {
		return bg
	}
	switch BackgroundType(coerceString(m, "type", string(BackgroundColor))) {
	case BackgroundGradient:
		if g := validateGradient(object(m, "gradient")); g != nil {
			return Background{Type: BackgroundGradient, Gradient: g}
		}
	case BackgroundImage:
		if src := coerceString(m, "src", ""); src != "" {
			return Background{Type: BackgroundImage, Src: src}
		}
	}
	bg.Color = coerceColor(coerceString(m, "color", ""), DefaultBackground)
	return bg
}

func validateGradient(m map[string]any) *Gradient {
	if m == nil {
		return nil
	}
	g := &Gradient{
		Type:  GradientLinear,
		Angle: coerceNumber(m, "angle", 0),
	}
	if GradientType(coerceString(m, "type", "")) == GradientRadial {
		g.Type = GradientRadial
	}
	for _, s := range array(m, "stops") {
		sm, ok := s.(map[string]any)
		if !ok {
			continue
		}
		g.Stops = append(g.Stops, GradientStop{
			Color:  coerceColor(coerceString(sm, "color", ""), DefaultBackground),
			Offset: clamp(coerceNumber(sm, "offset", 0), 0, 1),
		})
	}
	if len(g.Stops) == 0 {
		return nil
	}
	return g
}

func validateLayer(m map[string]any, seen map[string]bool) Layer {
	l := Layer{
		Type:      LayerType(coerceEnum(m, "type", layerTypeStrings())),
		ID:        coerceString(m, "id", ""),
		Name:      coerceString(m, "name", "Layer"),
		X:         coerceNumber(m, "x", 0),
		Y:         coerceNumber(m, "y", 0),
		Width:     coerceMin(m, "width", DefaultLayerSize, 1),
		Height:    coerceMin(m, "height", DefaultLayerSize, 1),
		Rotation:  clamp(coerceNumber(m, "rotation", 0), 0, 360),
		Opacity:   clamp(coerceNumber(m, "opacity", DefaultOpacity), 0, 1),
		Visible:   coerceBool(m, "visible", true),
		Locked:    coerceBool(m, "locked", false),
		BlendMode: BlendMode(coerceEnum(m, "blendMode", blendModeStrings())),
	}

	// Layer IDs correlate layout results and drive editor selection, so
	// they must be unique within the document. Duplicates and absentees
	// get fresh ones.
	if l.ID == "" || seen[l.ID] {
		l.ID = uuid.NewString()
	}
	seen[l.ID] = true

	switch l.Type {
	case LayerText:
		l.Content = coerceString(m, "content", DefaultTextContent)
		l.FontFamily = coerceString(m, "fontFamily", DefaultFontFamily)
		l.FontSize = clamp(coerceNumber(m, "fontSize", DefaultFontSize), MinFontSize, MaxFontSize)
		l.FontWeight = coerceString(m, "fontWeight", DefaultFontWeight)
		l.FontStyle = coerceString(m, "fontStyle", DefaultFontStyle)
		l.TextAlign = coerceEnum(m, "textAlign", TextAligns)
		l.Color = coerceColor(coerceString(m, "color", ""), DefaultTextColor)
		l.LineHeight = coerceMin(m, "lineHeight", DefaultLineHeight, 0.1)
		l.LetterSpacing = coerceNumber(m, "letterSpacing", 0)

	case LayerImage:
		l.Src = coerceString(m, "src", "")
		l.Fit = FitMode(coerceEnum(m, "fit", fitModeStrings()))
		l.BorderRadius = coerceNonNegative(m, "borderRadius", 0)
		for _, f := range array(m, "filters") {
			fm, ok := f.(map[string]any)
			if !ok {
				continue
			}
			l.Filters = append(l.Filters, Filter{
				Type:  FilterType(coerceEnum(fm, "type", filterTypeStrings())),
				Value: coerceNumber(fm, "value", 0),
			})
		}

	case LayerShape:
		l.Shape = ShapeKind(coerceEnum(m, "shape", shapeKindStrings()))
		l.Fill = coerceColor(coerceString(m, "fill", ""), DefaultShapeFill)
		if s := coerceString(m, "stroke", ""); IsColor(s) {
			l.Stroke = s
		}
		l.StrokeWidth = coerceNonNegative(m, "strokeWidth", 0)
		l.BorderRadius = coerceNonNegative(m, "borderRadius", 0)
		l.Gradient = validateGradient(object(m, "gradient"))

	case LayerGroup:
		l.Layers = []Layer{}
		for _, c := range array(m, "layers") {
			cm, ok := c.(map[string]any)
			if !ok {
				continue
			}
			l.Layers = append(l.Layers, validateLayer(cm, seen))
		}
		if gm := object(m, "layout"); gm != nil {
			l.Layout = &GroupLayout{
				Mode:    LayoutMode(coerceEnum(gm, "mode", layoutModeStrings())),
				Gap:     coerceNonNegative(gm, "gap", 0),
				Padding: coerceNonNegative(gm, "padding", 0),
			}
		}

	case LayerComponent:
		l.Component = coerceString(m, "component", DefaultComponentName)
		l.Variant = coerceString(m, "variant", "default")
		l.Props = map[string]any{}
		if p := object(m, "props"); p != nil {
			l.Props = p
		}
	}

	return l
}

// toObject returns the input as a plain object map. Typed documents are
// round-tripped through JSON so revalidation sees the same shape the wire
// does.
func toObject(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, ErrNotObject
	case map[string]any:
		return v, nil
	case Document:
		return documentToMap(v)
	case *Document:
		if v == nil {
			return nil, ErrNotObject
		}
		return documentToMap(*v)
	default:
		return nil, ErrNotObject
	}
}

func documentToMap(d Document) (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, ErrNotObject
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ErrNotObject
	}
	return m, nil
}

// Enum string tables for coerceEnum. Built once; order matters, the first
// entry is the substitution default.

func layerTypeStrings() []string  { return enumStrings(LayerTypes) }
func layoutModeStrings() []string { return enumStrings(LayoutModes) }
func fitModeStrings() []string    { return enumStrings(FitModes) }
func shapeKindStrings() []string  { return enumStrings(ShapeKinds) }
func blendModeStrings() []string  { return enumStrings(BlendModes) }
func filterTypeStrings() []string { return enumStrings(FilterTypes) }

func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
