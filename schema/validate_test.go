package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValidateEmptyObject(t *testing.T) {
	doc, err := Validate(map[string]any{})
	if err != nil {
		t.Fatalf("Validate({}): %v", err)
	}

	if doc.Name != "Untitled Template" {
		t.Errorf("Name = %q, want %q", doc.Name, "Untitled Template")
	}
	if doc.ID == "" {
		t.Error("ID should be generated")
	}
	if len(doc.Frames) != 1 {
		t.Fatalf("len(Frames) = %d, want 1", len(doc.Frames))
	}

	fr := doc.Frames[0]
	if fr.Width != 1920 || fr.Height != 1080 {
		t.Errorf("frame size = %vx%v, want 1920x1080", fr.Width, fr.Height)
	}
	if fr.Background.Type != BackgroundColor || fr.Background.Color != "#ffffff" {
		t.Errorf("background = %+v, want white color", fr.Background)
	}
	if len(doc.Variants) != 1 || doc.Variants[0].Name != "web" {
		t.Errorf("variants = %+v, want single web variant", doc.Variants)
	}
}

func TestValidateNonObjectRoot(t *testing.T) {
	for _, raw := range []any{nil, 42, "template", []any{1, 2}, true} {
		if _, err := Validate(raw); err == nil {
			t.Errorf("Validate(%v) should fail", raw)
		}
	}
}

func TestValidateWrongTypedFields(t *testing.T) {
	doc, err := Validate(map[string]any{
		"name": 123,
		"frames": []any{
			map[string]any{
				"width":  "wide",
				"height": -50,
				"layers": "nope",
			},
		},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if doc.Name != "Untitled Template" {
		t.Errorf("non-string name should default, got %q", doc.Name)
	}
	fr := doc.Frames[0]
	if fr.Width != 1920 {
		t.Errorf("non-numeric width should default, got %v", fr.Width)
	}
	if fr.Height != 1080 {
		t.Errorf("negative height should default, got %v", fr.Height)
	}
	if fr.Layers == nil || len(fr.Layers) != 0 {
		t.Errorf("bad layers should coerce to empty slice, got %v", fr.Layers)
	}
}

func TestValidateLayerDefaults(t *testing.T) {
	doc, err := Validate(map[string]any{
		"frames": []any{
			map[string]any{
				"layers": []any{
					map[string]any{"type": "text", "fontSize": 9000, "color": "not-a-color"},
					map[string]any{"type": "image", "fit": "stretchy", "src": "https://cdn/x.png"},
					map[string]any{"type": "shape", "shape": "dodecahedron", "opacity": 4},
					map[string]any{"type": "teleport"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	layers := doc.Frames[0].Layers
	if len(layers) != 4 {
		t.Fatalf("len(layers) = %d, want 4", len(layers))
	}

	text := layers[0]
	if text.FontSize != 500 {
		t.Errorf("fontSize should clamp to 500, got %v", text.FontSize)
	}
	if text.Color != "#000000" {
		t.Errorf("invalid color should default, got %q", text.Color)
	}
	if text.Content != "Text" || text.FontFamily != "Inter" {
		t.Errorf("text defaults wrong: %+v", text)
	}

	img := layers[1]
	if img.Fit != FitCover {
		t.Errorf("invalid fit should default to cover, got %q", img.Fit)
	}
	if img.Src != "https://cdn/x.png" {
		t.Errorf("src = %q", img.Src)
	}

	shape := layers[2]
	if shape.Shape != ShapeRectangle {
		t.Errorf("invalid shape kind should default to rectangle, got %q", shape.Shape)
	}
	if shape.Opacity != 1 {
		t.Errorf("opacity should clamp to 1, got %v", shape.Opacity)
	}
	if shape.Fill != "#cccccc" {
		t.Errorf("fill should default, got %q", shape.Fill)
	}

	if layers[3].Type != LayerText {
		t.Errorf("unknown layer type should default to text, got %q", layers[3].Type)
	}

	for _, l := range layers {
		if !l.Visible {
			t.Errorf("layer %s should default to visible", l.ID)
		}
		if l.Width < 1 || l.Height < 1 {
			t.Errorf("layer %s size below minimum: %vx%v", l.ID, l.Width, l.Height)
		}
	}
}

func TestValidateUniqueLayerIDs(t *testing.T) {
	doc, err := Validate(map[string]any{
		"frames": []any{
			map[string]any{
				"layers": []any{
					map[string]any{"type": "shape", "id": "dup"},
					map[string]any{"type": "shape", "id": "dup"},
					map[string]any{"type": "group", "id": "g", "layers": []any{
						map[string]any{"type": "text", "id": "dup"},
					}},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	ids := make(map[string]int)
	for i := range doc.Frames[0].Layers {
		doc.Frames[0].Layers[i].Walk(func(l *Layer) bool {
			ids[l.ID]++
			return true
		})
	}
	for id, n := range ids {
		if n > 1 {
			t.Errorf("id %q appears %d times", id, n)
		}
	}
	if len(ids) != 4 {
		t.Errorf("expected 4 distinct ids, got %d", len(ids))
	}
}

func TestValidateGroupRecursion(t *testing.T) {
	doc, err := Validate(map[string]any{
		"frames": []any{
			map[string]any{
				"layers": []any{
					map[string]any{
						"type": "group",
						"layers": []any{
							map[string]any{"type": "group", "layers": []any{
								map[string]any{"type": "shape", "shape": "circle"},
							}},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	g := doc.Frames[0].Layers[0]
	if g.Type != LayerGroup || len(g.Layers) != 1 {
		t.Fatalf("outer group wrong: %+v", g)
	}
	inner := g.Layers[0]
	if inner.Type != LayerGroup || len(inner.Layers) != 1 {
		t.Fatalf("inner group wrong: %+v", inner)
	}
	if inner.Layers[0].Shape != ShapeCircle {
		t.Errorf("leaf shape = %q, want circle", inner.Layers[0].Shape)
	}
}

func TestValidateIdempotent(t *testing.T) {
	inputs := []map[string]any{
		{},
		{"name": "Landing", "frames": []any{
			map[string]any{"width": 800, "height": 600, "layers": []any{
				map[string]any{"type": "text", "content": "Hello", "fontSize": 3},
				map[string]any{"type": "shape", "shape": "triangle", "fill": "rgb(1,2,3)"},
				map[string]any{"type": "component", "component": "button"},
			}},
		}},
		{"frames": []any{map[string]any{"background": map[string]any{
			"type": "gradient",
			"gradient": map[string]any{"stops": []any{
				map[string]any{"color": "#ff0000", "offset": 0},
				map[string]any{"color": "#0000ff", "offset": 1},
			}},
		}}}},
	}

	for i, in := range inputs {
		once, err := Validate(in)
		if err != nil {
			t.Fatalf("input %d: first Validate: %v", i, err)
		}
		twice, err := Validate(once)
		if err != nil {
			t.Fatalf("input %d: second Validate: %v", i, err)
		}
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("input %d: Validate is not idempotent:\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}

func TestValidateJSONLenient(t *testing.T) {
	in := []byte(`{
		// AI models love comments
		"name": "Promo",
		"frames": [
			{"width": 1080, "height": 1080,},
		],
	}`)

	doc, err := ValidateJSON(in)
	if err != nil {
		t.Fatalf("ValidateJSON: %v", err)
	}
	if doc.Name != "Promo" {
		t.Errorf("Name = %q", doc.Name)
	}
	if doc.Frames[0].Width != 1080 {
		t.Errorf("Width = %v", doc.Frames[0].Width)
	}
}

func TestValidateJSONMalformed(t *testing.T) {
	if _, err := ValidateJSON([]byte("not json at all")); err == nil {
		t.Error("unparseable input should fail")
	}
}

func TestDocumentWireFormat(t *testing.T) {
	doc, err := Validate(map[string]any{
		"frames": []any{map[string]any{"layers": []any{
			map[string]any{"type": "shape", "shape": "circle", "fill": "#ff0000", "width": 100, "height": 100},
		}}},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	frames := m["frames"].([]any)
	layer := frames[0].(map[string]any)["layers"].([]any)[0].(map[string]any)
	for _, key := range []string{"type", "id", "x", "y", "width", "height", "rotation", "opacity", "visible", "locked", "blendMode", "shape", "fill"} {
		if _, ok := layer[key]; !ok {
			t.Errorf("wire field %q missing from shape layer", key)
		}
	}
	if layer["shape"] != "circle" || layer["blendMode"] != "normal" {
		t.Errorf("enum wire values wrong: shape=%v blendMode=%v", layer["shape"], layer["blendMode"])
	}
}
