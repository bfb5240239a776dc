package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sitesmith/studio/assets"
	"github.com/sitesmith/studio/retry"
	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

func validated(t *testing.T, raw map[string]any) schema.Document {
	t.Helper()
	doc, err := schema.Validate(raw)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return doc
}

func TestRenderTemplateCircleScenario(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"width": 800, "height": 600,
			"layers": []any{map[string]any{
				"type": "shape", "shape": "circle",
				"x": 0, "y": 0, "width": 100, "height": 100,
				"fill": "#ff0000",
			}},
		}},
	})

	mem := scene.NewMem()
	r := NewRenderer(mem)
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}

	nodes := mem.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}
	shape, ok := nodes[0].(*scene.ShapeNode)
	if !ok {
		t.Fatalf("node is %T, want ShapeNode", nodes[0])
	}
	if shape.Shape != schema.ShapeCircle {
		t.Errorf("shape = %q, want circle", shape.Shape)
	}
	if shape.Radius() != 50 {
		t.Errorf("radius = %v, want 50", shape.Radius())
	}
	if shape.B.X != 0 || shape.B.Y != 0 {
		t.Errorf("origin = (%v,%v), want (0,0)", shape.B.X, shape.B.Y)
	}
	if shape.Fill != "#ff0000" {
		t.Errorf("fill = %q", shape.Fill)
	}

	if w, h := mem.Size(); w != 800 || h != 600 {
		t.Errorf("canvas size = %vx%v, want 800x600", w, h)
	}
	if bg := mem.Background(); bg.Color != "#ffffff" {
		t.Errorf("background = %+v, want white", bg)
	}
}

func TestRenderFailedImageProducesPlaceholderNode(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"layers": []any{map[string]any{
				"type": "image", "src": "http://127.0.0.1:1/gone.png",
				"width": 300, "height": 200,
			}},
		}},
	})

	mem := scene.NewMem()
	pre := assets.NewPreloader(
		assets.WithTimeout(time.Second),
		assets.WithRetryPolicy(retry.Policy{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}),
	)
	r := NewRenderer(mem, WithPreloader(pre))
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}

	nodes := mem.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want exactly 1 placeholder node", len(nodes))
	}
	img, ok := nodes[0].(*scene.ImageNode)
	if !ok {
		t.Fatalf("node is %T, want ImageNode", nodes[0])
	}
	if !img.Placeholder {
		t.Error("node should be flagged as placeholder")
	}
	if img.Image == nil {
		t.Error("placeholder node should still carry an image")
	}
}

func TestRenderComponentExpandsToTwoNodes(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"layers": []any{map[string]any{
				"type": "component", "component": "button", "id": "cta",
				"width": 200, "height": 48,
				"props": map[string]any{"label": "Buy now"},
			}},
		}},
	})

	mem := scene.NewMem()
	r := NewRenderer(mem)
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}

	nodes := mem.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want rect+label", len(nodes))
	}
	if _, ok := nodes[0].(*scene.ShapeNode); !ok {
		t.Errorf("first node is %T, want ShapeNode", nodes[0])
	}
	label, ok := nodes[1].(*scene.TextNode)
	if !ok {
		t.Fatalf("second node is %T, want TextNode", nodes[1])
	}
	if label.Content != "Buy now" {
		t.Errorf("label = %q", label.Content)
	}
	if nodes[0].Base().ID == nodes[1].Base().ID {
		t.Error("composite parts must be independently addressable")
	}
}

func TestRenderGroupRecursesWithOffset(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"layers": []any{map[string]any{
				"type": "group", "x": 100, "y": 50, "width": 400, "height": 300,
				"layers": []any{
					map[string]any{"type": "shape", "x": 10, "y": 20, "width": 50, "height": 50},
				},
			}},
		}},
	})

	mem := scene.NewMem()
	r := NewRenderer(mem)
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}

	nodes := mem.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("group should add no node of its own, got %d nodes", len(nodes))
	}
	b := nodes[0].Base()
	if b.X != 110 || b.Y != 70 {
		t.Errorf("child at (%v,%v), want group-relative (110,70)", b.X, b.Y)
	}
}

func TestRenderFlexColumnFrameFlowsLayers(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"width": 1000, "height": 800, "layout": "flex-column", "gap": 20, "padding": 10,
			"layers": []any{
				map[string]any{"type": "shape", "id": "a", "width": 100, "height": 50},
				map[string]any{"type": "shape", "id": "b", "width": 100, "height": 70},
			},
		}},
	})

	mem := scene.NewMem()
	r := NewRenderer(mem)
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}

	nodes := mem.Nodes()
	if nodes[0].Base().Y != 10 {
		t.Errorf("first layer Y = %v, want padding 10", nodes[0].Base().Y)
	}
	if nodes[1].Base().Y != 10+50+20 {
		t.Errorf("second layer Y = %v, want 80", nodes[1].Base().Y)
	}
}

// rejectingCanvas fails AddNode for one specific id.
type rejectingCanvas struct {
	*scene.Mem
	rejectID string
}

func (c *rejectingCanvas) AddNode(n scene.Node) error {
	if n.Base().ID == c.rejectID {
		return fmt.Errorf("synthetic failure for %s", c.rejectID)
	}
	return c.Mem.AddNode(n)
}

func TestRenderIsolatesPerLayerFailure(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"layers": []any{
				map[string]any{"type": "shape", "id": "ok-1"},
				map[string]any{"type": "shape", "id": "bad"},
				map[string]any{"type": "shape", "id": "ok-2"},
			},
		}},
	})

	canvas := &rejectingCanvas{Mem: scene.NewMem(), rejectID: "bad"}
	r := NewRenderer(canvas)
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("one bad layer must not fail the render: %v", err)
	}

	nodes := canvas.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want the two healthy layers", len(nodes))
	}
	if nodes[0].Base().ID != "ok-1" || nodes[1].Base().ID != "ok-2" {
		t.Errorf("surviving nodes: %s, %s", nodes[0].Base().ID, nodes[1].Base().ID)
	}
}

func TestRenderRawNonObjectPaintsErrorState(t *testing.T) {
	mem := scene.NewMem()
	r := NewRenderer(mem)

	err := r.RenderRaw(context.Background(), "not an object")
	if err == nil {
		t.Fatal("non-object root must be returned to the caller")
	}

	if bg := mem.Background(); bg.Color != errorBackground {
		t.Errorf("background = %+v, want error tint", bg)
	}
	nodes := mem.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("error state should have title+message, got %d nodes", len(nodes))
	}
	title, ok := nodes[0].(*scene.TextNode)
	if !ok || title.Content != errorTitle {
		t.Errorf("first node = %+v, want error title", nodes[0])
	}
}

func TestRenderErrorOverridesPartialProgress(t *testing.T) {
	mem := scene.NewMem()
	r := NewRenderer(mem)

	doc := validated(t, map[string]any{"frames": []any{map[string]any{
		"layers": []any{map[string]any{"type": "shape"}},
	}}})
	if err := r.RenderTemplate(context.Background(), doc); err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}

	r.RenderError(errors.New("boom"))

	for _, n := range mem.Nodes() {
		if _, ok := n.(*scene.ShapeNode); ok {
			t.Error("error state must clear previous content")
		}
	}
}

func TestRenderSuperseded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.NotFound(w, r)
	}))
	defer srv.Close()

	slow := validated(t, map[string]any{"frames": []any{map[string]any{
		"layers": []any{map[string]any{"type": "image", "src": srv.URL + "/slow.png"}},
	}}})
	fast := validated(t, map[string]any{"frames": []any{map[string]any{
		"layers": []any{map[string]any{"type": "shape", "id": "winner"}},
	}}})

	mem := scene.NewMem()
	r := NewRenderer(mem, WithPreloader(assets.NewPreloader(assets.WithTimeout(5*time.Second))))

	errc := make(chan error, 1)
	go func() {
		errc <- r.RenderTemplate(context.Background(), slow)
	}()

	// Let the first render reach its preload join, then overtake it.
	time.Sleep(50 * time.Millisecond)
	if err := r.RenderTemplate(context.Background(), fast); err != nil {
		t.Fatalf("second render: %v", err)
	}
	close(release)

	if err := <-errc; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first render error = %v, want ErrSuperseded", err)
	}

	nodes := mem.Nodes()
	if len(nodes) != 1 || nodes[0].Base().ID != "winner" {
		t.Errorf("canvas should hold only the newest render, got %+v", nodes)
	}
}

func TestCollectAssets(t *testing.T) {
	doc := validated(t, map[string]any{
		"frames": []any{map[string]any{
			"background": map[string]any{"type": "image", "src": "https://cdn/bg.jpg"},
			"layers": []any{
				map[string]any{"type": "image", "src": "https://cdn/a.png"},
				map[string]any{"type": "text", "fontFamily": "Inter"},
				map[string]any{"type": "group", "layers": []any{
					map[string]any{"type": "image", "src": "https://cdn/b.png"},
					map[string]any{"type": "text", "fontFamily": "Lora"},
					map[string]any{"type": "image", "src": "https://cdn/a.png"},
				}},
			},
		}},
	})

	urls, families := collectAssets(doc)

	wantURLs := map[string]bool{"https://cdn/bg.jpg": true, "https://cdn/a.png": true, "https://cdn/b.png": true}
	if len(urls) != len(wantURLs) {
		t.Errorf("urls = %v", urls)
	}
	for _, u := range urls {
		if !wantURLs[u] {
			t.Errorf("unexpected url %q", u)
		}
	}

	wantFamilies := map[string]bool{"Inter": true, "Lora": true}
	for _, f := range families {
		if !wantFamilies[f] {
			t.Errorf("unexpected family %q", f)
		}
	}
	if len(families) != 2 {
		t.Errorf("families = %v", families)
	}
}
