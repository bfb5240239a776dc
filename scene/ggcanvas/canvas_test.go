package ggcanvas

import (
	"bytes"
	"testing"

	"github.com/sitesmith/studio/scene"
	"github.com/sitesmith/studio/schema"
)

func rect(id, fill string, x, y, w, h float64) *scene.ShapeNode {
	return &scene.ShapeNode{
		B: scene.Base{
			ID: id, X: x, Y: y, Width: w, Height: h,
			Opacity: 1, Visible: true,
		},
		Shape: schema.ShapeRectangle,
		Fill:  fill,
	}
}

func pixelAt(t *testing.T, c *Canvas, x, y int) (r, g, b uint32) {
	t.Helper()
	r, g, b, _ = c.Image().At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestNewCanvasStartsWhite(t *testing.T) {
	c := New(40, 30)
	r, g, b := pixelAt(t, c, 20, 15)
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("pixel = %d,%d,%d, want white", r, g, b)
	}
}

func TestAddNodePaintsShape(t *testing.T) {
	c := New(40, 40)
	if err := c.AddNode(rect("r1", "#ff0000", 0, 0, 40, 40)); err != nil {
		t.Fatal(err)
	}
	r, g, b := pixelAt(t, c, 20, 20)
	if r < 200 || g > 60 || b > 60 {
		t.Fatalf("pixel = %d,%d,%d, want red", r, g, b)
	}
	if len(c.Nodes()) != 1 {
		t.Fatalf("nodes = %d, want 1", len(c.Nodes()))
	}
}

func TestRemoveNodeRepaints(t *testing.T) {
	c := New(40, 40)
	if err := c.AddNode(rect("r1", "#0000ff", 0, 0, 40, 40)); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveNode("r1"); err != nil {
		t.Fatal(err)
	}
	r, g, b := pixelAt(t, c, 20, 20)
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("pixel after remove = %d,%d,%d, want white", r, g, b)
	}
}

func TestSetBackgroundColor(t *testing.T) {
	c := New(20, 20)
	c.SetBackground(schema.Background{Type: schema.BackgroundColor, Color: "#000000"})
	r, g, b := pixelAt(t, c, 10, 10)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("pixel = %d,%d,%d, want black", r, g, b)
	}
}

func TestInvisibleNodeNotPainted(t *testing.T) {
	c := New(20, 20)
	n := rect("r1", "#00ff00", 0, 0, 20, 20)
	n.B.Visible = false
	if err := c.AddNode(n); err != nil {
		t.Fatal(err)
	}
	_, g, _ := pixelAt(t, c, 10, 10)
	if g != 255 {
		t.Fatal("invisible node changed the raster")
	}
	// Still retained in the model.
	if len(c.Nodes()) != 1 {
		t.Fatal("invisible node missing from the model")
	}
}

func TestSetSizeRebuildsRaster(t *testing.T) {
	c := New(10, 10)
	c.SetSize(64, 32)
	bounds := c.Image().Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Fatalf("raster = %dx%d, want 64x32", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodePNG(t *testing.T) {
	c := New(8, 8)
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	sig := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(buf.Bytes(), sig) {
		t.Fatalf("output does not start with PNG signature: % x", buf.Bytes()[:4])
	}
}

func TestSerializeMatchesModel(t *testing.T) {
	c := New(20, 20)
	if err := c.AddNode(rect("r1", "#ff0000", 0, 0, 10, 10)); err != nil {
		t.Fatal(err)
	}
	data, err := c.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"r1"`)) {
		t.Fatalf("serialized scene missing node: %s", data)
	}
}
