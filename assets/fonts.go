package assets

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	studio "github.com/sitesmith/studio"
)

// Font is one registered font family with its raw file data. Data is kept
// so canvas adapters can build faces at whatever sizes the document asks
// for.
type Font struct {
	Family string
	Data   []byte
	Status Status
	Err    error
}

// FontRegistry maps font families to parsed font data. Lookup misses are
// not errors: text falls through to the renderer's fallback face, the way
// a missing web font falls through to the CSS stack.
type FontRegistry struct {
	mu       sync.RWMutex
	families map[string]*Font
}

// DefaultFonts is the registry used by preloaders unless one is injected.
var DefaultFonts = NewFontRegistry()

// NewFontRegistry creates an empty registry.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{families: make(map[string]*Font)}
}

// Register parses and stores font data under the given family name. When
// family is empty, the name embedded in the font file is used.
func (r *FontRegistry) Register(family string, data []byte) error {
	// Two parses on purpose: typesetting validates the tables the text
	// shaper will touch, sfnt supplies the family name.
	if _, err := gtfont.ParseTTF(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("assets: parse font: %w", err)
	}
	if family == "" {
		parsed, err := opentype.Parse(data)
		if err != nil {
			return fmt.Errorf("assets: parse font: %w", err)
		}
		name, err := parsed.Name(nil, sfnt.NameIDFamily)
		if err != nil || name == "" {
			return fmt.Errorf("assets: font declares no family name")
		}
		family = name
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.families[family] = &Font{Family: family, Data: data, Status: StatusLoaded}
	return nil
}

// LoadDir registers every .ttf and .otf file found directly in dir.
// Unparseable files are skipped with a log entry.
func (r *FontRegistry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("assets: read font dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			studio.Logger().Warn("skipping unreadable font file", "file", e.Name(), "error", err)
			continue
		}
		if err := r.Register("", data); err != nil {
			studio.Logger().Warn("skipping unparseable font file", "file", e.Name(), "error", err)
		}
	}
	return nil
}

// Lookup returns the registered font for a family, or nil.
func (r *FontRegistry) Lookup(family string) *Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.families[family]
}

// PreloadFonts resolves the given families against the registry. It is
// best-effort: unknown families yield entries with StatusFailed and the
// text that references them renders with the fallback face. It never
// fails.
func (p *Preloader) PreloadFonts(ctx context.Context, families []string) map[string]*Font {
	out := make(map[string]*Font, len(families))
	for _, family := range dedupe(families) {
		if ctx.Err() != nil {
			break
		}
		if f := p.fonts.Lookup(family); f != nil {
			out[family] = f
			continue
		}
		out[family] = &Font{
			Family: family,
			Status: StatusFailed,
			Err:    fmt.Errorf("assets: font family %q not registered", family),
		}
		studio.Logger().Debug("font not registered, falling back", "family", family)
	}
	return out
}

// Fonts exposes the preloader's registry to canvas adapters.
func (p *Preloader) Fonts() *FontRegistry { return p.fonts }
