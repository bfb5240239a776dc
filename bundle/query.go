package bundle

import (
	"bytes"
	"sort"
)

// PageByPath resolves a route path to its page. The second result is
// false when no route matches or the route points at a missing page.
func (b Bundle) PageByPath(path string) (Page, bool) {
	for _, r := range b.Manifest.Routes {
		if r.Path == path {
			p, ok := b.Pages[r.PageID]
			return p, ok
		}
	}
	return Page{}, false
}

// EntryPage returns the runtime entry page, if set and present.
func (b Bundle) EntryPage() (Page, bool) {
	p, ok := b.Pages[b.Runtime.EntryPageID]
	return p, ok
}

// AssetsByKind returns the assets of one kind, ordered by ID for
// deterministic output.
func (b Bundle) AssetsByKind(kind AssetKind) []Asset {
	var out []Asset
	for _, a := range b.Assets {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out
}

// UnusedAssets returns the IDs of assets referenced by neither the
// brand, nor any page's content, sorted.
func (b Bundle) UnusedAssets() []string {
	var out []string
	for id := range b.Assets {
		if !b.assetReferenced(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// assetReferenced reports whether any part of the bundle mentions the
// asset. Page data is scanned as raw bytes; asset IDs are UUIDs, so a
// substring hit is a real reference.
func (b Bundle) assetReferenced(assetID string) bool {
	if b.Brand.LogoAssetID == assetID {
		return true
	}
	needle := []byte(assetID)
	for _, p := range b.Pages {
		if bytes.Contains(p.Data, needle) {
			return true
		}
	}
	a := b.Assets[assetID]
	if a.URL != "" {
		url := []byte(a.URL)
		for _, p := range b.Pages {
			if bytes.Contains(p.Data, url) {
				return true
			}
		}
	}
	return false
}

// BindingsForPage returns the intent bindings attached to one page.
func (b Bundle) BindingsForPage(pageID string) []IntentBinding {
	var out []IntentBinding
	for _, ib := range b.Intents.Bindings {
		if ib.PageID == pageID {
			out = append(out, ib)
		}
	}
	return out
}
