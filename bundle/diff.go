package bundle

import (
	"bytes"
	"reflect"
	"sort"
)

// Diff summarizes what changed between two bundles. Page and asset
// membership is compared by ID; pages additionally by content. Every
// page and asset present in both bundles lands in exactly one of the
// modified or unchanged lists.
type Diff struct {
	PagesAdded      []string `json:"pagesAdded"`
	PagesRemoved    []string `json:"pagesRemoved"`
	PagesModified   []string `json:"pagesModified"`
	PagesUnchanged  []string `json:"pagesUnchanged"`
	AssetsAdded     []string `json:"assetsAdded"`
	AssetsRemoved   []string `json:"assetsRemoved"`
	AssetsUnchanged []string `json:"assetsUnchanged"`
	BrandChanged    bool     `json:"brandChanged"`
	ManifestChanged bool     `json:"manifestChanged"`
}

// Empty reports whether the diff records no changes. The unchanged
// lists do not count: a self-diff is empty.
func (d Diff) Empty() bool {
	return len(d.PagesAdded) == 0 && len(d.PagesRemoved) == 0 &&
		len(d.PagesModified) == 0 && len(d.AssetsAdded) == 0 &&
		len(d.AssetsRemoved) == 0 && !d.BrandChanged && !d.ManifestChanged
}

// Compare diffs prev against next. Timestamps are ignored; only content
// counts as a modification.
func Compare(prev, next Bundle) Diff {
	var d Diff
	for id, np := range next.Pages {
		op, ok := prev.Pages[id]
		if !ok {
			d.PagesAdded = append(d.PagesAdded, id)
			continue
		}
		if op.Path != np.Path || op.Name != np.Name || !bytes.Equal(op.Data, np.Data) {
			d.PagesModified = append(d.PagesModified, id)
		} else {
			d.PagesUnchanged = append(d.PagesUnchanged, id)
		}
	}
	for id := range prev.Pages {
		if _, ok := next.Pages[id]; !ok {
			d.PagesRemoved = append(d.PagesRemoved, id)
		}
	}
	for id := range next.Assets {
		if _, ok := prev.Assets[id]; !ok {
			d.AssetsAdded = append(d.AssetsAdded, id)
		} else {
			d.AssetsUnchanged = append(d.AssetsUnchanged, id)
		}
	}
	for id := range prev.Assets {
		if _, ok := next.Assets[id]; !ok {
			d.AssetsRemoved = append(d.AssetsRemoved, id)
		}
	}
	sort.Strings(d.PagesAdded)
	sort.Strings(d.PagesRemoved)
	sort.Strings(d.PagesModified)
	sort.Strings(d.PagesUnchanged)
	sort.Strings(d.AssetsAdded)
	sort.Strings(d.AssetsRemoved)
	sort.Strings(d.AssetsUnchanged)

	d.BrandChanged = !reflect.DeepEqual(prev.Brand, next.Brand)
	d.ManifestChanged = !reflect.DeepEqual(prev.Manifest, next.Manifest)
	return d
}
