package bundle

import "time"

// Mutations are copy-on-write: each helper clones the containers it
// touches and returns a new bundle with site.updatedAt bumped. The
// receiver value is never modified, so callers can diff old against
// new.

func (b Bundle) touch() Bundle {
	b.Site.UpdatedAt = time.Now().UTC()
	return b
}

func clonePages(src map[string]Page) map[string]Page {
	dst := make(map[string]Page, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneAssets(src map[string]Asset) map[string]Asset {
	dst := make(map[string]Asset, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// AddPage inserts or replaces a page and registers its route. A route
// for the page's path replaces any existing route at that path.
func (b Bundle) AddPage(p Page) Bundle {
	pages := clonePages(b.Pages)
	pages[p.PageID] = p
	b.Pages = pages

	routes := make([]Route, 0, len(b.Manifest.Routes)+1)
	for _, r := range b.Manifest.Routes {
		if r.Path != p.Path {
			routes = append(routes, r)
		}
	}
	routes = append(routes, Route{Path: p.Path, PageID: p.PageID, Title: p.Name})
	b.Manifest.Routes = routes

	if b.Runtime.EntryPageID == "" {
		b.Runtime.EntryPageID = p.PageID
	}
	return b.touch()
}

// RemovePage deletes a page along with its routes, nav entries, and
// intent bindings. Removing an unknown ID is a no-op apart from the
// timestamp bump.
func (b Bundle) RemovePage(pageID string) Bundle {
	pages := clonePages(b.Pages)
	delete(pages, pageID)
	b.Pages = pages

	routes := make([]Route, 0, len(b.Manifest.Routes))
	for _, r := range b.Manifest.Routes {
		if r.PageID != pageID {
			routes = append(routes, r)
		}
	}
	b.Manifest.Routes = routes

	nav := make([]NavItem, 0, len(b.Manifest.Nav))
	for _, n := range b.Manifest.Nav {
		if n.PageID != pageID {
			nav = append(nav, n)
		}
	}
	b.Manifest.Nav = nav

	bindings := make([]IntentBinding, 0, len(b.Intents.Bindings))
	for _, ib := range b.Intents.Bindings {
		if ib.PageID != pageID {
			bindings = append(bindings, ib)
		}
	}
	b.Intents.Bindings = bindings

	if b.Runtime.EntryPageID == pageID {
		b.Runtime.EntryPageID = ""
		for _, r := range b.Manifest.Routes {
			b.Runtime.EntryPageID = r.PageID
			break
		}
	}
	return b.touch()
}

// UpdatePage replaces a page's content in place, keeping its ID and
// bumping the page timestamp. Unknown IDs are ignored.
func (b Bundle) UpdatePage(p Page) Bundle {
	if _, ok := b.Pages[p.PageID]; !ok {
		return b
	}
	p.UpdatedAt = time.Now().UTC()
	pages := clonePages(b.Pages)
	pages[p.PageID] = p
	b.Pages = pages
	return b.touch()
}

// AddAsset inserts or replaces an asset.
func (b Bundle) AddAsset(a Asset) Bundle {
	assets := cloneAssets(b.Assets)
	assets[a.AssetID] = a
	b.Assets = assets
	return b.touch()
}

// RemoveAsset deletes an asset. Brand logo references to the removed
// asset are cleared.
func (b Bundle) RemoveAsset(assetID string) Bundle {
	assets := cloneAssets(b.Assets)
	delete(assets, assetID)
	b.Assets = assets
	if b.Brand.LogoAssetID == assetID {
		b.Brand.LogoAssetID = ""
	}
	return b.touch()
}

// BindIntent appends an intent binding.
func (b Bundle) BindIntent(ib IntentBinding) Bundle {
	bindings := make([]IntentBinding, len(b.Intents.Bindings), len(b.Intents.Bindings)+1)
	copy(bindings, b.Intents.Bindings)
	b.Intents.Bindings = append(bindings, ib)
	return b.touch()
}

// UnbindIntent removes the binding with the given ID.
func (b Bundle) UnbindIntent(bindingID string) Bundle {
	bindings := make([]IntentBinding, 0, len(b.Intents.Bindings))
	for _, ib := range b.Intents.Bindings {
		if ib.BindingID != bindingID {
			bindings = append(bindings, ib)
		}
	}
	b.Intents.Bindings = bindings
	return b.touch()
}

// AddAutomation appends an automation rule.
func (b Bundle) AddAutomation(a Automation) Bundle {
	autos := make([]Automation, len(b.Automations), len(b.Automations)+1)
	copy(autos, b.Automations)
	b.Automations = append(autos, a)
	return b.touch()
}

// RemoveAutomation removes the automation with the given ID.
func (b Bundle) RemoveAutomation(automationID string) Bundle {
	autos := make([]Automation, 0, len(b.Automations))
	for _, a := range b.Automations {
		if a.AutomationID != automationID {
			autos = append(autos, a)
		}
	}
	b.Automations = autos
	return b.touch()
}

// SetEntryPage points the runtime at a page. The page must exist.
func (b Bundle) SetEntryPage(pageID string) Bundle {
	if _, ok := b.Pages[pageID]; !ok {
		return b
	}
	b.Runtime.EntryPageID = pageID
	return b.touch()
}

// SetStatus moves the site through its lifecycle.
func (b Bundle) SetStatus(s SiteStatus) Bundle {
	b.Site.Status = s
	return b.touch()
}
