package bundle

import (
	"time"

	"github.com/google/uuid"
)

// New builds an empty draft bundle for the given owner. The result has
// no pages, no assets, and default entitlements; populate it through
// the mutation helpers.
func New(businessID, ownerUserID, name string) Bundle {
	now := time.Now().UTC()
	return Bundle{
		Version: Version,
		Site: Site{
			SiteID:      uuid.NewString(),
			BusinessID:  businessID,
			OwnerUserID: ownerUserID,
			Name:        name,
			Status:      StatusDraft,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Build: Build{
			BuildID:     uuid.NewString(),
			GeneratedAt: now,
			Trace:       []string{},
			Warnings:    []string{},
			Errors:      []string{},
		},
		Brand: Brand{
			Name: name,
			Colors: BrandColors{
				Primary:    "#3b82f6",
				Secondary:  "#64748b",
				Background: "#ffffff",
				Text:       "#0f172a",
			},
			Fonts: BrandFonts{Heading: "Inter", Body: "Inter"},
		},
		Manifest:     Manifest{Routes: []Route{}, Nav: []NavItem{}},
		Pages:        map[string]Page{},
		Assets:       map[string]Asset{},
		Intents:      Intents{Definitions: map[string]IntentDef{}, Bindings: []IntentBinding{}},
		Automations:  []Automation{},
		Integrations: map[string]Integration{},
		Entitlements: Entitlements{Plan: "free", MaxPages: 5, MaxAssets: 50},
		Runtime:      Runtime{},
	}
}

// NewPage builds a page with a fresh ID.
func NewPage(path, name string) Page {
	return Page{
		PageID:    uuid.NewString(),
		Path:      path,
		Name:      name,
		UpdatedAt: time.Now().UTC(),
	}
}

// NewAsset builds an asset record with a fresh ID.
func NewAsset(kind AssetKind, url, name string) Asset {
	return Asset{
		AssetID:   uuid.NewString(),
		Kind:      kind,
		URL:       url,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// NewIntent builds an intent definition with a fresh ID.
func NewIntent(name string, params ...IntentParam) IntentDef {
	return IntentDef{
		IntentID: uuid.NewString(),
		Name:     name,
		Params:   params,
	}
}

// NewBinding attaches an intent to an element. Event defaults to
// "click" when empty.
func NewBinding(intentID, pageID, elementID, event string) IntentBinding {
	if event == "" {
		event = "click"
	}
	return IntentBinding{
		BindingID: uuid.NewString(),
		IntentID:  intentID,
		PageID:    pageID,
		ElementID: elementID,
		Event:     event,
	}
}
