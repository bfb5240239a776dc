// Package bundle defines the SiteBundle: the complete persisted
// representation of a multi-page site, plus the factory, mutation, query,
// diff, and validation helpers around it.
//
// Bundles are immutable values. Every mutation helper returns a new
// bundle with a bumped site.updatedAt and leaves its input untouched,
// which makes snapshots safe to hold and compare across async boundaries
// without locking.
package bundle

import (
	"encoding/json"
	"time"
)

// Version is the only bundle format version this package reads and
// writes.
const Version = "1.0.0"

// SiteStatus is the lifecycle state of a site.
type SiteStatus string

// Site lifecycle states.
const (
	StatusDraft     SiteStatus = "draft"
	StatusPreview   SiteStatus = "preview"
	StatusPublished SiteStatus = "published"
	StatusArchived  SiteStatus = "archived"
)

// Bundle is the root aggregate.
type Bundle struct {
	Version      string                 `json:"version"`
	Site         Site                   `json:"site"`
	Build        Build                  `json:"build"`
	Brand        Brand                  `json:"brand"`
	Manifest     Manifest               `json:"manifest"`
	Pages        map[string]Page        `json:"pages"`
	Assets       map[string]Asset       `json:"assets"`
	Intents      Intents                `json:"intents"`
	Automations  []Automation           `json:"automations"`
	Integrations map[string]Integration `json:"integrations"`
	Entitlements Entitlements           `json:"entitlements"`
	Runtime      Runtime                `json:"runtime"`
	Publish      *Publish               `json:"publish,omitempty"`
}

// Site is the bundle's identity block.
type Site struct {
	SiteID      string     `json:"siteId"`
	BusinessID  string     `json:"businessId"`
	OwnerUserID string     `json:"ownerUserId"`
	Name        string     `json:"name"`
	Status      SiteStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Build is append-only provenance for one generation run.
type Build struct {
	BuildID     string    `json:"buildId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Generator   string    `json:"generator,omitempty"`
	Trace       []string  `json:"trace"`
	Warnings    []string  `json:"warnings"`
	Errors      []string  `json:"errors"`
}

// Brand is the site-wide visual identity.
type Brand struct {
	Name        string      `json:"name"`
	LogoAssetID string      `json:"logoAssetId,omitempty"`
	Colors      BrandColors `json:"colors"`
	Fonts       BrandFonts  `json:"fonts"`
}

// BrandColors is the site palette.
type BrandColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// BrandFonts pairs the heading and body families.
type BrandFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Manifest declares the site's routes, navigation, and shared chrome.
type Manifest struct {
	Routes   []Route           `json:"routes"`
	Nav      []NavItem         `json:"nav"`
	Layout   string            `json:"layout,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Route maps a URL path to a page.
type Route struct {
	Path   string `json:"path"`
	PageID string `json:"pageId"`
	Title  string `json:"title,omitempty"`
}

// NavItem is one navigation entry.
type NavItem struct {
	Label  string `json:"label"`
	PageID string `json:"pageId"`
}

// Page is one page of the site. Data holds the page's document in
// whatever shape the generator produced (template JSON, rendered HTML
// descriptor); the bundle layer treats it as opaque.
type Page struct {
	PageID    string          `json:"pageId"`
	Path      string          `json:"path"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AssetKind categorizes bundle assets.
type AssetKind string

// Asset kinds.
const (
	AssetImage AssetKind = "image"
	AssetFont  AssetKind = "font"
	AssetVideo AssetKind = "video"
	AssetDoc   AssetKind = "doc"
)

// Asset is one uploaded or generated asset.
type Asset struct {
	AssetID   string    `json:"assetId"`
	Kind      AssetKind `json:"kind"`
	URL       string    `json:"url"`
	Name      string    `json:"name,omitempty"`
	Size      int64     `json:"size,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Intents groups intent definitions with their element bindings.
type Intents struct {
	Definitions map[string]IntentDef `json:"definitions"`
	Bindings    []IntentBinding      `json:"bindings"`
}

// IntentDef is a named, parameterized action executable by a host-side
// handler.
type IntentDef struct {
	IntentID string        `json:"intentId"`
	Name     string        `json:"name"`
	Params   []IntentParam `json:"params,omitempty"`
}

// IntentParam declares one parameter of an intent.
type IntentParam struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required,omitempty"`
}

// IntentBinding attaches an intent to a UI element on a page.
type IntentBinding struct {
	BindingID string `json:"bindingId"`
	IntentID  string `json:"intentId"`
	PageID    string `json:"pageId"`
	ElementID string `json:"elementId"`
	Event     string `json:"event"`
}

// Automation is a trigger-to-actions rule.
type Automation struct {
	AutomationID    string             `json:"automationId"`
	Name            string             `json:"name"`
	TriggerIntentID string             `json:"triggerIntentId"`
	Actions         []AutomationAction `json:"actions"`
	Enabled         bool               `json:"enabled"`
}

// AutomationAction is one step of an automation.
type AutomationAction struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}

// Integration is a configured external provider.
type Integration struct {
	Provider string            `json:"provider"`
	Config   map[string]string `json:"config,omitempty"`
	Enabled  bool              `json:"enabled"`
}

// Entitlements caps what the owning plan allows. The bundle records
// them; enforcement is host policy.
type Entitlements struct {
	Plan           string `json:"plan"`
	MaxPages       int    `json:"maxPages"`
	MaxAssets      int    `json:"maxAssets"`
	CustomDomain   bool   `json:"customDomain"`
	RemoveBranding bool   `json:"removeBranding"`
}

// Runtime configures the embedded preview/runtime.
type Runtime struct {
	EntryPageID string          `json:"entryPageId"`
	EntryPoints []RuntimeEntry  `json:"entryPoints,omitempty"`
	Flags       map[string]bool `json:"flags,omitempty"`
}

// RuntimeEntry is a named alternate entry point.
type RuntimeEntry struct {
	Name   string `json:"name"`
	PageID string `json:"pageId"`
}

// Publish records the last publish, present only on published bundles.
type Publish struct {
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
	Revision    int       `json:"revision"`
}
