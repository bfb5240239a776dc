package bundle

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://sitesmith.dev/schemas/site-bundle.json"

var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("bundle: add schema resource: %v", err))
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("bundle: compile schema: %v", err))
	}
	return s
}

// Issue is one validation finding. Code identifies the check that
// produced it; Path locates the offending value.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s at %s: %s", i.Code, i.Path, i.Message)
}

// Result carries the combined outcome of a validation pass. Warnings
// never make a bundle invalid.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// ValidateSchema checks a serialized bundle against the embedded JSON
// Schema. A nil error with issues means the document parsed but does
// not conform.
func ValidateSchema(data []byte) ([]Issue, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	err := compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	return flatten(ve), nil
}

func flatten(ve *jsonschema.ValidationError) []Issue {
	if len(ve.Causes) == 0 {
		return []Issue{{
			Path:    ve.InstanceLocation,
			Message: ve.Message,
			Code:    "schema",
		}}
	}
	var out []Issue
	for _, c := range ve.Causes {
		out = append(out, flatten(c)...)
	}
	return out
}

// ValidateConsistency checks cross-references inside an in-memory
// bundle. Dangling references are errors; assets nothing points at are
// warnings.
func (b Bundle) ValidateConsistency() Result {
	var r Result

	pageRef := func(path, pageID string) {
		if pageID == "" {
			return
		}
		if _, ok := b.Pages[pageID]; !ok {
			r.Errors = append(r.Errors, Issue{
				Path:    path,
				Message: fmt.Sprintf("references missing page %q", pageID),
				Code:    "missing_page",
			})
		}
	}

	for i, rt := range b.Manifest.Routes {
		pageRef(fmt.Sprintf("/manifest/routes/%d", i), rt.PageID)
	}
	for i, n := range b.Manifest.Nav {
		pageRef(fmt.Sprintf("/manifest/nav/%d", i), n.PageID)
	}
	for i, ib := range b.Intents.Bindings {
		pageRef(fmt.Sprintf("/intents/bindings/%d", i), ib.PageID)
		if _, ok := b.Intents.Definitions[ib.IntentID]; !ok {
			r.Errors = append(r.Errors, Issue{
				Path:    fmt.Sprintf("/intents/bindings/%d", i),
				Message: fmt.Sprintf("references undefined intent %q", ib.IntentID),
				Code:    "missing_intent",
			})
		}
	}
	for i, a := range b.Automations {
		if _, ok := b.Intents.Definitions[a.TriggerIntentID]; !ok {
			r.Errors = append(r.Errors, Issue{
				Path:    fmt.Sprintf("/automations/%d", i),
				Message: fmt.Sprintf("trigger references undefined intent %q", a.TriggerIntentID),
				Code:    "missing_intent",
			})
		}
	}
	pageRef("/runtime/entryPageId", b.Runtime.EntryPageID)
	for i, ep := range b.Runtime.EntryPoints {
		pageRef(fmt.Sprintf("/runtime/entryPoints/%d", i), ep.PageID)
	}
	if b.Brand.LogoAssetID != "" {
		if _, ok := b.Assets[b.Brand.LogoAssetID]; !ok {
			r.Errors = append(r.Errors, Issue{
				Path:    "/brand/logoAssetId",
				Message: fmt.Sprintf("references missing asset %q", b.Brand.LogoAssetID),
				Code:    "missing_asset",
			})
		}
	}

	// Every page should be reachable through a route.
	routed := make(map[string]bool, len(b.Manifest.Routes))
	for _, rt := range b.Manifest.Routes {
		routed[rt.PageID] = true
	}
	for id := range b.Pages {
		if !routed[id] {
			r.Warnings = append(r.Warnings, Issue{
				Path:    "/pages/" + id,
				Message: "page has no route",
				Code:    "orphan_page",
			})
		}
	}

	for _, id := range b.UnusedAssets() {
		r.Warnings = append(r.Warnings, Issue{
			Path:    "/assets/" + id,
			Message: "asset is not referenced by the brand or any page",
			Code:    "unused_asset",
		})
	}

	r.Valid = len(r.Errors) == 0
	return r
}

// Validate serializes the bundle, runs the schema check, then the
// consistency pass.
func (b Bundle) Validate() (Result, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return Result{}, fmt.Errorf("marshal bundle: %w", err)
	}
	issues, err := ValidateSchema(data)
	if err != nil {
		return Result{}, err
	}
	r := b.ValidateConsistency()
	if len(issues) > 0 {
		r.Errors = append(issues, r.Errors...)
		r.Valid = false
	}
	return r, nil
}
