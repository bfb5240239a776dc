package utp

import (
	"encoding/json"

	"github.com/sitesmith/studio/bundle"
)

// HostInit is sent by the host once the runtime frame is mounted. It
// hands the runtime everything it needs to boot: which rendering engine
// to drive, where to start, the site's routing manifest, and the plan
// limits it must respect.
type HostInit struct {
	Engine       string              `json:"engine"`
	EntryPageID  string              `json:"entryPageId"`
	Manifest     bundle.Manifest     `json:"manifest"`
	Entitlements bundle.Entitlements `json:"entitlements"`
}

// PreviewReady is the runtime's answer to HostInit, advertising the
// optional protocol features it supports.
type PreviewReady struct {
	Capabilities []string `json:"capabilities"`
}

// NavRequest asks for navigation to a path; NavCommit confirms it.
type NavRequest struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace,omitempty"`
}

// NavCommit reports the navigation that actually happened.
type NavCommit struct {
	Path   string `json:"path"`
	PageID string `json:"pageId"`
}

// IntentExecute asks the host to run a bound intent.
type IntentExecute struct {
	IntentID  string         `json:"intentId"`
	BindingID string         `json:"bindingId,omitempty"`
	ElementID string         `json:"elementId,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
}

// IntentAck confirms receipt before the intent finishes.
type IntentAck struct {
	IntentID string `json:"intentId"`
}

// IntentResult carries the terminal outcome of an intent.
type IntentResult struct {
	IntentID string          `json:"intentId"`
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// OverlayOpen asks the host to show an overlay surface.
type OverlayOpen struct {
	OverlayID string         `json:"overlayId"`
	Kind      string         `json:"kind,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
}

// OverlayClose dismisses an overlay.
type OverlayClose struct {
	OverlayID string `json:"overlayId"`
}

// PatchOp is one state patch operation.
type PatchOp string

// State patch operations.
const (
	OpSet    PatchOp = "set"
	OpMerge  PatchOp = "merge"
	OpDelete PatchOp = "delete"
)

// PatchEntry is one state mutation. Value is absent for delete.
type PatchEntry struct {
	Op    PatchOp         `json:"op"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value,omitempty"`
}

// StatePatch is an ordered list of mutations applied to the shared
// runtime state in sequence.
type StatePatch []PatchEntry

// LogEvent forwards a runtime log line to the host.
type LogEvent struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// ErrorPayload reports a protocol-level failure.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Factories. Each builds a validated envelope with a fresh request ID;
// the response factories reuse the request's ID instead.

func NewHostInit(siteID string, p HostInit) (Envelope, error) {
	return newEnvelope(TypeHostInit, siteID, "", p)
}

func NewPreviewReady(req Envelope, pageID string, capabilities []string) (Envelope, error) {
	e, err := req.reply(TypePreviewReady, PreviewReady{Capabilities: capabilities})
	if err != nil {
		return Envelope{}, err
	}
	e.PageID = pageID
	return e, nil
}

func NewNavRequest(siteID, path string) (Envelope, error) {
	return newEnvelope(TypeNavRequest, siteID, "", NavRequest{Path: path})
}

func NewNavCommit(req Envelope, p NavCommit) (Envelope, error) {
	e, err := req.reply(TypeNavCommit, p)
	if err != nil {
		return Envelope{}, err
	}
	e.PageID = p.PageID
	return e, nil
}

func NewIntentExecute(siteID, pageID string, p IntentExecute) (Envelope, error) {
	return newEnvelope(TypeIntentExecute, siteID, pageID, p)
}

func NewIntentAck(req Envelope) (Envelope, error) {
	var p IntentExecute
	if err := req.Decode(&p); err != nil {
		return Envelope{}, err
	}
	return req.reply(TypeIntentAck, IntentAck{IntentID: p.IntentID})
}

func NewIntentResult(req Envelope, p IntentResult) (Envelope, error) {
	return req.reply(TypeIntentResult, p)
}

func NewOverlayOpen(siteID, pageID string, p OverlayOpen) (Envelope, error) {
	return newEnvelope(TypeOverlayOpen, siteID, pageID, p)
}

func NewOverlayClose(siteID, pageID, overlayID string) (Envelope, error) {
	return newEnvelope(TypeOverlayClose, siteID, pageID, OverlayClose{OverlayID: overlayID})
}

func NewStatePatch(siteID string, patch StatePatch) (Envelope, error) {
	return newEnvelope(TypeStatePatch, siteID, "", patch)
}

func NewLogEvent(siteID string, p LogEvent) (Envelope, error) {
	return newEnvelope(TypeLogEvent, siteID, "", p)
}

// NewError answers any request with a protocol error, keeping its
// request ID for correlation.
func NewError(req Envelope, code, message string) (Envelope, error) {
	return req.reply(TypeError, ErrorPayload{Code: code, Message: message})
}
