// Package utp implements the universal template protocol: the JSON
// message envelope exchanged between an embedding host and the site
// runtime. The type set is closed; unknown types fail validation so
// both sides can rely on exhaustive handling.
package utp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProtocolID identifies the protocol revision carried in every
// envelope.
const ProtocolID = "UTP/1"

// Type discriminates envelope payloads.
type Type string

// The closed message type set.
const (
	TypeHostInit      Type = "UTP/HOST_INIT"
	TypePreviewReady  Type = "UTP/PREVIEW_READY"
	TypeNavRequest    Type = "UTP/NAV_REQUEST"
	TypeNavCommit     Type = "UTP/NAV_COMMIT"
	TypeIntentExecute Type = "UTP/INTENT_EXECUTE"
	TypeIntentAck     Type = "UTP/INTENT_ACK"
	TypeIntentResult  Type = "UTP/INTENT_RESULT"
	TypeOverlayOpen   Type = "UTP/OVERLAY_OPEN"
	TypeOverlayClose  Type = "UTP/OVERLAY_CLOSE"
	TypeStatePatch    Type = "UTP/STATE_PATCH"
	TypeLogEvent      Type = "UTP/LOG_EVENT"
	TypeError         Type = "UTP/ERROR"
)

var knownTypes = map[Type]bool{
	TypeHostInit:      true,
	TypePreviewReady:  true,
	TypeNavRequest:    true,
	TypeNavCommit:     true,
	TypeIntentExecute: true,
	TypeIntentAck:     true,
	TypeIntentResult:  true,
	TypeOverlayOpen:   true,
	TypeOverlayClose:  true,
	TypeStatePatch:    true,
	TypeLogEvent:      true,
	TypeError:         true,
}

// Known reports whether t belongs to the protocol's type set.
func Known(t Type) bool { return knownTypes[t] }

// Envelope is the wire frame around every message. TS is epoch
// milliseconds at send time.
type Envelope struct {
	Protocol  string          `json:"protocol"`
	Type      Type            `json:"type"`
	RequestID string          `json:"requestId"`
	SiteID    string          `json:"siteId"`
	PageID    string          `json:"pageId,omitempty"`
	TS        int64           `json:"ts"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Validation errors.
var (
	ErrBadProtocol = errors.New("utp: unsupported protocol")
	ErrUnknownType = errors.New("utp: unknown message type")
	ErrNoRequestID = errors.New("utp: missing request id")
	ErrNoSiteID    = errors.New("utp: missing site id")
)

// Validate checks the envelope frame: protocol literal, known type,
// request and site IDs. PageID stays optional; payload contents are
// checked by Decode, not here.
func (e Envelope) Validate() error {
	if e.Protocol != ProtocolID {
		return fmt.Errorf("%w: %q", ErrBadProtocol, e.Protocol)
	}
	if !Known(e.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
	}
	if e.RequestID == "" {
		return ErrNoRequestID
	}
	if e.SiteID == "" {
		return ErrNoSiteID
	}
	return nil
}

// Parse unmarshals and validates one envelope.
func Parse(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("utp: parse envelope: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// Decode unmarshals the payload into a typed struct. The caller picks
// the struct matching e.Type.
func (e Envelope) Decode(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("utp: %s has no payload", e.Type)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("utp: decode %s payload: %w", e.Type, err)
	}
	return nil
}

// Marshal serializes the envelope for the wire.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func now() int64 { return time.Now().UnixMilli() }

func newEnvelope(t Type, siteID, pageID string, payload any) (Envelope, error) {
	e := Envelope{
		Protocol:  ProtocolID,
		Type:      t,
		RequestID: uuid.NewString(),
		SiteID:    siteID,
		PageID:    pageID,
		TS:        now(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("utp: encode %s payload: %w", t, err)
		}
		e.Payload = raw
	}
	return e, nil
}

// reply builds a response envelope that keeps the request's ID so the
// two sides can correlate the exchange.
func (e Envelope) reply(t Type, payload any) (Envelope, error) {
	r, err := newEnvelope(t, e.SiteID, e.PageID, payload)
	if err != nil {
		return Envelope{}, err
	}
	r.RequestID = e.RequestID
	return r, nil
}
