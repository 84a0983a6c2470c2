package wellknown

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/go-ndef"
)

// SmartPosterType is the record type of a Smart Poster record.
const SmartPosterType = "Sp"

// SmartPoster is the content of a Smart Poster record.
type SmartPoster struct {
	// Message is the nested NDEF message. It may be nil when building a
	// poster from URI and Text alone.
	Message *ndef.Message
	// URI is the first URI found in Message, or "" if there is none.
	URI string
	// Text is the first Text found in Message, or nil if there is none.
	Text *Text
	// Partial reports that the nested message did not decode completely.
	Partial bool
}

// IsSmartPoster reports whether r is a well-known Smart Poster record with a
// non-empty payload.
func IsSmartPoster(r ndef.Record) bool {
	return r.TNF == ndef.TNFWellKnown && string(r.Type) == SmartPosterType && len(r.Payload) > 0
}

// DecodeSmartPoster decodes the nested message of r best-effort and returns
// the first URI and the first Text record found in it. It returns false only
// if r is not a Smart Poster record. opts configure the nested message.
func DecodeSmartPoster(r ndef.Record, opts ...ndef.Option) (SmartPoster, bool) {
	if !IsSmartPoster(r) {
		return SmartPoster{}, false
	}

	res := ndef.Decode(r.Payload, opts...)
	if res.Partial {
		Logger().Debug("smart poster message is partial",
			zap.Int("consumed", res.Consumed),
			zap.Int("size", len(r.Payload)),
			zap.Error(res.Cause))
	}
	sp := SmartPoster{Message: res.Message, Partial: res.Partial}

	for _, rec := range res.Message.Records() {
		if uri, ok := DecodeURI(rec); ok {
			sp.URI = uri
			break
		}
	}
	for _, rec := range res.Message.Records() {
		if t, ok := DecodeText(rec); ok {
			sp.Text = &t
			break
		}
	}
	return sp, true
}

// NewSmartPosterRecord builds a Smart Poster record.
//
// sp.Message is cloned, or a new message is created with opts when it is nil.
// A URI record is appended if the message has none and sp.URI is set, and a
// Text record likewise for sp.Text. sp.Message itself is never modified.
// An entirely empty poster is allowed and yields an empty payload.
func NewSmartPosterRecord(sp SmartPoster, opts ...ndef.Option) (ndef.Record, error) {
	var (
		m   *ndef.Message
		err error
	)
	if sp.Message == nil {
		m = ndef.NewMessage(opts...)
	} else if m, err = sp.Message.Clone(); err != nil {
		return ndef.Record{}, fmt.Errorf("clone smart poster message: %w", err)
	}

	var hasURI, hasText bool
	for _, rec := range m.Records() {
		hasURI = hasURI || IsURI(rec)
		hasText = hasText || IsText(rec)
	}

	if !hasURI && sp.URI != "" {
		if err := m.Append(ndef.Move, NewURIRecord(sp.URI)); err != nil {
			return ndef.Record{}, fmt.Errorf("append smart poster URI: %w", err)
		}
	}
	if !hasText && sp.Text != nil {
		rec, err := NewTextRecord(*sp.Text)
		if err != nil {
			return ndef.Record{}, fmt.Errorf("smart poster text: %w", err)
		}
		if err := m.Append(ndef.Move, rec); err != nil {
			return ndef.Record{}, fmt.Errorf("append smart poster text: %w", err)
		}
	}

	payload, err := m.Encode()
	if err != nil {
		return ndef.Record{}, fmt.Errorf("encode smart poster message: %w", err)
	}
	return ndef.NewRecord(ndef.TNFWellKnown, []byte(SmartPosterType), payload, nil), nil
}
