package wellknown

import (
	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/errors"
)

// TextType is the record type of a Text record.
const TextType = "T"

const (
	textUTF16   = 0x80
	langLenMask = 0x3F

	// MinLangLen and MaxLangLen bound the language code of an encoded
	// Text record.
	MinLangLen = 2
	MaxLangLen = langLenMask
)

// Text is the content of a Text record.
type Text struct {
	// Lang is the IANA language code, e.g. "en" or "en-US".
	Lang string
	// Text holds the text bytes. When UTF16 is set they are UTF-16 and
	// have not been converted.
	Text  string
	UTF16 bool
}

// IsText reports whether r is a well-known Text record with a status byte
// and room for at least a two-byte language code and one byte of text.
func IsText(r ndef.Record) bool {
	return r.TNF == ndef.TNFWellKnown && string(r.Type) == TextType && len(r.Payload) >= 4
}

// DecodeText returns the language code and text carried by r. It returns
// false if r is not a Text record or its language code runs past the payload.
func DecodeText(r ndef.Record) (Text, bool) {
	if !IsText(r) {
		return Text{}, false
	}
	status := r.Payload[0]
	langLen := int(status & langLenMask)
	if 1+langLen > len(r.Payload) {
		Logger().Sugar().Debugf("text record: language length %d exceeds payload of %d bytes", langLen, len(r.Payload))
		return Text{}, false
	}
	return Text{
		Lang:  string(r.Payload[1 : 1+langLen]),
		Text:  string(r.Payload[1+langLen:]),
		UTF16: status&textUTF16 != 0,
	}, true
}

// NewTextRecord builds a UTF-8 Text record. The language code must be
// MinLangLen to MaxLangLen bytes long and the text must not be empty.
// t.UTF16 must be false; UTF-16 encoding is not supported.
func NewTextRecord(t Text) (ndef.Record, error) {
	switch {
	case len(t.Lang) < MinLangLen || len(t.Lang) > MaxLangLen:
		return ndef.Record{}, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path("lang").
			Value(t.Lang).
			Detail("language code must be %d to %d bytes, got %d", MinLangLen, MaxLangLen, len(t.Lang)).
			Build()
	case t.Text == "":
		return ndef.Record{}, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path("text").
			Detail("text is empty").
			Build()
	case t.UTF16:
		return ndef.Record{}, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path("utf16").
			Detail("UTF-16 text records cannot be encoded").
			Build()
	}

	payload := make([]byte, 0, 1+len(t.Lang)+len(t.Text))
	payload = append(payload, byte(len(t.Lang)))
	payload = append(payload, t.Lang...)
	payload = append(payload, t.Text...)
	return ndef.NewRecord(ndef.TNFWellKnown, []byte(TextType), payload, nil), nil
}
