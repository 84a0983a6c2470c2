package wellknown

import (
	"strconv"

	"github.com/wippyai/go-ndef"
)

// Kind is the well-known interpretation of a record.
type Kind int

const (
	KindOther Kind = iota
	KindURI
	KindText
	KindSmartPoster
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindURI:
		return "uri"
	case KindText:
		return "text"
	case KindSmartPoster:
		return "smart_poster"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Classify reports which well-known type r is. It only inspects the TNF, type
// and payload length; a record classified as KindURI may still fail to
// decode if its identifier code is unknown.
func Classify(r ndef.Record) Kind {
	switch {
	case IsSmartPoster(r):
		return KindSmartPoster
	case IsURI(r):
		return KindURI
	case IsText(r):
		return KindText
	default:
		return KindOther
	}
}
