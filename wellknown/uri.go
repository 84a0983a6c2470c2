package wellknown

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/errors"
)

// URIType is the record type of a URI record.
const URIType = "U"

// URIPrefixes is the URI identifier code table. The first payload byte of a
// URI record indexes it; code 0 carries no prefix.
var URIPrefixes = [...]string{
	"",
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"tel:",
	"mailto:",
	"ftp://anonymous:anonymous@",
	"ftp://ftp.",
	"ftps://",
	"sftp://",
	"smb://",
	"nfs://",
	"ftp://",
	"dav://",
	"news:",
	"telnet://",
	"imap:",
	"rtsp://",
	"urn:",
	"pop:",
	"sip:",
	"sips:",
	"tftp:",
	"btspp://",
	"btl2cap://",
	"btgoep://",
	"tcpobex://",
	"irdaobex://",
	"file://",
	"urn:epc:id:",
	"urn:epc:tag:",
	"urn:epc:pat:",
	"urn:epc:raw:",
	"urn:epc:",
	"urn:nfc:",
}

// IsURI reports whether r is a well-known URI record with at least an
// identifier code and one byte of URI data.
func IsURI(r ndef.Record) bool {
	return r.TNF == ndef.TNFWellKnown && string(r.Type) == URIType && len(r.Payload) >= 2
}

// ParseURI expands the URI carried by r.
//
// It returns errors.KindNotApplicable if r is not a URI record and
// errors.KindInvalidAbbreviation if the identifier code is outside
// URIPrefixes. The URI data is taken up to the end of the payload; embedded
// NUL bytes are kept.
func ParseURI(r ndef.Record) (string, error) {
	if !IsURI(r) {
		return "", errors.NotApplicable("URI")
	}
	code := r.Payload[0]
	if int(code) >= len(URIPrefixes) {
		return "", errors.InvalidAbbreviation(code, len(URIPrefixes))
	}
	return URIPrefixes[code] + string(r.Payload[1:]), nil
}

// DecodeURI returns the URI carried by r, or false if r is not a URI record
// or uses an unknown identifier code.
func DecodeURI(r ndef.Record) (string, bool) {
	uri, err := ParseURI(r)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidAbbreviation) {
			Logger().Debug("URI record ignored", zap.Error(err))
		}
		return "", false
	}
	return uri, true
}

// NewURIRecord builds a URI record, replacing the longest matching prefix
// from URIPrefixes by its identifier code.
func NewURIRecord(uri string) ndef.Record {
	code, rest := Abbreviate(uri)
	return newURIRecord(code, rest)
}

// NewRawURIRecord builds a URI record that stores uri in full with
// identifier code 0.
func NewRawURIRecord(uri string) ndef.Record {
	return newURIRecord(0, uri)
}

// Abbreviate picks the longest entry of URIPrefixes that prefixes uri and
// returns its code with the remainder of uri. Ties go to the lowest code.
// If nothing matches, code is 0 and rest is uri.
func Abbreviate(uri string) (code byte, rest string) {
	best := 0
	for i := 1; i < len(URIPrefixes); i++ {
		p := URIPrefixes[i]
		if len(p) > best && strings.HasPrefix(uri, p) {
			code = byte(i)
			best = len(p)
		}
	}
	return code, uri[best:]
}

func newURIRecord(code byte, rest string) ndef.Record {
	payload := make([]byte, 0, 1+len(rest))
	payload = append(payload, code)
	payload = append(payload, rest...)
	return ndef.NewRecord(ndef.TNFWellKnown, []byte(URIType), payload, nil)
}
