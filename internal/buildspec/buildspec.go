// Package buildspec turns a YAML description of an NDEF message into a
// message. It backs the "ndef build" command.
//
//	records:
//	  - uri: https://www.example.com
//	  - text: Hello
//	    lang: en
//	  - poster:
//	      uri: tel:+123456
//	      text: Call us
//	  - mime: text/plain
//	    payload: plain body
//	  - tnf: external
//	    type: example.com:thing
//	    payload_hex: "0102ff"
//	    id: item-1
package buildspec

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/errors"
	"github.com/wippyai/go-ndef/wellknown"
)

// Spec is a message description.
type Spec struct {
	Records []Record `yaml:"records" validate:"required,min=1,dive"`
}

// Record describes one record. Exactly one of URI, Text, Poster, MIME and
// TNF selects its kind; ID applies to every kind.
type Record struct {
	URI    string  `yaml:"uri,omitempty"`
	RawURI bool    `yaml:"raw_uri,omitempty"`
	Text   string  `yaml:"text,omitempty"`
	Lang   string  `yaml:"lang,omitempty" validate:"omitempty,min=2,max=63"`
	Poster *Poster `yaml:"poster,omitempty"`

	MIME       string `yaml:"mime,omitempty" validate:"max=255"`
	TNF        string `yaml:"tnf,omitempty" validate:"omitempty,oneof=empty well_known mime uri external unknown unchanged"`
	Type       string `yaml:"type,omitempty" validate:"max=255"`
	Payload    string `yaml:"payload,omitempty"`
	PayloadHex string `yaml:"payload_hex,omitempty" validate:"omitempty,hexadecimal"`

	ID string `yaml:"id,omitempty" validate:"max=255"`
}

// Poster describes a smart poster. Records, if any, form the nested message
// before URI and Text are added.
type Poster struct {
	URI     string   `yaml:"uri,omitempty"`
	Text    string   `yaml:"text,omitempty"`
	Lang    string   `yaml:"lang,omitempty" validate:"omitempty,min=2,max=63"`
	Records []Record `yaml:"records,omitempty" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and parses the description at path.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, errors.Wrap(errors.PhaseParse, errors.KindNoInput, err, fmt.Sprintf("read %s", path))
	}
	return Parse(data)
}

// Parse decodes a YAML description and validates it. Unknown keys are
// rejected.
func Parse(data []byte) (Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return Spec{}, errors.ParseFailed("message description", err)
	}
	if err := validate.Struct(spec); err != nil {
		return Spec{}, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "invalid message description")
	}
	return spec, nil
}

// Build creates the message described by spec. Text records without a
// language use defaultLang.
func Build(spec Spec, defaultLang string, opts ...ndef.Option) (*ndef.Message, error) {
	m := ndef.NewMessage(opts...)
	if err := appendRecords(m, spec.Records, defaultLang, []string{"records"}); err != nil {
		return nil, err
	}
	return m, nil
}

func appendRecords(m *ndef.Message, recs []Record, defaultLang string, path []string) error {
	for i, rs := range recs {
		p := append(path[:len(path):len(path)], strconv.Itoa(i))
		r, err := rs.build(defaultLang, p)
		if err != nil {
			return err
		}
		if err := m.Append(ndef.Move, r); err != nil {
			return err
		}
	}
	return nil
}

func (rs Record) kinds() []string {
	var set []string
	if rs.URI != "" {
		set = append(set, "uri")
	}
	if rs.Text != "" {
		set = append(set, "text")
	}
	if rs.Poster != nil {
		set = append(set, "poster")
	}
	if rs.MIME != "" {
		set = append(set, "mime")
	}
	if rs.TNF != "" {
		set = append(set, "tnf")
	}
	return set
}

func (rs Record) build(defaultLang string, path []string) (ndef.Record, error) {
	kinds := rs.kinds()
	if len(kinds) != 1 {
		return ndef.Record{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(path...).
			Detail("record needs exactly one of uri, text, poster, mime or tnf, got %d (%s)", len(kinds), strings.Join(kinds, ", ")).
			Build()
	}

	var (
		r   ndef.Record
		err error
	)
	switch kinds[0] {
	case "uri":
		if rs.RawURI {
			r = wellknown.NewRawURIRecord(rs.URI)
		} else {
			r = wellknown.NewURIRecord(rs.URI)
		}
	case "text":
		r, err = wellknown.NewTextRecord(wellknown.Text{Lang: orDefault(rs.Lang, defaultLang), Text: rs.Text})
	case "poster":
		r, err = rs.Poster.build(defaultLang, append(path, "poster"))
	case "mime":
		var payload []byte
		if payload, err = rs.payload(); err == nil {
			r = ndef.NewRecord(ndef.TNFMime, []byte(rs.MIME), payload, nil)
		}
	case "tnf":
		var payload []byte
		if payload, err = rs.payload(); err == nil {
			r = ndef.NewRecord(parseTNF(rs.TNF), []byte(rs.Type), payload, nil)
		}
	}
	if err != nil {
		return ndef.Record{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Path(path...).
			Cause(err).
			Detail("build %s record", kinds[0]).
			Build()
	}

	r.ID = nilIfEmpty([]byte(rs.ID))
	return r, nil
}

func (p *Poster) build(defaultLang string, path []string) (ndef.Record, error) {
	sp := wellknown.SmartPoster{URI: p.URI}
	if p.Text != "" {
		sp.Text = &wellknown.Text{Lang: orDefault(p.Lang, defaultLang), Text: p.Text}
	}
	if len(p.Records) > 0 {
		sp.Message = ndef.NewMessage()
		if err := appendRecords(sp.Message, p.Records, defaultLang, append(path, "records")); err != nil {
			return ndef.Record{}, err
		}
	}
	return wellknown.NewSmartPosterRecord(sp)
}

func (rs Record) payload() ([]byte, error) {
	switch {
	case rs.Payload != "" && rs.PayloadHex != "":
		return nil, fmt.Errorf("payload and payload_hex are mutually exclusive")
	case rs.PayloadHex != "":
		s := strings.TrimPrefix(strings.TrimPrefix(rs.PayloadHex, "0x"), "0X")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("payload_hex: %w", err)
		}
		return b, nil
	default:
		return []byte(rs.Payload), nil
	}
}

func parseTNF(s string) ndef.TNF {
	for t := ndef.TNFEmpty; t <= ndef.TNFReserved; t++ {
		if strings.EqualFold(t.String(), s) {
			return t
		}
	}
	return ndef.TNFUnknown
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
