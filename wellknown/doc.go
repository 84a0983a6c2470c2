// Package wellknown interprets the NFC Forum well-known record types that
// sit on top of the base NDEF codec: URI ("U"), Text ("T") and Smart Poster
// ("Sp").
//
// Every type has a predicate, a decoder that reports absence with a boolean
// and a constructor:
//
//	rec := wellknown.NewURIRecord("https://www.example.com")
//	uri, ok := wellknown.DecodeURI(rec) // "https://www.example.com", true
//
//	rec, err := wellknown.NewTextRecord(wellknown.Text{Lang: "en", Text: "hello"})
//	txt, ok := wellknown.DecodeText(rec)
//
// A Smart Poster payload is itself a complete NDEF message. DecodeSmartPoster
// decodes it best-effort and picks out the first URI and Text records:
//
//	sp, ok := wellknown.DecodeSmartPoster(rec)
//	if ok && sp.URI != "" {
//	    fmt.Println(sp.URI)
//	}
//
// Smart posters may nest. DecodeSmartPoster decodes a single level; callers
// that walk nested posters recursively must bound the depth themselves.
//
// Classify maps a record to one of the kinds above without side effects.
//
// UTF-16 text is reported through Text.UTF16 and returned as raw bytes; it is
// not converted to UTF-8.
package wellknown
