// Package inspect builds a human-readable tree describing an NDEF message.
//
// Inspect walks the abstract records of a message, shows the id and type of
// each, and decodes URI, Text and Smart Poster records through package
// wellknown. Records that cannot be interpreted fall back to a hexdump of
// their payload. Smart posters are expanded recursively; the walk stops after
// MaxDepth message and record levels and reports "(recursion limited)".
//
//	root := inspect.Inspect(msg)
//	inspect.Render(os.Stdout, root, nil)
//
// Output looks like:
//
//	NDEF message: 1 record
//	  NDEF record:
//	    TNF:   WELL_KNOWN
//	    Type:  1 byte  55  U
//	    Note:  Record is URI
//	    URI:   https://example.com
//
// The tree never mutates the message it describes.
package inspect
