package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wippyai/go-ndef/errors"
	"github.com/wippyai/go-ndef/tlv"
)

// formatMessage frames an encoded message for output.
func formatMessage(msg []byte, asHex, wrapTLV bool) ([]byte, error) {
	if wrapTLV {
		var err error
		if msg, err = tlv.Wrap(msg); err != nil {
			return nil, err
		}
	}
	if asHex {
		return []byte(hex.EncodeToString(msg) + "\n"), nil
	}
	return msg, nil
}

// parseMessage reverses formatMessage. Hex input may contain whitespace and
// a 0x prefix.
func parseMessage(data []byte, isHex, wrappedTLV bool) ([]byte, error) {
	if isHex {
		s := strings.Join(strings.Fields(string(data)), "")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.ParseFailed("hex input", err)
		}
		data = b
	}
	if wrappedTLV {
		msg, err := tlv.Find(data)
		if err != nil {
			return nil, fmt.Errorf("find NDEF TLV: %w", err)
		}
		data = msg
	}
	return data, nil
}
