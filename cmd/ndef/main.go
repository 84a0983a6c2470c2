// Command ndef decodes, builds and inspects NDEF messages.
//
//	ndef decode tag.bin
//	ndef encode uri https://www.example.com --format binary -o tag.bin
//	ndef build -f message.yaml --tlv
//	ndef browse tag.bin
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
