package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/inspect"
)

func newDecodeCmd(o *options) *cobra.Command {
	var isHex, strict bool

	cmd := &cobra.Command{
		Use:   "decode [FILE|-]",
		Short: "Decode a message and print its records",
		Long: `Decode reads an NDEF message from FILE, or stdin when FILE is "-" or
omitted, and prints a tree of its records. URI, Text and Smart Poster
records are shown decoded; other payloads are hexdumped.

Decoding is best-effort: records that decode before a malformed one are
printed and a warning is written to stderr. --strict turns this into an
error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			data, err := o.readEncoded(cmd, path, isHex)
			if err != nil {
				return err
			}

			opts := o.cfg.Decode.Options()
			var m *ndef.Message
			if strict || o.cfg.Decode.Strict {
				if m, err = ndef.DecodeStrict(data, opts...); err != nil {
					return err
				}
			} else {
				res := ndef.Decode(data, opts...)
				if res.Partial {
					o.logger.Warn("decoding is partial",
						zap.Int("consumed", res.Consumed),
						zap.Int("size", len(data)),
						zap.Error(res.Cause))
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: decoded %d of %d bytes: %v\n", res.Consumed, len(data), res.Cause)
				}
				m = res.Message
			}

			w := cmd.OutOrStdout()
			return inspect.Render(w, inspect.Inspect(m, opts...), stylerFor(w, o.cfg.Output.Color))
		},
	}

	cmd.Flags().BoolVar(&isHex, "hex", false, "input is hex text")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail unless every input byte decodes")
	return cmd
}
