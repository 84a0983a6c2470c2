package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/wellknown"
)

func newEncodeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a message holding one well-known record",
	}
	cmd.AddCommand(
		newEncodeURICmd(o),
		newEncodeTextCmd(o),
		newEncodePosterCmd(o),
	)
	return cmd
}

func newEncodeURICmd(o *options) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "uri URI",
		Short: "Encode a URI record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := wellknown.NewURIRecord(args[0])
			if raw {
				rec = wellknown.NewRawURIRecord(args[0])
			}
			return o.encodeRecords(cmd, rec)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "store the URI in full without prefix abbreviation")
	return cmd
}

func newEncodeTextCmd(o *options) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "text TEXT",
		Short: "Encode a Text record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := wellknown.NewTextRecord(wellknown.Text{Lang: o.lang(lang), Text: args[0]})
			if err != nil {
				return err
			}
			return o.encodeRecords(cmd, rec)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "language code (default from configuration)")
	return cmd
}

func newEncodePosterCmd(o *options) *cobra.Command {
	var uri, text, lang string
	cmd := &cobra.Command{
		Use:   "poster",
		Short: "Encode a Smart Poster record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if uri == "" && text == "" {
				return fmt.Errorf("poster needs --uri, --text or both")
			}
			sp := wellknown.SmartPoster{URI: uri}
			if text != "" {
				sp.Text = &wellknown.Text{Lang: o.lang(lang), Text: text}
			}
			rec, err := wellknown.NewSmartPosterRecord(sp)
			if err != nil {
				return err
			}
			return o.encodeRecords(cmd, rec)
		},
	}
	cmd.Flags().StringVar(&uri, "uri", "", "poster URI")
	cmd.Flags().StringVar(&text, "text", "", "poster title")
	cmd.Flags().StringVar(&lang, "lang", "", "title language code (default from configuration)")
	return cmd
}

func (o *options) lang(flag string) string {
	if flag != "" {
		return flag
	}
	return o.cfg.Text.DefaultLang
}

func (o *options) encodeRecords(cmd *cobra.Command, recs ...ndef.Record) error {
	m := ndef.NewMessage()
	if err := m.Append(ndef.Move, recs...); err != nil {
		return err
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return o.writeEncoded(cmd, data)
}
