package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/go-ndef/internal/buildspec"
)

func newBuildCmd(o *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "build -f message.yaml",
		Short: "Encode a message described in YAML",
		Long: `Build encodes the message described by a YAML file:

  records:
    - uri: https://www.example.com
    - text: Hello
      lang: en
    - poster:
        uri: tel:+123456
        text: Call us
    - mime: text/plain
      payload: plain body
    - tnf: external
      type: example.com:thing
      payload_hex: "0102ff"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildspec.Load(file)
			if err != nil {
				return err
			}
			m, err := buildspec.Build(spec, o.cfg.Text.DefaultLang)
			if err != nil {
				return err
			}
			data, err := m.Encode()
			if err != nil {
				return err
			}
			o.logger.Debug("message built", zap.Int("records", m.Len()), zap.Int("bytes", len(data)))
			return o.writeEncoded(cmd, data)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML message description")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
