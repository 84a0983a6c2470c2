package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/go-ndef/internal/config"
	"github.com/wippyai/go-ndef/internal/logging"
)

// options holds the global flags and the configuration resolved from them.
type options struct {
	configPath string
	logLevel   string
	format     string
	output     string
	tlv        bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{cfg: config.Default(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "ndef",
		Short: "Decode, build and inspect NDEF messages",
		Long: `ndef works with NFC Data Exchange Format messages as stored on NFC tags.

It decodes messages into a readable record tree, encodes URI, Text and
Smart Poster records, builds whole messages from YAML descriptions and
offers an interactive browser for editing a message file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = o.logger.Sync()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "TOML configuration file")
	pf.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&o.format, "format", "", "encoded output format: hex or binary")
	pf.BoolVar(&o.tlv, "tlv", false, "messages are wrapped in a Type 2 tag NDEF TLV")
	pf.StringVarP(&o.output, "output", "o", "", "write encoded output to FILE instead of stdout")

	cmd.AddCommand(
		newDecodeCmd(o),
		newEncodeCmd(o),
		newBuildCmd(o),
		newBrowseCmd(o),
	)
	return cmd
}

// setup loads the configuration file, applies flag overrides and installs
// the logger.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("tlv") {
		cfg.Output.TLV = o.tlv
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	logging.Install(logger)

	o.cfg = cfg
	o.logger = logger
	logger.Debug("configuration loaded",
		zap.String("config", o.configPath),
		zap.String("format", cfg.Output.Format),
		zap.Bool("tlv", cfg.Output.TLV))
	return nil
}

// writeEncoded writes an encoded message in the configured output format to
// the -o file or the command's stdout.
func (o *options) writeEncoded(cmd *cobra.Command, msg []byte) error {
	out, err := formatMessage(msg, o.cfg.Output.Format == "hex", o.cfg.Output.TLV)
	if err != nil {
		return err
	}
	if o.output != "" {
		o.logger.Debug("writing output", zap.String("path", o.output), zap.Int("bytes", len(out)))
		return os.WriteFile(o.output, out, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// readEncoded reads a message from path ("-" for stdin), undoing hex and
// TLV framing.
func (o *options) readEncoded(cmd *cobra.Command, path string, isHex bool) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parseMessage(raw, isHex, o.cfg.Output.TLV)
}
