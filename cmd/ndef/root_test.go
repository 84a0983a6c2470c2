package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/go-ndef/errors"
)

// exampleURI is "https://www.example.com" encoded as a single-record message.
const exampleURI = "d1010c5502" + "6578616d706c652e636f6d"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEncodeURI(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"abbreviated", []string{"encode", "uri", "https://www.example.com"}, exampleURI + "\n"},
		{"tlv", []string{"encode", "uri", "https://www.example.com", "--tlv"}, "0310" + exampleURI + "fe\n"},
		{"raw", []string{"encode", "uri", "--raw", "urn:x"}, "d101065500" + "75726e3a78" + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEncodeText(t *testing.T) {
	out, _, err := execute(t, "", "encode", "text", "hello", "--lang", "de")
	require.NoError(t, err)
	assert.Equal(t, "d10108540264"+"6568656c6c6f\n", out)

	_, _, err = execute(t, "", "encode", "text", "hello", "--lang", "x")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestEncodeTextDefaultLangFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ndef.toml")
	require.NoError(t, os.WriteFile(path, []byte("[text]\ndefault_lang = \"fr\"\n"), 0o600))

	out, _, err := execute(t, "", "--config", path, "encode", "text", "hi")
	require.NoError(t, err)
	assert.Equal(t, "d10105540266726869\n", out)
}

func TestEncodePosterNeedsContent(t *testing.T) {
	_, _, err := execute(t, "", "encode", "poster")
	assert.Error(t, err)
}

func TestEncodePosterBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.bin")

	_, _, err := execute(t, "", "encode", "poster", "--uri", "https://x", "--text", "Call", "--format", "binary", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte(0xD1), data[0])

	out, _, err := execute(t, "", "decode", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Note:  Record is smart poster")
	assert.Contains(t, out, "URI:   https://x")
	assert.Contains(t, out, "Text:  Call")
}

func TestDecodeHexStdin(t *testing.T) {
	out, stderr, err := execute(t, "0x"+exampleURI[:10]+"\n  "+exampleURI[10:]+"\n", "decode", "--hex")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, ""+
		"NDEF message: 1 record\n"+
		"  NDEF record:\n"+
		"    TNF:   WELL_KNOWN\n"+
		"    Type:  1 byte  55  U\n"+
		"    Note:  Record is URI\n"+
		"    URI:   https://www.example.com\n", out)
}

func TestDecodeTLV(t *testing.T) {
	out, _, err := execute(t, "0000"+"0310"+exampleURI+"fe", "decode", "--hex", "--tlv", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "URI:   https://www.example.com")

	_, _, err = execute(t, "0000fe", "decode", "--hex", "--tlv")
	assert.ErrorIs(t, err, errors.ErrNoInput)
}

func TestDecodePartial(t *testing.T) {
	out, stderr, err := execute(t, exampleURI+"00", "decode", "--hex")
	require.NoError(t, err)
	assert.Contains(t, out, "URI:   https://www.example.com")
	assert.Contains(t, stderr, "warning: decoded 16 of 17 bytes")
}

func TestDecodeStrict(t *testing.T) {
	_, _, err := execute(t, exampleURI+"00", "decode", "--hex", "--strict")
	assert.ErrorIs(t, err, errors.ErrTrailingData)
	assert.ErrorIs(t, err, errors.ErrTruncated)

	_, _, err = execute(t, exampleURI, "decode", "--hex", "--strict")
	assert.NoError(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	out, _, err := execute(t, "", "decode")
	require.NoError(t, err)
	assert.Equal(t, "NDEF message: empty\n", out)
}

func TestDecodeBadHex(t *testing.T) {
	_, _, err := execute(t, "zz", "decode", "--hex")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "message.yaml")
	require.NoError(t, os.WriteFile(spec, []byte(`
records:
  - uri: https://www.example.com
  - text: Hello
`), 0o600))

	out, _, err := execute(t, "", "build", "-f", spec)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "91010c5502"), out)

	tree, _, err := execute(t, out, "decode", "--hex")
	require.NoError(t, err)
	assert.Contains(t, tree, "NDEF message: 2 records")
	assert.Contains(t, tree, "Lang:  en")
	assert.Contains(t, tree, "Text:  Hello")
}

func TestBuildRequiresFile(t *testing.T) {
	_, _, err := execute(t, "", "build")
	assert.Error(t, err)
}

func TestInvalidFormatFlag(t *testing.T) {
	_, _, err := execute(t, "", "--format", "xml", "encode", "uri", "https://x")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, useColor(&buf, "auto"))
	assert.True(t, useColor(&buf, "always"))
	assert.False(t, useColor(os.Stdout, "never"))

	_, ok := stylerFor(&buf, "auto").(colorStyler)
	assert.False(t, ok)
	_, ok = stylerFor(&buf, "always").(colorStyler)
	assert.True(t, ok)
}
