package inspect

import (
	"io"
	"strings"
)

// hexCols is the number of bytes per hexdump line.
const hexCols = 16

// Styler decorates the parts of a rendered line. Implementations must not
// change the visible width of the text for the layout to stay aligned.
type Styler interface {
	Heading(s string) string
	Label(s string) string
	Value(s string) string
	Hex(s string) string
	Note(s string) string
}

// Plain is a Styler that leaves text unchanged.
type Plain struct{}

func (Plain) Heading(s string) string { return s }
func (Plain) Label(s string) string   { return s }
func (Plain) Value(s string) string   { return s }
func (Plain) Hex(s string) string     { return s }
func (Plain) Note(s string) string    { return s }

// Render writes the tree rooted at n to w, two spaces of indentation per
// level. A nil styler renders plain text.
func Render(w io.Writer, n *Node, s Styler) error {
	if s == nil {
		s = Plain{}
	}
	_, err := w.Write(appendNode(nil, n, 0, s))
	return err
}

func appendNode(b []byte, n *Node, indent int, s Styler) []byte {
	pad := strings.Repeat(" ", indent)
	b = append(b, pad...)

	switch n.Kind {
	case NodeMessage, NodeRecord:
		b = append(b, s.Heading(n.Label+":")...)
		if n.Value != "" {
			b = append(b, ' ')
			b = append(b, s.Value(n.Value)...)
		}
		b = append(b, '\n')
	case NodeEmptyRecord, NodeLimit:
		b = append(b, s.Note(n.Label)...)
		b = append(b, '\n')
	case NodeNote:
		b = append(b, s.Label(label(n.Label))...)
		b = append(b, s.Note(n.Value)...)
		b = append(b, '\n')
	case NodeField:
		b = append(b, s.Label(label(n.Label))...)
		b = append(b, s.Value(n.Value)...)
		b = append(b, '\n')
	case NodeData:
		b = append(b, s.Label(label(n.Label))...)
		size := plural(len(n.Data), "byte")
		if len(n.Data) <= hexCols {
			b = append(b, s.Value(size)...)
			b = append(b, s.Hex(hexLines(n.Data, 2)[0])...)
			b = append(b, '\n')
		} else {
			b = append(b, s.Value(size+":")...)
			b = append(b, '\n')
			for _, line := range hexLines(n.Data, indent+2) {
				b = append(b, s.Hex(line)...)
				b = append(b, '\n')
			}
		}
	}

	for _, c := range n.Children {
		b = appendNode(b, c, indent+2, s)
	}
	return b
}

// label pads "Label:" to a fixed column so values line up.
func label(s string) string {
	s += ":"
	if len(s) < 6 {
		s += strings.Repeat(" ", 6-len(s))
	}
	return s + " "
}

// Hexdump formats data as lines of up to 16 hex bytes followed by their
// printable ASCII, each line prefixed with indent spaces. When data spans
// several lines the last one is padded so the ASCII column stays aligned.
func Hexdump(data []byte, indent int) string {
	var b strings.Builder
	for _, line := range hexLines(data, indent) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func hexLines(data []byte, indent int) []string {
	const digits = "0123456789abcdef"

	var lines []string
	for off := 0; off < len(data) || (off == 0 && len(data) == 0); off += hexCols {
		row := data[off:min(off+hexCols, len(data))]

		var b strings.Builder
		b.WriteString(strings.Repeat(" ", indent))
		for i, c := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(digits[c>>4])
			b.WriteByte(digits[c&0x0F])
		}
		if len(data) > hexCols {
			b.WriteString(strings.Repeat("   ", hexCols-len(row)))
		}
		b.WriteString("  ")
		for _, c := range row {
			if c >= 0x20 && c <= 0x7E {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
