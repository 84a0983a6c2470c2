package inspect

import (
	"strconv"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/wellknown"
)

// MaxDepth bounds the number of message and record levels Inspect descends
// through nested smart posters.
const MaxDepth = 8

// NodeKind identifies how a Node is rendered.
type NodeKind int

const (
	NodeMessage     NodeKind = iota // "NDEF message: N records"
	NodeRecord                      // "NDEF record:"
	NodeEmptyRecord                 // "(empty record)"
	NodeField                       // "Label: value"
	NodeData                        // "Label: N bytes" followed by a hexdump
	NodeNote                        // "Note:  ..."
	NodeLimit                       // "(recursion limited)"
)

// Node is one line of the inspection tree and its children.
type Node struct {
	Kind     NodeKind
	Label    string
	Value    string
	Data     []byte
	Children []*Node
}

func (n *Node) add(c *Node) {
	n.Children = append(n.Children, c)
}

// String renders the tree without styling.
func (n *Node) String() string {
	var b []byte
	b = appendNode(b, n, 0, Plain{})
	return string(b)
}

// Inspect describes m. A nil or empty message yields "NDEF message: empty".
//
// Messages nested in smart posters are decoded with opts, or with m's
// allocator when opts is empty.
func Inspect(m *ndef.Message, opts ...ndef.Option) *Node {
	if len(opts) == 0 && m != nil {
		opts = []ndef.Option{ndef.WithAllocator(m.Allocator())}
	}
	return message(m, MaxDepth, opts)
}

// InspectRecord describes a single record as it would appear at the top
// level of Inspect. opts configure nested smart poster messages.
func InspectRecord(r ndef.Record, opts ...ndef.Option) *Node {
	return record(r, MaxDepth-1, opts)
}

func limited() *Node {
	return &Node{Kind: NodeLimit, Label: "(recursion limited)"}
}

func message(m *ndef.Message, limit int, opts []ndef.Option) *Node {
	if limit <= 0 {
		return limited()
	}
	n := &Node{Kind: NodeMessage, Label: "NDEF message"}
	if m == nil || m.Len() == 0 {
		n.Value = "empty"
		return n
	}
	n.Value = plural(m.Len(), "record")
	for _, r := range m.Records() {
		n.add(record(r, limit-1, opts))
	}
	return n
}

func record(r ndef.Record, limit int, opts []ndef.Option) *Node {
	if limit <= 0 {
		return limited()
	}

	n := &Node{Kind: NodeRecord, Label: "NDEF record"}
	if r.IsEmpty() {
		n.Kind = NodeEmptyRecord
		n.Label = "(empty record)"
	} else {
		n.add(&Node{Kind: NodeField, Label: "TNF", Value: r.TNF.String()})
	}
	if len(r.ID) > 0 {
		n.add(&Node{Kind: NodeData, Label: "ID", Data: r.ID})
	}
	if len(r.Type) > 0 {
		n.add(&Node{Kind: NodeData, Label: "Type", Data: r.Type})
	}

	dump := false
	switch wellknown.Classify(r) {
	case wellknown.KindSmartPoster:
		n.add(note("Record is smart poster"))
		sp, _ := wellknown.DecodeSmartPoster(r, opts...)
		if sp.URI == "" && sp.Text == nil {
			dump = true
		} else {
			n.add(message(sp.Message, limit-1, opts))
		}
	case wellknown.KindURI:
		n.add(note("Record is URI"))
		if uri, ok := wellknown.DecodeURI(r); ok {
			n.add(&Node{Kind: NodeField, Label: "URI", Value: uri})
		} else {
			dump = true
		}
	case wellknown.KindText:
		n.add(note("Record is text"))
		if t, ok := wellknown.DecodeText(r); ok {
			n.add(&Node{Kind: NodeField, Label: "Lang", Value: t.Lang})
			if t.UTF16 {
				n.add(note("Text is UTF-16 and shown unconverted"))
				n.add(&Node{Kind: NodeData, Label: "Text", Data: []byte(t.Text)})
			} else {
				n.add(&Node{Kind: NodeField, Label: "Text", Value: t.Text})
			}
		} else {
			dump = true
		}
	default:
		dump = !r.IsEmpty()
	}

	if dump {
		if len(r.Payload) > 0 {
			n.add(&Node{Kind: NodeData, Label: "Payload", Data: r.Payload})
		} else {
			n.add(&Node{Kind: NodeField, Label: "Payload", Value: "empty"})
		}
	}
	return n
}

func note(s string) *Node {
	return &Node{Kind: NodeNote, Label: "Note", Value: s}
}

func plural(n int, word string) string {
	s := strconv.Itoa(n) + " " + word
	if n != 1 {
		s += "s"
	}
	return s
}
