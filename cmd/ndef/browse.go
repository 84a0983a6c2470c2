package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/go-ndef"
	"github.com/wippyai/go-ndef/inspect"
	"github.com/wippyai/go-ndef/wellknown"
)

func newBrowseCmd(o *options) *cobra.Command {
	var isHex bool
	cmd := &cobra.Command{
		Use:   "browse FILE",
		Short: "Browse and edit a message file interactively",
		Long: `Browse opens an NDEF message file in a terminal UI. Records can be
inspected, deleted, and URI or Text records appended. Changes are written
back to FILE in the format it was read in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			m := newBrowseModel(path, o.cfg.Text.DefaultLang, o.cfg.Decode.Options())
			m.load = func() (ndef.DecodeResult, error) {
				data, err := o.readEncoded(cmd, path, isHex)
				if err != nil {
					return ndef.DecodeResult{}, err
				}
				return ndef.Decode(data, o.cfg.Decode.Options()...), nil
			}
			m.save = func(msg []byte) (int, error) {
				out, err := formatMessage(msg, isHex, o.cfg.Output.TLV)
				if err != nil {
					return 0, err
				}
				o.logger.Info("writing message", zap.String("path", path), zap.Int("bytes", len(out)))
				return len(out), os.WriteFile(path, out, 0o644)
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&isHex, "hex", false, "FILE holds hex text")
	return cmd
}

type browseState int

const (
	stateList browseState = iota
	stateDetail
	stateInput
)

type inputKind int

const (
	inputURI inputKind = iota
	inputText
)

type browseModel struct {
	err      error
	msg      *ndef.Message
	load     func() (ndef.DecodeResult, error)
	save     func([]byte) (int, error)
	filename string
	lang     string
	status   string
	failed   bool
	opts     []ndef.Option
	input    textinput.Model
	adding   inputKind
	selected int
	state    browseState
	dirty    bool
}

type loadedMsg struct {
	err error
	res ndef.DecodeResult
}

type savedMsg struct {
	err error
	n   int
}

func newBrowseModel(filename, lang string, opts []ndef.Option) *browseModel {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 60
	return &browseModel{
		filename: filename,
		lang:     lang,
		opts:     opts,
		input:    ti,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return func() tea.Msg {
		res, err := m.load()
		return loadedMsg{res: res, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.msg = msg.res.Message
		if m.msg == nil {
			m.msg = ndef.NewMessage(m.opts...)
		}
		if msg.res.Partial {
			m.setStatus(true, "decoding is partial: %v", msg.res.Cause)
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setStatus(true, "write failed: %v", msg.err)
		} else {
			m.dirty = false
			m.setStatus(false, "wrote %d bytes to %s", msg.n, m.filename)
		}
		return m, nil

	case tea.KeyMsg:
		if m.state == stateInput {
			return m.updateInput(msg)
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *browseModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	if m.msg == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.state == stateList && m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.state == stateList && m.selected < m.msg.Len()-1 {
			m.selected++
		}
	case "enter":
		switch m.state {
		case stateList:
			if m.msg.Len() > 0 {
				m.state = stateDetail
			}
		case stateDetail:
			m.state = stateList
		}
	case "esc":
		m.state = stateList
	case "a":
		return m, m.startInput(inputURI)
	case "t":
		return m, m.startInput(inputText)
	case "d":
		if m.state != stateList || m.msg.Len() == 0 {
			break
		}
		m.msg.Splice(m.selected, 1)
		if m.selected >= m.msg.Len() && m.selected > 0 {
			m.selected--
		}
		m.dirty = true
		m.setStatus(false, "record removed")
	case "w":
		return m, m.write()
	}
	return m, nil
}

func (m *browseModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.state = stateList
		return m, nil
	case "enter":
		m.input.Blur()
		m.state = stateList
		m.add(m.input.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) startInput(kind inputKind) tea.Cmd {
	m.adding = kind
	m.state = stateInput
	m.input.Reset()
	switch kind {
	case inputURI:
		m.input.Prompt = "URI: "
		m.input.Placeholder = "https://example.com"
	case inputText:
		m.input.Prompt = fmt.Sprintf("Text [%s]: ", m.lang)
		m.input.Placeholder = "hello"
	}
	return m.input.Focus()
}

func (m *browseModel) add(value string) {
	if value == "" {
		return
	}

	var rec ndef.Record
	switch m.adding {
	case inputURI:
		rec = wellknown.NewURIRecord(value)
	case inputText:
		var err error
		if rec, err = wellknown.NewTextRecord(wellknown.Text{Lang: m.lang, Text: value}); err != nil {
			m.setStatus(true, "%v", err)
			return
		}
	}

	if err := m.msg.Append(ndef.Move, rec); err != nil {
		m.setStatus(true, "%v", err)
		return
	}
	m.selected = m.msg.Len() - 1
	m.dirty = true
	m.setStatus(false, "record %d added", m.selected)
}

func (m *browseModel) write() tea.Cmd {
	data, err := m.msg.Encode()
	if err != nil {
		m.setStatus(true, "encode failed: %v", err)
		return nil
	}
	return func() tea.Msg {
		n, err := m.save(data)
		return savedMsg{n: n, err: err}
	}
}

func (m *browseModel) setStatus(failed bool, format string, args ...any) {
	m.failed = failed
	m.status = fmt.Sprintf(format, args...)
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n", m.err)) + "\nPress q to quit.\n"
	}
	if m.msg == nil {
		return "Loading...\n"
	}

	var b strings.Builder

	title := "NDEF: " + m.filename
	if m.dirty {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch m.state {
	case stateList, stateInput:
		m.viewList(&b)
	case stateDetail:
		m.viewDetail(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(resultStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *browseModel) viewList(b *strings.Builder) {
	if m.msg.Len() == 0 {
		b.WriteString(helpStyle.Render("(no records)"))
		b.WriteString("\n")
	}
	for i, r := range m.msg.Records() {
		line := fmt.Sprintf("%2d  %-12s %s", i, wellknown.Classify(r), summary(r))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateInput {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter add • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • a add URI • t add text • d delete • w write • q quit"))
	}
	b.WriteString("\n")
}

func (m *browseModel) viewDetail(b *strings.Builder) {
	var sb strings.Builder
	_ = inspect.Render(&sb, inspect.InspectRecord(m.msg.Record(m.selected), ndef.WithAllocator(m.msg.Allocator())), colorStyler{})
	b.WriteString(sb.String())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	b.WriteString("\n")
}

// summary is the one-line description of a record in the list view.
func summary(r ndef.Record) string {
	switch wellknown.Classify(r) {
	case wellknown.KindURI:
		if uri, ok := wellknown.DecodeURI(r); ok {
			return uri
		}
	case wellknown.KindText:
		if t, ok := wellknown.DecodeText(r); ok {
			return fmt.Sprintf("[%s] %s", t.Lang, t.Text)
		}
	case wellknown.KindSmartPoster:
		if sp, ok := wellknown.DecodeSmartPoster(r); ok {
			parts := []string{}
			if sp.URI != "" {
				parts = append(parts, sp.URI)
			}
			if sp.Text != nil {
				parts = append(parts, fmt.Sprintf("%q", sp.Text.Text))
			}
			return strings.Join(parts, " ")
		}
	}
	return fmt.Sprintf("%s %q, %d bytes", r.TNF, r.Type, len(r.Payload))
}
