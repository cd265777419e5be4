package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldview/fieldview/buf"
	"github.com/fieldview/fieldview/hexdump"
	"github.com/fieldview/fieldview/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	dumpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectModel struct {
	err       error
	buffer    *buf.Buffer
	view      *schema.View
	fm        *schema.FieldMap
	schemaSrc string
	dataFile  string
	hexData   string
	status    string
	input     textinput.Model
	offset    int
	selected  int
	state     modelState
}

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

type loadedMsg struct {
	err    error
	fm     *schema.FieldMap
	buffer *buf.Buffer
	view   *schema.View
}

func newInspectModel(schemaSrc, dataFile, hexData string, offset int) *inspectModel {
	return &inspectModel{
		schemaSrc: schemaSrc,
		dataFile:  dataFile,
		hexData:   hexData,
		offset:    offset,
		state:     stateBrowse,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return m.load
}

func (m *inspectModel) load() tea.Msg {
	fm, err := schema.Compile(m.schemaSrc, nil)
	if err != nil {
		return loadedMsg{err: err}
	}

	buffer, err := loadData(m.dataFile, m.hexData, m.offset+fm.Size())
	if err != nil {
		return loadedMsg{err: err}
	}

	window, err := buffer.Window(m.offset, buffer.Len()-m.offset)
	if err != nil {
		return loadedMsg{err: err}
	}

	view, err := fm.Bind(window)
	if err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{fm: fm, buffer: buffer, view: view}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateBrowse {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.fm != nil && m.selected < m.fm.Len()-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if m.fm == nil {
					break
				}
				m.startEdit()
				return m, nil
			case stateEdit:
				m.commitEdit()
				return m, nil
			}

		case "esc":
			if m.state == stateEdit {
				m.state = stateBrowse
				m.status = ""
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.fm = msg.fm
		m.buffer = msg.buffer
		m.view = msg.view
	}

	if m.state == stateEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *inspectModel) startEdit() {
	name := m.fieldName(m.selected)
	ti := textinput.New()
	ti.Prompt = name + " = "
	ti.Width = 40
	if val, err := m.view.Index(m.selected); err == nil {
		switch val.(type) {
		case []byte:
			ti.Placeholder = "hex bytes"
		case *schema.View:
			m.status = "nested fields are not editable here"
			return
		default:
			ti.Placeholder = fmt.Sprintf("%v", val)
		}
	}
	ti.Focus()
	m.input = ti
	m.state = stateEdit
	m.status = ""
}

func (m *inspectModel) commitEdit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.state = stateBrowse
		return
	}
	cur, err := m.view.Index(m.selected)
	if err != nil {
		m.status = err.Error()
		m.state = stateBrowse
		return
	}
	val, err := parseValue(cur, text)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.view.SetIndex(m.selected, val); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("wrote %s", m.fieldName(m.selected))
	m.state = stateBrowse
}

func (m *inspectModel) fieldName(i int) string {
	if name := m.fm.Label(i); name != "" {
		return name
	}
	return fmt.Sprintf("[%d]", i)
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.fm == nil {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Field Inspector"))
	b.WriteString(" ")
	b.WriteString(m.schemaSrc)
	b.WriteString("\n\n")

	for i := 0; i < m.fm.Len(); i++ {
		line := m.formatField(i)
		if i == m.selected && m.state == stateBrowse {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.state == stateEdit {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	d := hexdump.Dumper{Prefix: "  "}
	b.WriteString(dumpStyle.Render(d.Snip(m.view.Raw(), 12)))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.state == stateEdit {
		b.WriteString(helpStyle.Render("enter write • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • q quit"))
	}

	return b.String()
}

func (m *inspectModel) formatField(i int) string {
	name := nameStyle.Render(fmt.Sprintf("%-16s", m.fieldName(i)))
	meta := typeStyle.Render(fmt.Sprintf("@%-4d %s", m.fm.Offset(i), m.fm.Codec(i).String()))

	val, err := m.view.Index(i)
	if err != nil {
		return fmt.Sprintf("%s %s  <error: %v>", name, meta, err)
	}
	return fmt.Sprintf("%s %s  %s", name, meta, formatValue(val))
}

func runInteractive(schemaSrc, dataFile, hexData string, offset int) error {
	p := tea.NewProgram(newInspectModel(schemaSrc, dataFile, hexData, offset), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
