package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ghostify/pkg/doc"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FrameListModel - Interactive frame selection
// =============================================================================

// frameEntry is one selectable row in the frame picker.
type frameEntry struct {
	node      *doc.Node
	textCount int
	nodeCount int
	picked    bool
}

// FrameListModel is the bubbletea model for interactive frame selection.
// Frames are toggled with space and confirmed with enter; pressing enter
// with nothing toggled selects the frame under the cursor.
type FrameListModel struct {
	Entries   []frameEntry
	Cursor    int
	Confirmed bool
	Height    int
	Offset    int
}

// NewFrameListModel creates a frame list model from the document's
// top-level frames.
func NewFrameListModel(frames []*doc.Node) FrameListModel {
	entries := make([]frameEntry, 0, len(frames))
	for _, f := range frames {
		texts := 0
		f.Walk(func(n *doc.Node) bool {
			if n.Kind == doc.KindText {
				texts++
			}
			return true
		})
		entries = append(entries, frameEntry{
			node:      f,
			textCount: texts,
			nodeCount: f.Count(),
		})
	}
	return FrameListModel{
		Entries: entries,
		Height:  15,
	}
}

func (m FrameListModel) Init() tea.Cmd {
	return nil
}

func (m FrameListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.Entries[m.Cursor].picked = !m.Entries[m.Cursor].picked
		case "a":
			for i := range m.Entries {
				m.Entries[i].picked = true
			}
		case "enter":
			if !m.anyPicked() {
				m.Entries[m.Cursor].picked = true
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FrameListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Frames to Ghost"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := " "
		if e.picked {
			mark = iconSuccess
		}

		rows = append(rows, []string{
			cursor,
			mark,
			e.node.Name,
			string(e.node.Kind),
			fmt.Sprintf("%d", e.nodeCount),
			fmt.Sprintf("%d", e.textCount),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Frame", "Kind", "Nodes", "Texts").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if e.picked {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected",
		m.Cursor+1, len(m.Entries), m.pickedCount())))

	return b.String()
}

// SelectedIDs returns the node IDs of the confirmed selection, in
// document order. Empty when the picker was quit without confirming.
func (m FrameListModel) SelectedIDs() []string {
	if !m.Confirmed {
		return nil
	}
	var ids []string
	for _, e := range m.Entries {
		if e.picked {
			ids = append(ids, e.node.ID)
		}
	}
	return ids
}

func (m FrameListModel) anyPicked() bool {
	return m.pickedCount() > 0
}

func (m FrameListModel) pickedCount() int {
	n := 0
	for _, e := range m.Entries {
		if e.picked {
			n++
		}
	}
	return n
}
