package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one row in the list picker.
type PickerItem struct {
	Label    string // primary text (template name, wallet name)
	SubLabel string // dimmed detail (timestamp, address)
	Value    string // returned on selection, typically an id
}

// pickerModel is the inline list picker used for template loading. Rows
// are numbered so 1-9 jump-select directly; navigation wraps.
type pickerModel struct {
	title  string
	items  []PickerItem
	cursor int
	picked bool
	abort  bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "q", "esc", "ctrl+c":
		m.abort = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter":
		m.picked = true
		return m, tea.Quit
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if n := int(s[0] - '1'); n < len(m.items) {
				m.cursor = n
				m.picked = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.picked || m.abort {
		return ""
	}

	labelWidth := 0
	for _, item := range m.items {
		if n := len([]rune(item.Label)); n > labelWidth {
			labelWidth = n
		}
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title) + "\n")
	for i, item := range m.items {
		label := fmt.Sprintf("%-*s", labelWidth, item.Label)
		row := fmt.Sprintf("%d. %s", i+1, label)
		if i == m.cursor {
			b.WriteString("▸ " + StyleSelected.Render(row))
		} else {
			b.WriteString("  " + StyleValue.Render(row))
		}
		if item.SubLabel != "" {
			b.WriteString("  " + StyleMeta.Render(item.SubLabel))
		}
		b.WriteString("\n")
	}
	b.WriteString(StyleMeta.Render("↑/↓ move · 1-9 jump · enter pick · esc cancel") + "\n")
	return b.String()
}

// PickItem runs the inline list picker. ok is false when the list is empty
// or the user cancels; err only on a terminal failure.
func PickItem(title string, items []PickerItem) (item PickerItem, ok bool, err error) {
	if len(items) == 0 {
		return PickerItem{}, false, nil
	}
	final, err := tea.NewProgram(pickerModel{title: title, items: items}).Run()
	if err != nil {
		return PickerItem{}, false, fmt.Errorf("picker: %w", err)
	}
	m := final.(pickerModel)
	if m.abort || !m.picked {
		return PickerItem{}, false, nil
	}
	return m.items[m.cursor], true, nil
}
