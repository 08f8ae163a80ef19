package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
)

// BrowserModel is the Bubble Tea model for the contract method browser.
// Read and write functions are shown in labelled sections; the user
// navigates with ↑↓ / j k and picks a method with Enter. The dashboard
// layers template save/load keys on top via extra key handlers.
type BrowserModel struct {
	// Static panel metadata shown in the header.
	ContractAddress string
	ChainName       string
	ChainID         int64
	WalletAddress   string // empty when no wallet is connected

	Reads  []abi.Entry
	Writes []abi.Entry

	// Filled map: method key → true when the dashboard holds a draft with
	// values for that method. Shown as a marker next to the name.
	Filled map[string]bool

	cursor int

	// output
	Selected *abi.Entry
	Action   string // "save" | "load" | "" — dashboard-level key presses
	Quitting bool
}

func (m BrowserModel) total() int { return len(m.Reads) + len(m.Writes) }

func (m BrowserModel) entryAt(pos int) abi.Entry {
	if pos < len(m.Reads) {
		return m.Reads[pos]
	}
	return m.Writes[pos-len(m.Reads)]
}

func (m BrowserModel) Init() tea.Cmd { return nil }

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.total()-1 {
				m.cursor++
			}
		case "s":
			m.Action = "save"
			return m, tea.Quit
		case "l":
			m.Action = "load"
			return m, tea.Quit
		case "enter", " ":
			if m.total() > 0 {
				e := m.entryAt(m.cursor)
				m.Selected = &e
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m BrowserModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder

	const sepWidth = 72

	title := fmt.Sprintf("  Contract Dashboard  ·  %s (chain %d)", m.ChainName, m.ChainID)
	sb.WriteString(StyleTitle.Render(title) + "\n\n")

	sb.WriteString(fmt.Sprintf("  %-10s %s\n",
		StyleMeta.Render("Contract"),
		StyleAddress.Render(m.ContractAddress)))
	wallet := "not connected"
	if m.WalletAddress != "" {
		wallet = TruncateAddr(m.WalletAddress)
	}
	sb.WriteString(fmt.Sprintf("  %-10s %s\n",
		StyleMeta.Render("Wallet"),
		StyleValue.Render(wallet)))
	sb.WriteString(fmt.Sprintf("  %-10s %s · %s\n\n",
		StyleMeta.Render("ABI"),
		StyleInfo.Render(fmt.Sprintf("%d read", len(m.Reads))),
		StyleWarning.Render(fmt.Sprintf("%d write", len(m.Writes)))))

	m.renderSection(&sb, "Read", m.Reads, 0, sepWidth)
	m.renderSection(&sb, "Write", m.Writes, len(m.Reads), sepWidth)

	ruler := StyleMeta.Render(strings.Repeat("─", sepWidth))
	sb.WriteString(ruler + "\n")
	if m.total() > 0 {
		sb.WriteString(StyleMeta.Render("  "+m.entryAt(m.cursor).Signature()) + "\n")
	}
	sb.WriteString(ruler + "\n\n")

	sb.WriteString(
		StyleMeta.Render("  [ ↑↓ / jk ]") + " navigate   " +
			StyleInfo.Render("[ Enter ]") + " open form   " +
			StyleMeta.Render("[ s ]") + " save template   " +
			StyleMeta.Render("[ l ]") + " load   " +
			StyleMeta.Render("[ q ]") + " quit\n")

	return sb.String()
}

func (m BrowserModel) renderSection(sb *strings.Builder, label string, entries []abi.Entry, offset, sepWidth int) {
	if len(entries) == 0 {
		return
	}
	hdr := fmt.Sprintf("  ── %s (%d) ", label, len(entries))
	fill := sepWidth - len(hdr) - 2
	if fill < 0 {
		fill = 0
	}
	sb.WriteString(StyleHeader.Render(hdr) + StyleMeta.Render(strings.Repeat("─", fill)) + "\n")

	nameStyle := StyleValue
	if label == "Write" {
		nameStyle = StyleWarning
	}
	for i, e := range entries {
		selected := offset+i == m.cursor

		marker := " "
		if m.Filled[e.MethodKey()] {
			marker = StyleSuccess.Render("●")
		}
		prefix := "   "
		if selected {
			prefix = " ▸ "
		}
		line := fmt.Sprintf("%s%s %s  %s(%s)",
			prefix,
			marker,
			StyleMeta.Render(e.Selector()),
			nameStyle.Render(e.Name),
			StyleMeta.Render(paramSig(e.Inputs)),
		)
		if selected {
			sb.WriteString(StyleSelected.Render(line) + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n")
}

// RunBrowser launches the method browser with altscreen. Returns the final
// model so the caller can distinguish select, save, load and quit.
func RunBrowser(m BrowserModel) (BrowserModel, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("browser: %w", err)
	}
	return final.(BrowserModel), nil
}

// paramSig formats params as "type name, type name".
func paramSig(params []abi.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Name != "" {
			parts[i] = p.CanonicalType() + " " + p.Name
		} else {
			parts[i] = p.CanonicalType()
		}
	}
	return strings.Join(parts, ", ")
}
