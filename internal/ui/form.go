package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/abi"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/codec"
	"github.com/suiyuan1314/CommonEVMContractDashboard/internal/template"
)

// field kinds inside the flattened form.
const (
	fieldLeaf = iota
	fieldGroup
	fieldArray
	fieldPayable
)

// formField is one line of the flattened parameter form. Leaf fields edit
// a draft entry; group and array lines are structural.
type formField struct {
	kind     int
	label    string
	indent   int
	path     string // draft storage key (row-relative for array rows)
	typ      string
	scalable bool

	// set for fields that belong to a tuple-array row, and for the array
	// header line itself.
	arrayPath string
	rowIdx    int
}

// FormModel edits the parameter draft for one contract function. Values are
// written straight into the draft maps, so a cancelled form still leaves
// the draft as the user last saw it.
type FormModel struct {
	Fn    abi.Entry
	Draft template.MethodDraft

	tree   []abi.Node
	fields []formField
	cursor int

	Submitted bool
	Quitting  bool
}

// NewForm builds a form for fn seeded with an existing draft.
func NewForm(fn abi.Entry, draft template.MethodDraft) FormModel {
	m := FormModel{Fn: fn, Draft: draft, tree: abi.BuildTree(fn.Inputs)}
	m.rebuild()
	return m
}

// rebuild flattens the parameter tree plus the draft's current array rows
// into the navigable field list. Called after every row add/remove.
func (m *FormModel) rebuild() {
	m.fields = nil
	for _, node := range m.tree {
		m.flatten(node, 0, "", -1)
	}
	if m.Fn.IsPayable() {
		m.fields = append(m.fields, formField{
			kind:  fieldPayable,
			label: "value (ETH)",
			typ:   "payable",
		})
	}
	if m.cursor >= len(m.fields) {
		m.cursor = len(m.fields) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *FormModel) flatten(node abi.Node, indent int, arrayPath string, rowIdx int) {
	switch node.Kind {
	case abi.Leaf:
		m.fields = append(m.fields, formField{
			kind:      fieldLeaf,
			label:     node.Label(),
			indent:    indent,
			path:      node.Path,
			typ:       node.Param.Type,
			scalable:  node.Scalable(),
			arrayPath: arrayPath,
			rowIdx:    rowIdx,
		})
	case abi.Tuple:
		m.fields = append(m.fields, formField{
			kind:   fieldGroup,
			label:  node.Label(),
			indent: indent,
		})
		for _, child := range node.Children {
			m.flatten(child, indent+1, arrayPath, rowIdx)
		}
	case abi.TupleArray:
		rows := m.Draft.TupleArrays[node.Path]
		m.fields = append(m.fields, formField{
			kind:      fieldArray,
			label:     fmt.Sprintf("%s · %d rows", node.Label(), len(rows)),
			indent:    indent,
			arrayPath: node.Path,
		})
		for i := range rows {
			m.fields = append(m.fields, formField{
				kind:      fieldGroup,
				label:     fmt.Sprintf("row %d", i),
				indent:    indent + 1,
				arrayPath: node.Path,
				rowIdx:    i,
			})
			for _, child := range node.Children {
				m.flatten(child, indent+2, node.Path, i)
			}
		}
	}
}

// value returns the current text of a leaf or payable field.
func (m *FormModel) value(f formField) string {
	switch f.kind {
	case fieldPayable:
		return m.Draft.PayableValue
	case fieldLeaf:
		if f.arrayPath != "" {
			rows := m.Draft.TupleArrays[f.arrayPath]
			if f.rowIdx < len(rows) {
				return rows[f.rowIdx].Values[f.path]
			}
			return ""
		}
		return m.Draft.Values[f.path]
	}
	return ""
}

func (m *FormModel) setValue(f formField, text string) {
	switch f.kind {
	case fieldPayable:
		m.Draft.PayableValue = text
	case fieldLeaf:
		if f.arrayPath != "" {
			rows := m.Draft.TupleArrays[f.arrayPath]
			if f.rowIdx < len(rows) {
				rows[f.rowIdx].Values[f.path] = text
			}
			return
		}
		m.Draft.Values[f.path] = text
	}
}

// exponent returns the decimal exponent of a scalable leaf.
func (m *FormModel) exponent(f formField) int {
	if f.arrayPath != "" {
		rows := m.Draft.TupleArrays[f.arrayPath]
		if f.rowIdx < len(rows) {
			return rows[f.rowIdx].Exponents[f.path]
		}
		return 0
	}
	return m.Draft.Exponents[f.path]
}

func (m *FormModel) cycleExponent(f formField) {
	if !f.scalable {
		return
	}
	next := codec.NextExponent(m.exponent(f))
	if f.arrayPath != "" {
		rows := m.Draft.TupleArrays[f.arrayPath]
		if f.rowIdx < len(rows) {
			rows[f.rowIdx].Exponents[f.path] = next
		}
		return
	}
	m.Draft.Exponents[f.path] = next
}

// addRow appends an empty row to the tuple array the cursor is on.
func (m *FormModel) addRow(arrayPath string) {
	m.Draft.TupleArrays[arrayPath] = append(m.Draft.TupleArrays[arrayPath], template.RowDraft{
		Values:    make(map[string]string),
		Exponents: make(map[string]int),
	})
	m.rebuild()
}

// removeRow drops the last row of the tuple array the cursor is on.
func (m *FormModel) removeRow(arrayPath string) {
	rows := m.Draft.TupleArrays[arrayPath]
	if len(rows) == 0 {
		return
	}
	m.Draft.TupleArrays[arrayPath] = rows[:len(rows)-1]
	m.rebuild()
}

// arrayAt returns the tuple-array path governing the cursor position, or "".
func (m *FormModel) arrayAt() string {
	if m.cursor < len(m.fields) {
		return m.fields[m.cursor].arrayPath
	}
	return ""
}

func (m FormModel) Init() tea.Cmd { return nil }

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cur := formField{}
	if m.cursor < len(m.fields) {
		cur = m.fields[m.cursor]
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.Quitting = true
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "tab":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "ctrl+e":
		m.cycleExponent(cur)
	case "ctrl+a":
		if p := m.arrayAt(); p != "" {
			m.addRow(p)
		}
	case "ctrl+x":
		if p := m.arrayAt(); p != "" {
			m.removeRow(p)
		}
	case "enter":
		m.Submitted = true
		return m, tea.Quit
	case "backspace":
		if v := m.value(cur); len(v) > 0 {
			m.setValue(cur, v[:len(v)-1])
		}
	default:
		if keyMsg.Type == tea.KeyRunes {
			m.setValue(cur, m.value(cur)+string(keyMsg.Runes))
		}
	}
	return m, nil
}

func (m FormModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder

	kind := "read"
	if m.Fn.IsWriteFunction() {
		kind = "write"
	}
	sb.WriteString(StyleTitle.Render(fmt.Sprintf("  %s  ·  %s", m.Fn.Name, kind)) + "\n")
	sb.WriteString(StyleMeta.Render("  "+m.Fn.Signature()) + "\n\n")

	if len(m.fields) == 0 {
		sb.WriteString(StyleMeta.Render("  no parameters") + "\n")
	}

	for i, f := range m.fields {
		pad := strings.Repeat("  ", f.indent+1)
		selected := i == m.cursor

		switch f.kind {
		case fieldGroup:
			sb.WriteString(pad + StyleHeader.Render(f.label) + "\n")
		case fieldArray:
			line := pad + StyleChain.Render(f.label)
			if selected {
				line = pad + StyleSelected.Render(f.label)
			}
			sb.WriteString(line + StyleMeta.Render("   ctrl+a add row · ctrl+x drop row") + "\n")
		default:
			label := StyleMeta.Render(f.label)
			val := m.value(f)
			cursor := ""
			if selected {
				cursor = "█"
			}
			scale := ""
			if f.scalable {
				scale = "  " + StyleInfo.Render(fmt.Sprintf("×10^%d", m.exponent(f)))
			}
			line := fmt.Sprintf("%s%s  %s%s%s", pad, label, StyleValue.Render(val), cursor, scale)
			if selected {
				line = fmt.Sprintf("%s%s  %s%s%s", pad, StyleSelected.Render(f.label), StyleValue.Render(val), cursor, scale)
			}
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(
		StyleMeta.Render("  [ ↑↓/tab ]") + " field   " +
			StyleMeta.Render("[ ctrl+e ]") + " scale   " +
			StyleInfo.Render("[ Enter ]") + " invoke   " +
			StyleMeta.Render("[ esc ]") + " back\n")

	return sb.String()
}

// RunForm edits a draft for fn and reports whether the user asked to
// invoke. The (possibly partial) draft is returned either way.
func RunForm(fn abi.Entry, draft template.MethodDraft) (template.MethodDraft, bool, error) {
	m := NewForm(fn, draft)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return draft, false, fmt.Errorf("form: %w", err)
	}
	fm := final.(FormModel)
	return fm.Draft, fm.Submitted, nil
}
