package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
	"github.com/dandxy89/lp-parser-rs/pkg/lp"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// newViewCmd creates the view command: an interactive terminal browser
// over the entities of a parsed model.
func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse an LP file interactively",
		Long: `Browse the objectives, constraints, and variables of an LP file in an
interactive terminal view. Switch sections with tab or left/right, move
with up/down, quit with q.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadParsed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prob, err := f.Problem()
			if err != nil {
				return err
			}

			p := tea.NewProgram(newModelBrowser(prob, args[0]))
			if _, err := p.Run(); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "run viewer")
			}
			return nil
		},
	}
	return cmd
}

type browserSection int

const (
	sectionObjectives browserSection = iota
	sectionConstraints
	sectionVariables
	sectionCount
)

func (s browserSection) String() string {
	switch s {
	case sectionObjectives:
		return "Objectives"
	case sectionConstraints:
		return "Constraints"
	default:
		return "Variables"
	}
}

// modelBrowser is the bubbletea model for the view command. Each
// section keeps its own cursor so switching tabs does not lose place.
type modelBrowser struct {
	prob    *lp.Problem
	path    string
	section browserSection
	cursor  [sectionCount]int
	offset  [sectionCount]int
	height  int
}

func newModelBrowser(prob *lp.Problem, path string) modelBrowser {
	return modelBrowser{prob: prob, path: path, height: 15}
}

func (m modelBrowser) Init() tea.Cmd {
	return nil
}

func (m modelBrowser) sectionLen() int {
	switch m.section {
	case sectionObjectives:
		return m.prob.ObjectiveCount()
	case sectionConstraints:
		return m.prob.ConstraintCount()
	default:
		return m.prob.VariableCount()
	}
}

func (m modelBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.section = (m.section + 1) % sectionCount
		case "shift+tab", "left", "h":
			m.section = (m.section + sectionCount - 1) % sectionCount
		case "up", "k":
			if m.cursor[m.section] > 0 {
				m.cursor[m.section]--
				if m.cursor[m.section] < m.offset[m.section] {
					m.offset[m.section] = m.cursor[m.section]
				}
			}
		case "down", "j":
			if m.cursor[m.section] < m.sectionLen()-1 {
				m.cursor[m.section]++
				if m.cursor[m.section] >= m.offset[m.section]+m.height {
					m.offset[m.section] = m.cursor[m.section] - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m modelBrowser) View() string {
	var b strings.Builder

	name := m.prob.Name()
	if name == "" {
		name = m.path
	}
	b.WriteString(styleTitle.Render(name) + "  " +
		listDimStyle.Render(m.prob.Sense().String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab/←/→ section  ↑/↓ move  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, 0, int(sectionCount))
	for s := browserSection(0); s < sectionCount; s++ {
		label := s.String()
		if s == m.section {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n\n")

	switch m.section {
	case sectionObjectives:
		b.WriteString(m.viewObjectives())
	case sectionConstraints:
		b.WriteString(m.viewConstraints())
	default:
		b.WriteString(m.viewVariables())
	}

	n := m.sectionLen()
	if n > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor[m.section]+1, n)))
	}
	return b.String()
}

func (m modelBrowser) window(n int) (int, int) {
	start := m.offset[m.section]
	end := start + m.height
	if end > n {
		end = n
	}
	return start, end
}

func (m modelBrowser) viewObjectives() string {
	objs := m.prob.Objectives()
	if len(objs) == 0 {
		return listDimStyle.Render("  (no objectives)") + "\n"
	}
	var b strings.Builder
	start, end := m.window(len(objs))
	for i := start; i < end; i++ {
		o := objs[i]
		line := fmt.Sprintf("  %-20s %s", o.Name, exprSummary(o.Expr))
		b.WriteString(m.renderLine(line, i))
	}
	return b.String()
}

func (m modelBrowser) viewConstraints() string {
	cons := m.prob.Constraints()
	if len(cons) == 0 {
		return listDimStyle.Render("  (no constraints)") + "\n"
	}
	var b strings.Builder
	start, end := m.window(len(cons))
	for i := start; i < end; i++ {
		c := cons[i]
		line := fmt.Sprintf("  %-20s %s", c.Name, describeConstraint(c))
		b.WriteString(m.renderLine(line, i))
	}
	return b.String()
}

func (m modelBrowser) viewVariables() string {
	vars := m.prob.Variables()
	if len(vars) == 0 {
		return listDimStyle.Render("  (no variables)") + "\n"
	}

	start, end := m.window(len(vars))
	rows := [][]string{}
	for i := start; i < end; i++ {
		v := vars[i]
		cursor := "  "
		if i == m.cursor[m.section] {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, v.Name, v.Kind.String(),
			fmt.Sprintf("[%s, %s]", num(v.Lower), num(v.Upper)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Variable", "Type", "Bounds").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if start+row == m.cursor[m.section] {
				return listSelectedStyle
			}
			return listNormalStyle
		})
	return t.Render() + "\n"
}

func (m modelBrowser) renderLine(line string, idx int) string {
	if idx == m.cursor[m.section] {
		return listSelectedStyle.Render("▸"+line[1:]) + "\n"
	}
	return listNormalStyle.Render(line) + "\n"
}

// exprSummary shows the first few terms of an expression.
func exprSummary(e *lp.Expression) string {
	terms := e.Terms()
	const maxTerms = 4
	parts := make([]string, 0, maxTerms+1)
	for i, t := range terms {
		if i == maxTerms {
			parts = append(parts, fmt.Sprintf("… (%d terms)", len(terms)))
			break
		}
		parts = append(parts, fmt.Sprintf("%s %s", num(t.Coefficient), t.Variable))
	}
	return strings.Join(parts, " + ")
}
