package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneWelcome:
		content = m.renderWelcome()
	case SceneForm:
		content = m.renderForm()
	case SceneBreakup:
		content = m.renderBreakup()
	case SceneRating:
		content = m.renderRating()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, banners, and status bar
func (m Model) renderApp(content string) string {
	sections := []string{m.renderTitleBar()}

	if m.errMessage != "" {
		sections = append(sections, ErrorStyle.Render("✗ "+m.errMessage+"  (esc to dismiss)"))
	}
	if m.infoMessage != "" {
		sections = append(sections, InfoStyle.Render("✓ "+m.infoMessage+"  (esc to dismiss)"))
	}
	if m.loading {
		sections = append(sections, LoadingStyle.Render("⠋ "+m.loadingMessage))
	}

	sections = append(sections, content, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Income Tax Planner - FY " + m.financialYear)

	breadcrumb := m.currentScene.String()
	if emp := m.session.Employee(); emp != nil && emp.EmployeeName != "" {
		breadcrumb = fmt.Sprintf("%s / %s", emp.EmployeeName, breadcrumb)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneWelcome:
		shortcuts = []string{
			formatShortcut("enter", "start"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	case SceneForm:
		shortcuts = []string{
			formatShortcut("↑/↓", "move"),
			formatShortcut("enter", "edit"),
			formatShortcut("m", "max"),
			formatShortcut("g", "calculate"),
			formatShortcut("b", "breakup"),
			formatShortcut("d", "download"),
			formatShortcut("x", "clear"),
			formatShortcut("r", "rate"),
			formatShortcut("q", "quit"),
		}
	case SceneBreakup:
		shortcuts = []string{
			formatShortcut("d", "download"),
			formatShortcut("esc", "back"),
			formatShortcut("q", "quit"),
		}
	default:
		shortcuts = []string{
			formatShortcut("esc", "back"),
			formatShortcut("q", "quit"),
		}
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderWelcome renders the window gate and the regime rate comparison
func (m Model) renderWelcome() string {
	emp := m.session.Employee()
	if emp == nil {
		return BorderStyle.Render("Fetching your employee profile...")
	}

	if !emp.WindowOpen() {
		return BorderStyle.Render(
			"The tax declaration window is currently closed.\n\n" +
				"Please check back once your payroll team opens the\n" +
				"regime selection window for this financial year.",
		)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Welcome, %s!\n\n", emp.EmployeeName)
	sb.WriteString("Compare the regimes before you declare:\n\n")

	oldCol := renderBracketColumn("OLD REGIME", calculation.OldRegimeBrackets())
	newCol := renderBracketColumn("NEW REGIME", calculation.NewRegimeBrackets())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, oldCol, "   ", newCol))

	sb.WriteString("\n\nPress enter to start your declaration.")
	return BorderStyle.Render(sb.String())
}

func renderBracketColumn(title string, brackets []calculation.SlabBracket) string {
	var sb strings.Builder
	sb.WriteString(title + "\n")
	for _, b := range brackets {
		rate := b.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0)
		fmt.Fprintf(&sb, "%-26s %3s%%\n", b.Range, rate)
	}
	return sb.String()
}

// renderForm renders the field editor, the FBP items, and the live
// result summary
func (m Model) renderForm() string {
	in := m.session.Inputs()
	var rows []string

	for i, f := range domain.EditableFields {
		rows = append(rows, m.renderFieldRow(i, f))

		// Derived aggregates appear right below their constituents.
		if f == domain.FieldOthers80C {
			rows = append(rows, DerivedRowStyle.Render(
				fmt.Sprintf("   %-32s %12s  (auto)", domain.FieldSection80C.Label(),
					output.FormatCurrency(in.Get(domain.FieldSection80C)))))
		}
		if f == domain.FieldEmployerNPS {
			rows = append(rows, DerivedRowStyle.Render(
				fmt.Sprintf("   %-32s %12s  (auto)", domain.FieldChapterVIOthers.Label(),
					output.FormatCurrency(in.Get(domain.FieldChapterVIOthers)))))
		}
	}

	if len(in.FBP) > 0 {
		rows = append(rows, "", "FLEXIBLE BENEFIT PLAN")
		for i, item := range in.FBP {
			rows = append(rows, m.renderFBPRow(i, item))
		}
		rows = append(rows, DerivedRowStyle.Render(
			fmt.Sprintf("   %-32s %12s  (auto)", "Total FBP", output.FormatCurrency(m.session.TotalFBP()))))
	}

	formCol := strings.Join(rows, "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		BorderStyle.Render(formCol),
		" ",
		m.renderResultPanel(),
	)
}

func (m Model) renderFieldRow(i int, f domain.Field) string {
	in := m.session.Inputs()
	value := output.FormatCurrency(in.Get(f))

	ceiling := ""
	if c, ok := m.session.Table().Ceiling(f); ok {
		ceiling = "  max " + output.FormatCurrency(c)
	}

	if m.cursor == i {
		if m.editing {
			return SelectedRowStyle.Render(fmt.Sprintf(" ▸ %-32s ", f.Label())) + m.input.View() + ceiling
		}
		return SelectedRowStyle.Render(fmt.Sprintf(" ▸ %-32s %12s", f.Label(), value)) + ceiling
	}
	return fmt.Sprintf("   %-32s %12s%s", f.Label(), value, ceiling)
}

func (m Model) renderFBPRow(i int, item domain.FBPItem) string {
	row := len(domain.EditableFields) + i
	value := output.FormatCurrency(item.Amount)

	limit := ""
	if item.Bounded() {
		limit = "  max " + output.FormatCurrency(item.MaxLimit)
	}

	label := fmt.Sprintf("%s [%s]", item.PayHeadName, item.RegimeLabel())
	if m.cursor == row {
		if m.editing {
			return SelectedRowStyle.Render(fmt.Sprintf(" ▸ %-32s ", label)) + m.input.View() + limit
		}
		return SelectedRowStyle.Render(fmt.Sprintf(" ▸ %-32s %12s", label, value)) + limit
	}
	return fmt.Sprintf("   %-32s %12s%s", label, value, limit)
}

// renderResultPanel shows the latest regime comparison, if any
func (m Model) renderResultPanel() string {
	r := m.session.Result()
	if r == nil {
		return BorderStyle.Render("No calculation yet.\n\nEdit a field or press g\nto calculate.")
	}

	var sb strings.Builder
	sb.WriteString("TAX COMPARISON\n\n")
	fmt.Fprintf(&sb, "%-14s %12s %12s\n", "", "Old", "New")
	fmt.Fprintf(&sb, "%-14s %12s %12s\n", "Taxable", output.FormatCurrency(r.OldRegime.TaxableIncome), output.FormatCurrency(r.NewRegime.TaxableIncome))
	fmt.Fprintf(&sb, "%-14s %12s %12s\n", "Cess", output.FormatCurrency(r.OldRegime.Cess), output.FormatCurrency(r.NewRegime.Cess))
	fmt.Fprintf(&sb, "%-14s %12s %12s\n", "Total Tax", output.FormatCurrency(r.OldRegime.TotalTaxWithCess), output.FormatCurrency(r.NewRegime.TotalTaxWithCess))
	sb.WriteString("\n")
	sb.WriteString(SuggestionStyle.Render(fmt.Sprintf("Suggested: %s regime", r.Suggestion)))
	if r.Savings.IsPositive() {
		fmt.Fprintf(&sb, "\nYou save %s", output.FormatCurrency(r.Savings))
	}
	sb.WriteString("\n\nPress b for the slab breakup.")

	return BorderStyle.Render(sb.String())
}

// renderBreakup renders the per-slab tax tables for both regimes
func (m Model) renderBreakup() string {
	r := m.session.Result()
	if r == nil {
		return BorderStyle.Render("No calculation to break up yet.")
	}

	renderOne := func(title string, reg domain.RegimeResult) string {
		var sb strings.Builder
		sb.WriteString(title + "\n\n")
		fmt.Fprintf(&sb, "%-30s %12s\n", "Gross Income", output.FormatCurrency(reg.GrossIncome))
		fmt.Fprintf(&sb, "%-30s %12s\n", "Total Deductions", output.FormatCurrency(reg.TotalDeductions))
		fmt.Fprintf(&sb, "%-30s %12s\n\n", "Taxable Income", output.FormatCurrency(reg.TaxableIncome))
		for _, slab := range reg.TaxSlabs {
			fmt.Fprintf(&sb, "%-30s %12s\n", slab.Range, output.FormatCurrency(slab.Tax))
		}
		fmt.Fprintf(&sb, "\n%-30s %12s", "TOTAL TAX", output.FormatCurrency(reg.TotalTaxWithCess))
		return BorderStyle.Render(sb.String())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderOne("OLD REGIME", r.OldRegime),
		" ",
		renderOne("NEW REGIME", r.NewRegime),
	)
}

// renderRating renders the one-shot feedback prompt
func (m Model) renderRating() string {
	if m.rated {
		filled := strings.Repeat("★", m.stars) + strings.Repeat("☆", 5-m.stars)
		return BorderStyle.Render(fmt.Sprintf("Thanks for the feedback!\n\n%s", filled))
	}
	return BorderStyle.Render(
		"How useful was this estimate?\n\n" +
			"Press 1 to 5 to rate.\n\n" +
			"☆ ☆ ☆ ☆ ☆",
	)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
Income Tax Planner

KEYBOARD SHORTCUTS:
  ↑/↓ or k/j  Move between fields
  enter       Edit the selected field, or commit the edit
  m           Set the selected field to its statutory ceiling
  g           Calculate now, skipping the auto-calculate delay
  b           Show the per-slab tax breakup
  d           Download the report as HTML
  x           Clear the whole form
  r           Rate this tool
  ?           Show this help
  esc         Dismiss errors / go back
  q/Ctrl+C    Quit

NOTES:
  Values above a field's statutory ceiling are clamped.
  Total 80C and Chapter VI-A Others are computed for you.
  The tax comparison refreshes a second after you stop typing.
`
	return BorderStyle.Render(helpText)
}
