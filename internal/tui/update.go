package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/scheduler"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.errMessage = msg.Message
		return m, nil

	case EmployeeLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMessage = "Failed to fetch employee details. Using default values."
			return m, nil
		}
		m.session.Prefill(msg.Employee)
		return m, nil

	case SchedulerEventMsg:
		return m.handleSchedulerEvent(msg.Event)

	case ReportSavedMsg:
		if msg.Err != nil {
			m.errMessage = "Could not save the report: " + msg.Err.Error()
			return m, nil
		}
		m.infoMessage = "Report saved to " + msg.Path
		return m, nil

	case RatingSubmittedMsg:
		m.rated = true
		m.stars = msg.Stars
		return m, nil
	}

	return m, nil
}

// handleSchedulerEvent applies one submission lifecycle event and
// immediately re-arms the event listener.
func (m Model) handleSchedulerEvent(ev scheduler.Event) (tea.Model, tea.Cmd) {
	rearm := waitForEventCmd(m.sched.Events())

	switch ev.Kind {
	case scheduler.EventStarted:
		m.loading = true
		m.loadingMessage = "Calculating tax..."

	case scheduler.EventSettled:
		m.loading = false
		m.session.SetResult(ev.Result)

	case scheduler.EventFailed:
		// The previous result, if any, stays on screen.
		m.loading = false
		m.errMessage = ev.Message
	}

	return m, rearm
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While editing, the text input owns almost every key.
	if m.editing {
		return m.handleEditingKey(msg)
	}

	// Global keyboard shortcuts
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.errMessage != "" || m.infoMessage != "" {
			m.errMessage = ""
			m.infoMessage = ""
			return m, nil
		}
		if m.currentScene != SceneForm && m.currentScene != SceneWelcome {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneForm} }
		}
		return m, nil

	case "?":
		if m.currentScene != SceneHelp {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneHelp} }
		}
		return m, nil
	}

	switch m.currentScene {
	case SceneWelcome:
		return m.handleWelcomeKey(msg)
	case SceneForm:
		return m.handleFormKey(msg)
	case SceneBreakup:
		if msg.String() == "d" && m.session.Result() != nil {
			return m, saveReportCmd(m.reportDir, m.financialYear, m.session)
		}
		return m, nil
	case SceneRating:
		return m.handleRatingKey(msg)
	}
	return m, nil
}

func (m Model) handleWelcomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	emp := m.session.Employee()
	if msg.String() == "enter" && emp != nil && emp.WindowOpen() {
		return m, func() tea.Msg { return NavigateMsg{Scene: SceneForm} }
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}

	case "enter":
		// Begin editing the row under the cursor.
		m.editing = true
		if i := m.fbpIndex(); i >= 0 {
			m.input.SetValue(m.session.Inputs().FBP[i].Amount.String())
		} else {
			m.input.SetValue(m.session.Inputs().Get(m.currentField()).String())
		}
		m.input.Focus()
		return m, textinput.Blink

	case "m":
		// Max affordance: jump to the statutory ceiling.
		if i := m.fbpIndex(); i >= 0 {
			if err := m.session.SetFBPMax(i); err != nil {
				return m, nil
			}
		} else {
			m.session.SetFieldMax(m.currentField())
		}
		m.sched.NoteChange(context.Background(), m.payload())

	case "g":
		// Calculate now, skipping the debounce.
		return m, submitNowCmd(m.sched, m.payload())

	case "x":
		m.session.Clear()
		m.sched.Clear()
		m.cursor = 0

	case "b":
		if m.session.Result() != nil {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneBreakup} }
		}

	case "d":
		if m.session.Result() != nil {
			return m, saveReportCmd(m.reportDir, m.financialYear, m.session)
		}

	case "r":
		return m, func() tea.Msg { return NavigateMsg{Scene: SceneRating} }
	}

	return m, nil
}

// handleEditingKey routes keys into the text input until the edit is
// committed or abandoned.
func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.input.Blur()
		return m.commitEdit()

	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitEdit parses the entered amount and applies it. A value that
// does not parse leaves the field unchanged.
func (m Model) commitEdit() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if raw == "" {
		return m, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		m.errMessage = "Please enter a valid amount."
		return m, nil
	}

	if i := m.fbpIndex(); i >= 0 {
		if err := m.session.SetFBPAmount(i, v); err != nil {
			return m, nil
		}
	} else {
		if err := m.session.SetField(m.currentField(), v); err != nil {
			return m, nil
		}
	}

	m.sched.NoteChange(context.Background(), m.payload())
	return m, nil
}

func (m Model) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3", "4", "5":
		if m.rated {
			return m, nil
		}
		stars := int(msg.Runes[0] - '0')
		return m, submitRatingCmd(m.client, m.userID, stars)
	}
	return m, nil
}
