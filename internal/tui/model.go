// Package tui is the interactive terminal front end for the tax planner.
// It mirrors the declaration form: a welcome gate, the field editor with
// live recalculation, a slab breakup view, and a feedback rating.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/payrollhq/taxplanner/internal/api"
	"github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/form"
	"github.com/payrollhq/taxplanner/internal/output"
	"github.com/payrollhq/taxplanner/internal/scheduler"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Identity
	userID        string
	financialYear string

	// Directory HTML report downloads land in
	reportDir string

	// Back-end access
	client *api.Client
	sched  *scheduler.Scheduler

	// Form state
	session *form.Session

	// Row cursor over the editable fields followed by the FBP items
	cursor  int
	input   textinput.Model
	editing bool

	// Rating state
	stars int
	rated bool

	// Banners, dismissed with esc
	errMessage  string
	infoMessage string

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(client *api.Client, sched *scheduler.Scheduler, session *form.Session, userID, financialYear, reportDir string) Model {
	ti := textinput.New()
	ti.Placeholder = "amount"
	ti.CharLimit = 12
	ti.Width = 14

	return Model{
		currentScene:   SceneWelcome,
		userID:         userID,
		financialYear:  financialYear,
		reportDir:      reportDir,
		client:         client,
		sched:          sched,
		session:        session,
		input:          ti,
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading employee details...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadEmployeeCmd(m.client, m.userID),
		waitForEventCmd(m.sched.Events()),
	)
}

// loadEmployeeCmd returns a command that fetches the employee profile
func loadEmployeeCmd(client *api.Client, userID string) tea.Cmd {
	return func() tea.Msg {
		emp, err := client.EmployeeDetails(context.Background(), userID)
		return EmployeeLoadedMsg{Employee: emp, Err: err}
	}
}

// waitForEventCmd returns a command that blocks on the scheduler's event
// stream and feeds one event back into the update loop. The handler
// re-issues it so the stream is drained continuously.
func waitForEventCmd(events <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

// submitNowCmd forces an immediate calculation for the current inputs
func submitNowCmd(sched *scheduler.Scheduler, payload calculation.ComputeRequest) tea.Cmd {
	return func() tea.Msg {
		sched.SubmitNow(context.Background(), payload)
		return nil
	}
}

// saveReportCmd writes the HTML report for the latest result
func saveReportCmd(dir, financialYear string, session *form.Session) tea.Cmd {
	return func() tea.Msg {
		data := output.ReportData{
			FinancialYear: financialYear,
			Result:        session.Result(),
		}
		if emp := session.Employee(); emp != nil {
			data.EmployeeName = emp.EmployeeName
			data.EmployeeNumber = emp.EmployeeNumber
		}
		path, err := output.NewReportGenerator(dir).GenerateHTMLReport(data, time.Now())
		return ReportSavedMsg{Path: path, Err: err}
	}
}

// submitRatingCmd sends the feedback stars; failures are logged and
// never surface in the UI
func submitRatingCmd(client *api.Client, userID string, stars int) tea.Cmd {
	return func() tea.Msg {
		client.SubmitRating(context.Background(), userID, stars)
		return RatingSubmittedMsg{Stars: stars}
	}
}

// payload snapshots the current inputs for submission
func (m Model) payload() calculation.ComputeRequest {
	return calculation.BuildPayload(m.session.Inputs(), m.session.Employee(), m.userID, m.financialYear)
}

// rowCount is the scalar fields plus one row per FBP item
func (m Model) rowCount() int {
	return len(domain.EditableFields) + len(m.session.Inputs().FBP)
}

// fbpIndex maps the cursor to an FBP item index, or -1 for field rows
func (m Model) fbpIndex() int {
	if m.cursor < len(domain.EditableFields) {
		return -1
	}
	return m.cursor - len(domain.EditableFields)
}

// currentField returns the field under the cursor, or "" on an FBP row
func (m Model) currentField() domain.Field {
	if m.fbpIndex() >= 0 {
		return ""
	}
	return domain.EditableFields[m.cursor]
}
