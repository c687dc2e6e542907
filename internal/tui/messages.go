package tui

import (
	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/scheduler"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneWelcome Scene = iota
	SceneForm
	SceneBreakup
	SceneRating
	SceneHelp
)

// GetSceneName returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneWelcome:
		return "Welcome"
	case SceneForm:
		return "Declaration"
	case SceneBreakup:
		return "Tax Breakup"
	case SceneRating:
		return "Rating"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays a dismissible error banner
type ErrorMsg struct {
	Message string
}

// EmployeeLoadedMsg signals the employee profile fetch has finished
type EmployeeLoadedMsg struct {
	Employee *domain.Employee
	Err      error
}

// SchedulerEventMsg wraps one event from the submission scheduler
type SchedulerEventMsg struct {
	Event scheduler.Event
}

// ReportSavedMsg signals the HTML report download has finished
type ReportSavedMsg struct {
	Path string
	Err  error
}

// RatingSubmittedMsg signals the feedback rating was sent
type RatingSubmittedMsg struct {
	Stars int
}
