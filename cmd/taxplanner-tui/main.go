package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/payrollhq/taxplanner/internal/api"
	"github.com/payrollhq/taxplanner/internal/config"
	"github.com/payrollhq/taxplanner/internal/encid"
	"github.com/payrollhq/taxplanner/internal/form"
	"github.com/payrollhq/taxplanner/internal/limits"
	"github.com/payrollhq/taxplanner/internal/scheduler"
	"github.com/payrollhq/taxplanner/internal/tui"
)

func main() {
	// Get config file path from arguments
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	} else {
		fmt.Println("Usage: taxplanner-tui <config-file>")
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.BuildLogger(conf.Logging, "")
	if err != nil {
		fmt.Printf("Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	table := limits.FY2026()
	if conf.StatutoryFile != "" {
		table, err = limits.LoadFromFile(conf.StatutoryFile)
		if err != nil {
			fmt.Printf("Error loading statutory table: %v\n", err)
			os.Exit(1)
		}
	}

	userID, err := encid.ResolveUserID(conf.UserID)
	if err != nil {
		fmt.Printf("Error resolving user ID: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(conf.APIBaseURL, logger)
	sched := scheduler.New(client, scheduler.Options{
		QuietPeriod: conf.Timing.QuietPeriod(),
		MinVisible:  conf.Timing.MinVisible(),
	}, logger)
	session := form.NewSession(table)

	// Create the application model
	model := tui.NewModel(client, sched, session, userID, conf.FinancialYear, conf.Output.Directory)

	// Create the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
