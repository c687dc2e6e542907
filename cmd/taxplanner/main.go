package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/payrollhq/taxplanner/internal/api"
	"github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/config"
	"github.com/payrollhq/taxplanner/internal/encid"
	"github.com/payrollhq/taxplanner/internal/form"
	"github.com/payrollhq/taxplanner/internal/limits"
	"github.com/payrollhq/taxplanner/internal/output"
	"github.com/payrollhq/taxplanner/internal/scheduler"
	"github.com/payrollhq/taxplanner/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxplanner %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "taxplanner",
	Short: "Income tax declaration planner CLI",
	Long:  "Estimates income tax under both regimes for an employee's declaration inputs",
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [config-file]",
	Short: "Fetch the employee profile and run a one-shot tax estimate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfiguration(args[0])
		if err != nil {
			return err
		}

		logLevel, _ := cmd.Flags().GetString("log-level")
		logger, err := config.BuildLogger(conf.Logging, logLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		userID, err := encid.ResolveUserID(conf.UserID)
		if err != nil {
			return err
		}

		table := limits.FY2026()
		if conf.StatutoryFile != "" {
			table, err = limits.LoadFromFile(conf.StatutoryFile)
			if err != nil {
				return err
			}
		}

		client := api.NewClient(conf.APIBaseURL, logger)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		emp, err := client.EmployeeDetails(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch employee details: %w", err)
		}
		if !emp.WindowOpen() {
			return fmt.Errorf("the tax declaration window is closed for %s", emp.EmployeeName)
		}

		session := form.NewSession(table)
		session.Prefill(emp)

		if inputsFile, _ := cmd.Flags().GetString("inputs"); inputsFile != "" {
			if err := session.ApplyDeclarations(inputsFile); err != nil {
				return err
			}
		}

		payload := calculation.BuildPayload(session.Inputs(), emp, userID, conf.FinancialYear)
		result, err := client.ComputeTax(ctx, payload)
		if err != nil {
			return fmt.Errorf("%s", api.UserMessage(err))
		}

		format, _ := cmd.Flags().GetString("format")
		rg := output.NewReportGenerator(conf.Output.Directory)
		data := output.ReportData{
			EmployeeName:   emp.EmployeeName,
			EmployeeNumber: emp.EmployeeNumber,
			FinancialYear:  conf.FinancialYear,
			Result:         result,
		}
		if format == "html" {
			path, err := rg.GenerateHTMLReport(data, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		}
		return rg.GenerateReport(data, format)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [config-file]",
	Short: "Launch the interactive declaration planner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfiguration(args[0])
		if err != nil {
			return err
		}

		logger, err := config.BuildLogger(conf.Logging, "")
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		userID, err := encid.ResolveUserID(conf.UserID)
		if err != nil {
			return err
		}

		table := limits.FY2026()
		if conf.StatutoryFile != "" {
			table, err = limits.LoadFromFile(conf.StatutoryFile)
			if err != nil {
				return err
			}
		}

		client := api.NewClient(conf.APIBaseURL, logger)
		sched := scheduler.New(client, scheduler.Options{
			QuietPeriod: conf.Timing.QuietPeriod(),
			MinVisible:  conf.Timing.MinVisible(),
		}, logger)
		session := form.NewSession(table)

		p := tea.NewProgram(
			tui.NewModel(client, sched, session, userID, conf.FinancialYear, conf.Output.Directory),
			tea.WithAltScreen(),
		)
		_, err = p.Run()
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfiguration(args[0])
		if err != nil {
			return err
		}
		if conf.StatutoryFile != "" {
			if _, err := limits.LoadFromFile(conf.StatutoryFile); err != nil {
				return err
			}
		}
		fmt.Println("Configuration is valid.")
		return nil
	},
}

var uidCmd = &cobra.Command{
	Use:   "uid",
	Short: "Encode or decode opaque employee identifiers",
}

var uidEncodeCmd = &cobra.Command{
	Use:   "encode [employee-id]",
	Short: "Encode an employee ID into its link form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := uidCodec(cmd)
		if err != nil {
			return err
		}
		encoded, err := codec.Encode(args[0])
		if err != nil {
			return err
		}
		fmt.Println(encoded)
		return nil
	},
}

var uidDecodeCmd = &cobra.Command{
	Use:   "decode [token]",
	Short: "Decode a link token back to the employee ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := uidCodec(cmd)
		if err != nil {
			return err
		}
		decoded, err := codec.Decode(args[0])
		if err != nil {
			return err
		}
		fmt.Println(decoded)
		return nil
	},
}

func uidCodec(cmd *cobra.Command) (*encid.Codec, error) {
	key, _ := cmd.Flags().GetString("key")
	iv, _ := cmd.Flags().GetString("iv")
	return encid.NewCodec(key, iv)
}

func init() {
	estimateCmd.Flags().StringP("format", "f", "console", "Output format: console or html")
	estimateCmd.Flags().StringP("inputs", "i", "", "YAML file of declared amounts applied over the prefilled profile")
	estimateCmd.Flags().String("log-level", "", "Override the configured log level")

	uidCmd.PersistentFlags().String("key", encid.DefaultKey, "AES key (32 bytes)")
	uidCmd.PersistentFlags().String("iv", encid.DefaultIV, "AES IV (16 bytes)")
	uidCmd.AddCommand(uidEncodeCmd)
	uidCmd.AddCommand(uidDecodeCmd)

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(uidCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
