// Package output renders computed tax results as console text and HTML
// reports.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
)

// Report timestamps are always Indian Standard Time (UTC+5:30)
// regardless of where the planner runs.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// ReportGenerator handles report generation in various formats
type ReportGenerator struct {
	// Directory receives HTML reports. Empty means the working directory.
	Directory string
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(directory string) *ReportGenerator {
	return &ReportGenerator{Directory: directory}
}

// ReportData is everything a rendered report shows.
type ReportData struct {
	EmployeeName   string
	EmployeeNumber string
	FinancialYear  string
	GeneratedAt    string
	Result         *domain.TaxResult
}

// GenerateReport generates a report in the specified format
func (rg *ReportGenerator) GenerateReport(data ReportData, format string) error {
	switch format {
	case "console":
		return rg.GenerateConsoleReport(data)
	case "html":
		_, err := rg.GenerateHTMLReport(data, time.Now())
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport prints the full regime comparison and slab
// breakup to stdout.
func (rg *ReportGenerator) GenerateConsoleReport(data ReportData) error {
	if data.Result == nil {
		return fmt.Errorf("no tax result to report")
	}
	r := data.Result

	fmt.Println("=================================================================")
	fmt.Println("INCOME TAX ESTIMATE")
	fmt.Println("=================================================================")
	if data.EmployeeName != "" {
		fmt.Printf("Employee:       %s (%s)\n", data.EmployeeName, data.EmployeeNumber)
	}
	fmt.Printf("Financial Year: %s\n", data.FinancialYear)
	fmt.Println()

	printRegime := func(name string, reg domain.RegimeResult) {
		fmt.Printf("%s REGIME\n", name)
		fmt.Println(strings.Repeat("-", len(name)+7))
		fmt.Printf("Gross Income:      %s\n", FormatCurrency(reg.GrossIncome))
		fmt.Printf("Total Deductions:  %s\n", FormatCurrency(reg.TotalDeductions))
		fmt.Printf("Taxable Income:    %s\n", FormatCurrency(reg.TaxableIncome))
		fmt.Printf("Cess:              %s\n", FormatCurrency(reg.Cess))
		fmt.Printf("Total Tax:         %s\n", FormatCurrency(reg.TotalTaxWithCess))
		for _, slab := range reg.TaxSlabs {
			fmt.Printf("  %-28s %s\n", slab.Range, FormatCurrency(slab.Tax))
		}
		fmt.Println()
	}
	printRegime("OLD", r.OldRegime)
	printRegime("NEW", r.NewRegime)

	fmt.Printf("Suggested Regime: %s\n", r.Suggestion)
	fmt.Printf("Savings:          %s\n", FormatCurrency(r.Savings))
	return nil
}

// GenerateHTMLReport renders the HTML report and writes it next to the
// configured directory, returning the path written.
func (rg *ReportGenerator) GenerateHTMLReport(data ReportData, now time.Time) (string, error) {
	if data.Result == nil {
		return "", fmt.Errorf("no tax result to report")
	}
	if data.GeneratedAt == "" {
		data.GeneratedAt = now.In(istZone).Format("02/01/2006, 03:04:05 PM")
	}

	body, err := HTMLFormatter{}.Format(data)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	name := ReportFilename(data.EmployeeName, now) + ".html"
	path := filepath.Join(rg.Directory, name)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// ReportFilename builds the download name for a report generated at the
// given instant: the employee name stripped of whitespace, then the IST
// timestamp as YYYY_MM_DD_HH_MM_AMPM with a 12 hour clock.
func ReportFilename(employeeName string, now time.Time) string {
	clean := strings.Join(strings.Fields(employeeName), "")
	if clean == "" {
		clean = "TaxReport"
	}

	ist := now.In(istZone)
	ampm := "AM"
	hours := ist.Hour()
	if hours >= 12 {
		ampm = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%s_%04d_%02d_%02d_%02d_%02d_%s",
		clean, ist.Year(), int(ist.Month()), ist.Day(), hours, ist.Minute(), ampm)
}

// FormatCurrency formats a decimal as rupees with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	grouped := groupIndian(s)
	if neg {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// groupIndian applies the lakh and crore grouping: the last three
// digits, then pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}
