package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	calc "github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/output"
)

// Offline sanity check for the reference slab calculator. Feeds a set of
// derived figures through both regimes and prints the comparison.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: slabcheck <total-earnings> [hra] [80c] [housing-loan] [vi-others] [other-income] [fbp]")
		return
	}

	arg := func(i int) decimal.Decimal {
		if i >= len(os.Args) {
			return decimal.Zero
		}
		v, err := strconv.ParseFloat(os.Args[i], 64)
		if err != nil {
			panic(err)
		}
		return decimal.NewFromFloat(v)
	}

	res := calc.EstimateLocally(arg(1), arg(2), arg(3), arg(4), arg(5), arg(6), arg(7))

	fmt.Println("OLD REGIME")
	fmt.Printf("  taxable %s\n", output.FormatCurrency(res.OldRegime.TaxableIncome))
	for _, s := range res.OldRegime.TaxSlabs {
		fmt.Printf("  %-30s %s\n", s.Range, output.FormatCurrency(s.Tax))
	}
	fmt.Printf("  total %s\n", output.FormatCurrency(res.OldRegime.TotalTaxWithCess))

	fmt.Println("NEW REGIME")
	fmt.Printf("  taxable %s\n", output.FormatCurrency(res.NewRegime.TaxableIncome))
	for _, s := range res.NewRegime.TaxSlabs {
		fmt.Printf("  %-30s %s\n", s.Range, output.FormatCurrency(s.Tax))
	}
	fmt.Printf("  total %s\n", output.FormatCurrency(res.NewRegime.TotalTaxWithCess))

	fmt.Printf("suggestion: %s (saves %s)\n", res.Suggestion, output.FormatCurrency(res.Savings))
}
