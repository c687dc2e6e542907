package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
)

// Local reference slab calculator. The production computation happens on
// the payrun back-end; this approximation exists for offline sanity
// checks (tools/slabcheck) and as the fake back-end in integration
// tests. It is intentionally not reachable from the live form path.

// SlabBracket is one marginal bracket of a regime's rate schedule.
type SlabBracket struct {
	Range string
	Min   decimal.Decimal
	Max   decimal.Decimal
	Rate  decimal.Decimal
}

var cessRate = decimal.NewFromFloat(0.04)

var oldRegimeBrackets = []SlabBracket{
	{"Up to ₹2,50,000", decimal.Zero, decimal.NewFromInt(250000), decimal.Zero},
	{"₹2,50,001 - ₹5,00,000", decimal.NewFromInt(250000), decimal.NewFromInt(500000), decimal.NewFromFloat(0.05)},
	{"₹5,00,001 - ₹10,00,000", decimal.NewFromInt(500000), decimal.NewFromInt(1000000), decimal.NewFromFloat(0.20)},
	{"Above ₹10,00,000", decimal.NewFromInt(1000000), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.30)},
}

var newRegimeBrackets = []SlabBracket{
	{"Up to ₹3,00,000", decimal.Zero, decimal.NewFromInt(300000), decimal.Zero},
	{"₹3,00,001 - ₹6,00,000", decimal.NewFromInt(300000), decimal.NewFromInt(600000), decimal.NewFromFloat(0.05)},
	{"₹6,00,001 - ₹9,00,000", decimal.NewFromInt(600000), decimal.NewFromInt(900000), decimal.NewFromFloat(0.10)},
	{"₹9,00,001 - ₹12,00,000", decimal.NewFromInt(900000), decimal.NewFromInt(1200000), decimal.NewFromFloat(0.15)},
	{"₹12,00,001 - ₹15,00,000", decimal.NewFromInt(1200000), decimal.NewFromInt(1500000), decimal.NewFromFloat(0.20)},
	{"Above ₹15,00,000", decimal.NewFromInt(1500000), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.30)},
}

// OldRegimeBrackets returns the old regime rate schedule for display.
func OldRegimeBrackets() []SlabBracket {
	return append([]SlabBracket(nil), oldRegimeBrackets...)
}

// NewRegimeBrackets returns the new regime rate schedule for display.
func NewRegimeBrackets() []SlabBracket {
	return append([]SlabBracket(nil), newRegimeBrackets...)
}

// SlabTax runs taxable income through a bracket schedule and appends the
// 4% health and education cess. The returned slabs include a row per
// bracket touched plus the cess row.
func SlabTax(taxableIncome decimal.Decimal, brackets []SlabBracket) (decimal.Decimal, []domain.TaxSlab) {
	var slabs []domain.TaxSlab
	totalTax := decimal.Zero

	for _, b := range brackets {
		if taxableIncome.LessThanOrEqual(b.Min) {
			if b.Min.IsZero() {
				slabs = append(slabs, domain.TaxSlab{Range: b.Range, Tax: decimal.Zero})
			}
			break
		}
		incomeInBracket := decimal.Min(taxableIncome, b.Max).Sub(b.Min)
		tax := incomeInBracket.Mul(b.Rate)
		slabs = append(slabs, domain.TaxSlab{Range: b.Range, Tax: tax})
		totalTax = totalTax.Add(tax)
	}

	cess := totalTax.Mul(cessRate)
	totalTax = totalTax.Add(cess)
	slabs = append(slabs, domain.TaxSlab{Range: "Health & Education Cess (4%)", Tax: cess})

	return totalTax, slabs
}

var (
	standardDeduction = decimal.NewFromInt(50000)
	oldDeductionCap   = decimal.NewFromInt(200000)
	halfRate          = decimal.NewFromFloat(0.5)
	tenPercent        = decimal.NewFromFloat(0.1)
)

// EstimateLocally approximates the back-end comparison for the given
// derived figures. Rebate and surcharge are not modelled here.
func EstimateLocally(totalEarnings, hraPaid, section80C, housingLoan, chapterVIOthers, otherIncome, fbp decimal.Decimal) *domain.TaxResult {
	grossIncome := totalEarnings.Add(otherIncome).Add(fbp)

	// Old regime: HRA exemption is the least of rent paid, 50% of
	// earnings, and rent beyond 10% of earnings; the deduction pile is
	// capped before the standard deduction applies.
	hraExemption := decimal.Min(hraPaid, totalEarnings.Mul(halfRate), totalEarnings.Sub(totalEarnings.Mul(tenPercent)))
	deductionsOld := decimal.Min(section80C.Add(housingLoan).Add(chapterVIOthers).Add(hraExemption), oldDeductionCap)
	taxableOld := decimal.Max(decimal.Zero, grossIncome.Sub(deductionsOld).Sub(standardDeduction))
	oldTax, oldSlabs := SlabTax(taxableOld, oldRegimeBrackets)

	taxableNew := decimal.Max(decimal.Zero, grossIncome.Sub(standardDeduction))
	newTax, newSlabs := SlabTax(taxableNew, newRegimeBrackets)

	suggestion := domain.SuggestNew
	if oldTax.LessThanOrEqual(newTax) {
		suggestion = domain.SuggestOld
	}

	old := domain.RegimeResult{
		GrossIncome:                 grossIncome,
		TotalDeductions:             deductionsOld.Add(standardDeduction),
		TaxableIncome:               taxableOld,
		TaxIncludingSurchargeIncome: oldTax,
		Cess:                        slabCess(oldSlabs),
		TotalTaxWithCess:            oldTax.Round(0),
		TaxSlabs:                    oldSlabs,
	}
	next := domain.RegimeResult{
		GrossIncome:                 grossIncome,
		TotalDeductions:             standardDeduction,
		TaxableIncome:               taxableNew,
		TaxIncludingSurchargeIncome: newTax,
		Cess:                        slabCess(newSlabs),
		TotalTaxWithCess:            newTax.Round(0),
		TaxSlabs:                    newSlabs,
	}

	return &domain.TaxResult{
		OldRegime:  old,
		NewRegime:  next,
		Suggestion: suggestion,
		Savings:    oldTax.Sub(newTax).Abs().Round(0),
	}
}

func slabCess(slabs []domain.TaxSlab) decimal.Decimal {
	if len(slabs) == 0 {
		return decimal.Zero
	}
	return slabs[len(slabs)-1].Tax
}
