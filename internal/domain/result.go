package domain

import (
	"github.com/shopspring/decimal"
)

// TaxSlab is one row of a regime's slab-wise breakup.
type TaxSlab struct {
	Range string          `json:"range"`
	Tax   decimal.Decimal `json:"tax"`
}

// RegimeResult is the computed liability under one tax regime, as
// returned by the tax-compute back-end. The client renders it and never
// recomputes any of its members.
type RegimeResult struct {
	GrossIncome                 decimal.Decimal `json:"grossIncome"`
	TotalDeductions             decimal.Decimal `json:"totalDeductions"`
	TaxableIncome               decimal.Decimal `json:"taxableIncome"`
	Rebate                      decimal.Decimal `json:"rebate"`
	SurchargeIncome             decimal.Decimal `json:"surchargeIncome"`
	TaxIncludingSurchargeIncome decimal.Decimal `json:"taxIncludingSurchargeIncome"`
	Cess                        decimal.Decimal `json:"cess"`
	TotalTaxWithCess            decimal.Decimal `json:"totalTaxWithCess"`
	TaxSlabs                    []TaxSlab       `json:"taxSlabs"`
}

// Suggestion values returned by the compute back-end.
const (
	SuggestOld = "OLD"
	SuggestNew = "NEW"
)

// TaxResult is a full old-vs-new comparison. Replaced wholesale on each
// successful submission, cleared by the form's reset.
type TaxResult struct {
	OldRegime  RegimeResult    `json:"oldRegime"`
	NewRegime  RegimeResult    `json:"newRegime"`
	Suggestion string          `json:"suggestion"`
	Savings    decimal.Decimal `json:"savings"`
}

// Suggested returns the regime result the back-end flagged as cheaper.
func (r *TaxResult) Suggested() *RegimeResult {
	if r.Suggestion == SuggestOld {
		return &r.OldRegime
	}
	return &r.NewRegime
}
