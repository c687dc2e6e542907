package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
)

// TotalFBP reduces the FBP list to the single figure submitted to the
// compute back-end: each item contributes min(amount, maxLimit), items
// without a limit contribute their raw amount, and the sum is rounded to
// whole rupees.
func TotalFBP(items []domain.FBPItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Effective())
	}
	return sum.Round(0)
}

// AdjustedFBP annotates each item with its effective contribution for
// the submission payload's fbpDetails list. The source items are left
// untouched.
func AdjustedFBP(items []domain.FBPItem) []FBPDetail {
	if len(items) == 0 {
		return nil
	}
	details := make([]FBPDetail, len(items))
	for i, it := range items {
		details[i] = FBPDetail{
			PayHeadID:        it.PayHeadID,
			PayHeadName:      it.PayHeadName,
			Amount:           it.Amount.InexactFloat64(),
			MaxLimit:         it.MaxLimit.InexactFloat64(),
			AllowedTaxRegime: it.AllowedTaxRegime,
			CriteriaOption:   it.CriteriaOption,
			AdjustedAmount:   it.Effective().InexactFloat64(),
		}
	}
	return details
}
