package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
)

// ComputeRequest is the income-tax POST body. Amounts travel as plain
// JSON numbers.
type ComputeRequest struct {
	FinancialYear string        `json:"financialYear"`
	IncomeDetails IncomeDetails `json:"incomeDetails"`
}

// IncomeDetails carries the derived form state plus the identity and NPS
// ceiling figures the back-end echoes into its computation.
type IncomeDetails struct {
	TotalEarnings      float64     `json:"totalEarnings"`
	HRAPaid            float64     `json:"hraPaid"`
	Section80C         float64     `json:"section80C"`
	HousingLoan        float64     `json:"housingLoan"`
	ChapterVIOthers    float64     `json:"chapterVIOthers"`
	OtherIncome        float64     `json:"otherIncome"`
	EmployerNPS80CCD1B float64     `json:"employernps80ccd1b"`
	FBP                float64     `json:"fbp"`
	UserIDs            string      `json:"userids"`
	NPSMaxLimitOld     float64     `json:"npsMaxLimitOld"`
	NPSMaxLimitNew     float64     `json:"npsMaxLimitNew"`
	FBPDetails         []FBPDetail `json:"fbpDetails"`
}

// FBPDetail is one fbpDetails entry: the original item annotated with
// its effective (clamped) amount.
type FBPDetail struct {
	PayHeadID        int     `json:"payHeadID"`
	PayHeadName      string  `json:"payHeadName"`
	Amount           float64 `json:"amount"`
	MaxLimit         float64 `json:"maxLimit"`
	AllowedTaxRegime int     `json:"allowedTaxRegime"`
	CriteriaOption   string  `json:"criteriaOption,omitempty"`
	AdjustedAmount   float64 `json:"adjustedAmount"`
}

// BuildPayload assembles the submission body from the current input
// state. The fbp figure is always the FBP reduction output, never the
// raw list, and the derived aggregates are read as stored (Derive has
// already run by the time a submission is scheduled).
func BuildPayload(in *domain.Inputs, emp *domain.Employee, userID, financialYear string) ComputeRequest {
	var npsOld, npsNew decimal.Decimal
	if emp != nil {
		npsOld = emp.NPSMaxLimitOld
		npsNew = emp.NPSMaxLimitNew
	}

	return ComputeRequest{
		FinancialYear: financialYear,
		IncomeDetails: IncomeDetails{
			TotalEarnings:      in.Get(domain.FieldTotalEarnings).InexactFloat64(),
			HRAPaid:            in.Get(domain.FieldHRAPaid).InexactFloat64(),
			Section80C:         in.Get(domain.FieldSection80C).InexactFloat64(),
			HousingLoan:        in.Get(domain.FieldHousingLoan).InexactFloat64(),
			ChapterVIOthers:    in.Get(domain.FieldChapterVIOthers).InexactFloat64(),
			OtherIncome:        in.Get(domain.FieldOtherIncome).InexactFloat64(),
			EmployerNPS80CCD1B: in.Get(domain.FieldEmployerNPS).InexactFloat64(),
			FBP:                TotalFBP(in.FBP).InexactFloat64(),
			UserIDs:            userID,
			NPSMaxLimitOld:     npsOld.InexactFloat64(),
			NPSMaxLimitNew:     npsNew.InexactFloat64(),
			FBPDetails:         AdjustedFBP(in.FBP),
		},
	}
}
