package domain

import (
	"github.com/shopspring/decimal"
)

// Inputs holds the form's input state: one non-negative amount per scalar
// field plus the variable-length FBP list. Scalar values are stored
// pre-clamped against the statutory ceiling table; the two derived fields
// (section80C, chapterVIOthers) are recomputed after every mutation and
// must never be written directly.
type Inputs struct {
	Fields map[Field]decimal.Decimal
	FBP    []FBPItem
}

// NewInputs returns an Inputs with every scalar field zeroed and an empty
// FBP list.
func NewInputs() *Inputs {
	fields := make(map[Field]decimal.Decimal, len(EditableFields)+2)
	for _, f := range EditableFields {
		fields[f] = decimal.Zero
	}
	fields[FieldSection80C] = decimal.Zero
	fields[FieldChapterVIOthers] = decimal.Zero
	return &Inputs{Fields: fields}
}

// Get returns the stored value for f, or zero if f has never been set.
func (in *Inputs) Get(f Field) decimal.Decimal {
	return in.Fields[f]
}

// FBPItem is one Flexible Benefit Plan line item. The amount is the only
// user-editable member; the rest come from the employee-details response
// and are never mutated. A MaxLimit that is zero or negative means the
// pay head carries no ceiling.
type FBPItem struct {
	PayHeadID        int             `json:"payHeadID"`
	PayHeadName      string          `json:"payHeadName"`
	Amount           decimal.Decimal `json:"amount"`
	MaxLimit         decimal.Decimal `json:"maxLimit"`
	AllowedTaxRegime int             `json:"allowedTaxRegime"`
	CriteriaOption   string          `json:"criteriaOption,omitempty"`
}

// Bounded reports whether the item carries a ceiling.
func (it FBPItem) Bounded() bool {
	return it.MaxLimit.GreaterThan(decimal.Zero)
}

// Effective returns the contribution the item makes to the FBP total:
// min(amount, maxLimit) when bounded, otherwise the raw amount. Computed
// lazily; the stored amount is never clamped in place.
func (it FBPItem) Effective() decimal.Decimal {
	if it.Bounded() && it.Amount.GreaterThan(it.MaxLimit) {
		return it.MaxLimit
	}
	return it.Amount
}

// RegimeLabel describes which tax regimes the pay head is allowed under.
func (it FBPItem) RegimeLabel() string {
	switch it.AllowedTaxRegime {
	case 1:
		return "Old Regime"
	case 2:
		return "New Regime"
	default:
		return "Both"
	}
}
