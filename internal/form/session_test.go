package form

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/limits"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newTestSession() *Session {
	return NewSession(limits.FY2026())
}

func TestSetField_ClampsAndDerives(t *testing.T) {
	s := newTestSession()

	assert.NoError(t, s.SetField(domain.FieldSection80D, d(90000)))
	assert.True(t, s.Inputs().Get(domain.FieldSection80D).Equal(d(75000)), "80D must clamp to 75000")
	assert.True(t, s.Inputs().Get(domain.FieldChapterVIOthers).Equal(d(75000)), "aggregate must pick up the clamped value")

	assert.NoError(t, s.SetField(domain.FieldPF, d(100000)))
	assert.NoError(t, s.SetField(domain.FieldVPF, d(80000)))
	assert.True(t, s.Inputs().Get(domain.FieldSection80C).Equal(d(150000)), "80C must cap at 150000, not 180000")
}

func TestSetField_DerivedFieldRejected(t *testing.T) {
	s := newTestSession()
	assert.Error(t, s.SetField(domain.FieldSection80C, d(1)))
	assert.Error(t, s.SetField(domain.FieldChapterVIOthers, d(1)))
}

func TestSetFieldMax(t *testing.T) {
	s := newTestSession()

	s.SetFieldMax(domain.FieldSection80CCD1B)
	assert.True(t, s.Inputs().Get(domain.FieldSection80CCD1B).Equal(d(50000)))
	assert.True(t, s.Inputs().Get(domain.FieldChapterVIOthers).Equal(d(50000)))

	// No ceiling, no change.
	s.SetFieldMax(domain.FieldSection80E)
	assert.True(t, s.Inputs().Get(domain.FieldSection80E).IsZero())
}

func TestPrefill(t *testing.T) {
	s := newTestSession()
	emp := &domain.Employee{
		EmployeeName:  "Asha Rao",
		TotalEarnings: d(1500000),
		PF:            d(90000),
		VPF:           d(10000),
		NPSMaxLimit:   d(120000),
		FBP: []domain.FBPItem{
			{PayHeadID: 1, PayHeadName: "Fuel", MaxLimit: d(50000)},
		},
	}

	s.Prefill(emp)

	in := s.Inputs()
	assert.True(t, in.Get(domain.FieldTotalEarnings).Equal(d(1500000)))
	assert.True(t, in.Get(domain.FieldSection80C).Equal(d(100000)), "prefill must run the 80C rule")
	assert.True(t, in.Get(domain.FieldChapterVIOthers).Equal(d(120000)), "employer NPS feeds the Chapter VI-A aggregate")
	assert.Len(t, in.FBP, 1)

	// The session owns its copy of the FBP list.
	emp.FBP[0].Amount = d(99999)
	assert.True(t, in.FBP[0].Amount.IsZero())
}

func TestFBPEdits(t *testing.T) {
	s := newTestSession()
	s.Prefill(&domain.Employee{FBP: []domain.FBPItem{
		{PayHeadName: "Fuel", MaxLimit: d(50000)},
		{PayHeadName: "Books"},
	}})

	// Amounts are stored unclamped; the ceiling applies at aggregation.
	assert.NoError(t, s.SetFBPAmount(0, d(60000)))
	assert.True(t, s.Inputs().FBP[0].Amount.Equal(d(60000)))
	assert.NoError(t, s.SetFBPAmount(1, d(10000)))
	assert.True(t, s.TotalFBP().Equal(d(60000)))

	assert.NoError(t, s.SetFBPMax(0))
	assert.True(t, s.Inputs().FBP[0].Amount.Equal(d(50000)))

	// Max on an unbounded item is a no-op.
	assert.NoError(t, s.SetFBPMax(1))
	assert.True(t, s.Inputs().FBP[1].Amount.Equal(d(10000)))

	assert.Error(t, s.SetFBPAmount(5, d(1)))
	assert.Error(t, s.SetFBPMax(-1))

	assert.NoError(t, s.SetFBPAmount(1, d(-200)))
	assert.True(t, s.Inputs().FBP[1].Amount.IsZero())
}

func TestClear(t *testing.T) {
	s := newTestSession()
	s.Prefill(&domain.Employee{
		TotalEarnings: d(1000000),
		PF:            d(50000),
		FBP:           []domain.FBPItem{{PayHeadName: "Fuel", Amount: d(1000)}},
	})
	assert.NoError(t, s.SetField(domain.FieldHousingLoan, d(150000)))
	s.SetResult(&domain.TaxResult{Suggestion: domain.SuggestNew})

	s.Clear()

	for _, f := range domain.EditableFields {
		assert.True(t, s.Inputs().Get(f).IsZero(), "field %s must be zero after clear", f)
	}
	assert.True(t, s.Inputs().Get(domain.FieldSection80C).IsZero())
	assert.True(t, s.Inputs().Get(domain.FieldChapterVIOthers).IsZero())
	assert.Empty(t, s.Inputs().FBP)
	assert.Nil(t, s.Result())

	// Clear is idempotent.
	s.Clear()
	assert.Empty(t, s.Inputs().FBP)
}
