package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
)

func TestTotalFBP(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.FBPItem
		want  int64
	}{
		{"empty list", nil, 0},
		{
			"capped plus uncapped",
			[]domain.FBPItem{
				{Amount: d(60000), MaxLimit: d(50000)},
				{Amount: d(10000)}, // no ceiling
			},
			60000,
		},
		{
			"under limits untouched",
			[]domain.FBPItem{
				{Amount: d(20000), MaxLimit: d(50000)},
				{Amount: d(5000), MaxLimit: d(5000)},
			},
			25000,
		},
		{
			"zero amounts",
			[]domain.FBPItem{{MaxLimit: d(50000)}, {}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalFBP(tt.items)
			if !got.Equal(d(tt.want)) {
				t.Errorf("TotalFBP = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestTotalFBP_Rounds(t *testing.T) {
	items := []domain.FBPItem{
		{Amount: decimal.NewFromFloat(1000.4)},
		{Amount: decimal.NewFromFloat(2000.3)},
	}
	got := TotalFBP(items)
	if !got.Equal(d(3001)) {
		t.Errorf("TotalFBP = %s, want 3001", got)
	}
}

func TestAdjustedFBP(t *testing.T) {
	items := []domain.FBPItem{
		{PayHeadID: 7, PayHeadName: "Fuel", Amount: d(60000), MaxLimit: d(50000), AllowedTaxRegime: 1, CriteriaOption: "Car"},
		{PayHeadID: 9, PayHeadName: "Books", Amount: d(8000)},
	}

	details := AdjustedFBP(items)
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}

	if details[0].AdjustedAmount != 50000 {
		t.Errorf("capped item adjustedAmount = %v, want 50000", details[0].AdjustedAmount)
	}
	if details[0].Amount != 60000 {
		t.Errorf("original amount must be preserved, got %v", details[0].Amount)
	}
	if details[0].PayHeadName != "Fuel" || details[0].AllowedTaxRegime != 1 || details[0].CriteriaOption != "Car" {
		t.Error("item metadata must carry over verbatim")
	}
	if details[1].AdjustedAmount != 8000 {
		t.Errorf("uncapped item adjustedAmount = %v, want 8000", details[1].AdjustedAmount)
	}

	// Source items are never clamped in place.
	if !items[0].Amount.Equal(d(60000)) {
		t.Error("AdjustedFBP mutated the source list")
	}
}

func TestAdjustedFBP_Empty(t *testing.T) {
	if AdjustedFBP(nil) != nil {
		t.Error("expected nil for empty list")
	}
}
