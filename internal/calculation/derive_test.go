package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSection80C(t *testing.T) {
	tests := []struct {
		name            string
		pf, vpf, others int64
		want            int64
	}{
		{"all zero", 0, 0, 0, 0},
		{"under cap", 50000, 20000, 10000, 80000},
		{"exactly at cap", 100000, 50000, 0, 150000},
		{"capped not summed", 100000, 80000, 0, 150000},
		{"single field over cap", 200000, 0, 0, 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Section80C(d(tt.pf), d(tt.vpf), d(tt.others))
			if !got.Equal(d(tt.want)) {
				t.Errorf("Section80C(%d, %d, %d) = %s, want %d", tt.pf, tt.vpf, tt.others, got, tt.want)
			}
		})
	}
}

func TestChapterVIOthers_UnclampedSum(t *testing.T) {
	in := domain.NewInputs()
	in.Fields[domain.FieldSection80D] = d(75000)
	in.Fields[domain.FieldSection80DD] = d(125000)

	got := ChapterVIOthers(in)
	if !got.Equal(d(200000)) {
		t.Errorf("ChapterVIOthers = %s, want 200000", got)
	}
}

func TestChapterVIOthers_AllNineSources(t *testing.T) {
	in := domain.NewInputs()
	for i, f := range domain.ChapterVISources {
		in.Fields[f] = d(int64(1000 * (i + 1)))
	}

	// 1000 + 2000 + ... + 9000
	got := ChapterVIOthers(in)
	if !got.Equal(d(45000)) {
		t.Errorf("ChapterVIOthers = %s, want 45000", got)
	}
}

func TestDerive_OverwritesBothAggregates(t *testing.T) {
	in := domain.NewInputs()
	in.Fields[domain.FieldSection80C] = d(999999)
	in.Fields[domain.FieldChapterVIOthers] = d(999999)
	in.Fields[domain.FieldPF] = d(60000)
	in.Fields[domain.FieldSection80E] = d(30000)

	Derive(in)

	if !in.Get(domain.FieldSection80C).Equal(d(60000)) {
		t.Errorf("section80C = %s, want 60000", in.Get(domain.FieldSection80C))
	}
	if !in.Get(domain.FieldChapterVIOthers).Equal(d(30000)) {
		t.Errorf("chapterVIOthers = %s, want 30000", in.Get(domain.FieldChapterVIOthers))
	}
}
