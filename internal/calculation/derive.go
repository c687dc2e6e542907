// Package calculation holds the pure derivation logic applied to form
// inputs before submission: the aggregate rules for Section 80C and
// Chapter VI-A Others, the FBP reduction, payload assembly, and the
// standalone slab reference calculator.
package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/limits"
)

// Derive recomputes both derived aggregates in place. Callers run it
// synchronously after every mutation of in; the stored values of the
// source fields are assumed to be pre-clamped.
func Derive(in *domain.Inputs) {
	in.Fields[domain.FieldSection80C] = Section80C(
		in.Get(domain.FieldPF),
		in.Get(domain.FieldVPF),
		in.Get(domain.FieldOthers80C),
	)
	in.Fields[domain.FieldChapterVIOthers] = ChapterVIOthers(in)
}

// Section80C is min(pf + vpf + others, 150000).
func Section80C(pf, vpf, others decimal.Decimal) decimal.Decimal {
	total := pf.Add(vpf).Add(others)
	if total.GreaterThan(limits.Section80CCap) {
		return limits.Section80CCap
	}
	return total
}

// ChapterVIOthers is the unclamped sum of the nine Chapter VI-A source
// fields. Only the sources were clamped, at edit time; the aggregate
// never is.
func ChapterVIOthers(in *domain.Inputs) decimal.Decimal {
	sum := decimal.Zero
	for _, f := range domain.ChapterVISources {
		sum = sum.Add(in.Get(f))
	}
	return sum
}
