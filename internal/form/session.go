// Package form owns the live input state of one tax planning session:
// clamped field writes, synchronous re-derivation of the aggregate
// fields, prefill from the employee record, and the hard reset.
package form

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/payrollhq/taxplanner/internal/calculation"
	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/limits"
)

// Session is a single form instance. It is not safe for concurrent use;
// the TUI event loop is its only writer.
type Session struct {
	inputs   *domain.Inputs
	table    *limits.Table
	employee *domain.Employee
	result   *domain.TaxResult
}

// NewSession creates an empty session governed by the given ceiling
// table.
func NewSession(table *limits.Table) *Session {
	return &Session{
		inputs: domain.NewInputs(),
		table:  table,
	}
}

// Prefill seeds the session once from the employee-details response:
// earnings, PF, VPF, the employer NPS figure and the FBP list. Runs the
// aggregate rules afterwards so section80C reflects the seeded PF.
func (s *Session) Prefill(emp *domain.Employee) {
	if emp == nil {
		return
	}
	s.employee = emp
	s.inputs.Fields[domain.FieldTotalEarnings] = emp.TotalEarnings
	s.inputs.Fields[domain.FieldPF] = emp.PF
	s.inputs.Fields[domain.FieldVPF] = emp.VPF
	s.inputs.Fields[domain.FieldEmployerNPS] = emp.NPSMaxLimit
	s.inputs.FBP = append([]domain.FBPItem(nil), emp.FBP...)
	calculation.Derive(s.inputs)
}

// SetField stores a candidate edit of f after clamping it against the
// statutory table, then re-derives both aggregates. Writing to a derived
// field is a programming error.
func (s *Session) SetField(f domain.Field, v decimal.Decimal) error {
	if f.Derived() {
		return fmt.Errorf("field %s is derived and cannot be set directly", f)
	}
	s.inputs.Fields[f] = s.table.Clamp(f, v)
	calculation.Derive(s.inputs)
	return nil
}

// SetFieldMax sets f straight to its ceiling. Fields without a ceiling
// are left unchanged.
func (s *Session) SetFieldMax(f domain.Field) {
	if c, ok := s.table.Ceiling(f); ok {
		s.inputs.Fields[f] = c
		calculation.Derive(s.inputs)
	}
}

// SetFBPAmount stores a candidate amount for the FBP item at index i.
// FBP amounts are not clamped at write time; their ceiling applies at
// aggregation.
func (s *Session) SetFBPAmount(i int, v decimal.Decimal) error {
	if i < 0 || i >= len(s.inputs.FBP) {
		return fmt.Errorf("fbp index %d out of range", i)
	}
	if v.IsNegative() {
		v = decimal.Zero
	}
	s.inputs.FBP[i].Amount = v
	return nil
}

// SetFBPMax sets the item's amount to its ceiling, the "Max" affordance.
// Items without a ceiling are left unchanged.
func (s *Session) SetFBPMax(i int) error {
	if i < 0 || i >= len(s.inputs.FBP) {
		return fmt.Errorf("fbp index %d out of range", i)
	}
	if it := s.inputs.FBP[i]; it.Bounded() {
		s.inputs.FBP[i].Amount = it.MaxLimit
	}
	return nil
}

// Clear is the hard reset: every scalar field back to zero, FBP list
// emptied, result dropped. The caller is responsible for disarming the
// scheduler so the reset does not immediately re-trigger a calculation.
func (s *Session) Clear() {
	s.inputs = domain.NewInputs()
	s.result = nil
}

// Inputs exposes the current input state for payload building and
// rendering.
func (s *Session) Inputs() *domain.Inputs { return s.inputs }

// Employee returns the seeded employee record, nil before prefill or
// when the details fetch failed.
func (s *Session) Employee() *domain.Employee { return s.employee }

// Table returns the ceiling table governing this session.
func (s *Session) Table() *limits.Table { return s.table }

// SetResult stores the latest successful computation, replacing any
// previous one.
func (s *Session) SetResult(r *domain.TaxResult) { s.result = r }

// Result returns the last stored computation, nil if none.
func (s *Session) Result() *domain.TaxResult { return s.result }

// TotalFBP is the on-screen FBP summary figure.
func (s *Session) TotalFBP() decimal.Decimal {
	return calculation.TotalFBP(s.inputs.FBP)
}
