// Package limits holds the statutory ceiling table applied to form
// inputs and the clamp applied at write time. The table is versioned by
// assessment data year; FY 2025-26 values ship as the in-code default
// and can be overridden from a YAML file when the rules change.
package limits

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/payrollhq/taxplanner/internal/domain"
)

// Section80CCap is the ceiling on the derived Section 80C aggregate
// (pf + vpf + others), distinct from the per-field ceilings below.
var Section80CCap = decimal.NewFromInt(150000)

// Table maps each input field to its statutory ceiling. Fields absent
// from the map are unbounded.
type Table struct {
	DataYear string
	ceilings map[domain.Field]decimal.Decimal
}

// FY2026 returns the canonical ceiling table for FY 2025-26.
//
// 80D is capped at 75,000 and 80DD/80U at 125,000; drifted screens that
// carried 1,00,000 / 2,00,000 here predate the FY25-26 rule set.
func FY2026() *Table {
	return &Table{
		DataYear: "2025-2026",
		ceilings: map[domain.Field]decimal.Decimal{
			domain.FieldHousingLoan:    decimal.NewFromInt(200000),
			domain.FieldSection80D:     decimal.NewFromInt(75000),
			domain.FieldSection80DD:    decimal.NewFromInt(125000),
			domain.FieldSection80U:     decimal.NewFromInt(125000),
			domain.FieldSection80DDB:   decimal.NewFromInt(140000),
			domain.FieldSection80EEA:   decimal.NewFromInt(150000),
			domain.FieldSection80EEB:   decimal.NewFromInt(150000),
			domain.FieldSection80CCD1B: decimal.NewFromInt(50000),
			// 80E (education loan interest) and the employer NPS figure are
			// deliberately absent: both are unbounded at entry time.
		},
	}
}

// Ceiling returns the ceiling for f and whether one exists.
func (t *Table) Ceiling(f domain.Field) (decimal.Decimal, bool) {
	c, ok := t.ceilings[f]
	return c, ok
}

// Clamp returns the value to store for a candidate edit of f: the
// candidate bounded above by the field's ceiling, if any, and below by
// zero. The zero floor is stricter than the historical behaviour, which
// never rejected negatives.
func (t *Table) Clamp(f domain.Field, v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if c, ok := t.ceilings[f]; ok && v.GreaterThan(c) {
		return c
	}
	return v
}

type tableFile struct {
	DataYear string            `yaml:"data_year"`
	Ceilings map[string]string `yaml:"ceilings"`
}

// LoadFromFile reads a ceiling table override. The file replaces the
// table wholesale; fields omitted from it become unbounded, so override
// files are expected to be complete.
func LoadFromFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if tf.DataYear == "" {
		return nil, fmt.Errorf("statutory table %s: data_year is required", filename)
	}

	t := &Table{DataYear: tf.DataYear, ceilings: make(map[domain.Field]decimal.Decimal, len(tf.Ceilings))}
	for field, raw := range tf.Ceilings {
		c, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("statutory table %s: ceiling for %s: %w", filename, field, err)
		}
		if c.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("statutory table %s: ceiling for %s must be positive", filename, field)
		}
		t.ceilings[domain.Field(field)] = c
	}
	return t, nil
}
