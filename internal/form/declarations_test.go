package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payrollhq/taxplanner/internal/domain"
	"github.com/payrollhq/taxplanner/internal/limits"
)

func writeDeclarations(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "declarations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestApplyDeclarations(t *testing.T) {
	s := NewSession(limits.FY2026())
	s.Prefill(&domain.Employee{
		TotalEarnings: d(1200000),
		PF:            d(21600),
		IsFySwitch:    1,
		FBP: []domain.FBPItem{
			{PayHeadID: 11, PayHeadName: "Fuel", Amount: d(0), MaxLimit: d(21600)},
		},
	})

	path := writeDeclarations(t, `
hraPaid: 180000
others80C: 200000
housingLoan: 350000
section80D: 40000
fbp:
  11: 30000
`)
	require.NoError(t, s.ApplyDeclarations(path))

	in := s.Inputs()
	assert.True(t, in.Get(domain.FieldHRAPaid).Equal(d(180000)))
	// Ceilings hold exactly as they do for interactive edits.
	assert.True(t, in.Get(domain.FieldHousingLoan).Equal(d(200000)))
	assert.True(t, in.Get(domain.FieldSection80D).Equal(d(40000)))
	assert.True(t, in.Get(domain.FieldSection80C).Equal(d(150000)))
	// FBP amounts store raw; the ceiling applies at aggregation.
	assert.True(t, in.FBP[0].Amount.Equal(d(30000)))
	assert.True(t, s.TotalFBP().Equal(d(21600)))
}

func TestApplyDeclarations_Errors(t *testing.T) {
	s := NewSession(limits.FY2026())

	tests := []struct {
		name string
		body string
	}{
		{"derived field", "section80C: 100000\n"},
		{"unknown field", "section80z: 100000\n"},
		{"unknown pay head", "fbp:\n  99: 1000\n"},
		{"bad yaml", "hraPaid: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.ApplyDeclarations(writeDeclarations(t, tt.body)))
		})
	}

	assert.Error(t, s.ApplyDeclarations(filepath.Join(t.TempDir(), "absent.yaml")))
}
