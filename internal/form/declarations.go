package form

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/payrollhq/taxplanner/internal/domain"
)

// declarationsFile maps form field names to declared amounts, with an
// optional FBP override keyed by pay head ID.
type declarationsFile struct {
	Fields map[string]float64 `yaml:",inline"`
	FBP    map[int]float64    `yaml:"fbp,omitempty"`
}

// ApplyDeclarations reads a YAML declarations file and applies each
// entry through the session's normal write path, so ceilings and
// aggregate rules hold exactly as they do for interactive edits.
func (s *Session) ApplyDeclarations(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read declarations file: %w", err)
	}

	var decl declarationsFile
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return fmt.Errorf("failed to parse declarations YAML: %w", err)
	}

	for name, amount := range decl.Fields {
		f := domain.Field(name)
		if f.Derived() {
			return fmt.Errorf("field %s is derived and cannot be declared", name)
		}
		if !knownField(f) {
			return fmt.Errorf("unknown field %q in declarations", name)
		}
		if err := s.SetField(f, decimal.NewFromFloat(amount)); err != nil {
			return err
		}
	}

	for payHeadID, amount := range decl.FBP {
		idx := -1
		for i, item := range s.inputs.FBP {
			if item.PayHeadID == payHeadID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown FBP pay head %d in declarations", payHeadID)
		}
		if err := s.SetFBPAmount(idx, decimal.NewFromFloat(amount)); err != nil {
			return err
		}
	}

	return nil
}

func knownField(f domain.Field) bool {
	for _, e := range domain.EditableFields {
		if e == f {
			return true
		}
	}
	return false
}
