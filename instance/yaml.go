package instance

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"q.log/twophase/model"
)

// yamlProblem is the YAML problem layout. Basis indices are 0-based columns.
type yamlProblem struct {
	Objective   []float64   `yaml:"objective"`
	Constant    float64     `yaml:"constant"`
	Constraints [][]float64 `yaml:"constraints"`
	RHS         []float64   `yaml:"rhs"`
	Basis       []int       `yaml:"basis"`
	Names       []string    `yaml:"names"`
}

// ReadYAML decodes a problem document. Unknown keys are rejected.
func ReadYAML(r io.Reader) (*Problem, error) {
	var doc yamlProblem
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidProblem, err)
	}

	if len(doc.Objective) == 0 {
		return nil, fmt.Errorf("%w: objective is required", ErrInvalidProblem)
	}
	if len(doc.Constraints) != len(doc.RHS) {
		return nil, fmt.Errorf("%w: %d constraints with %d rhs values", ErrInvalidProblem, len(doc.Constraints), len(doc.RHS))
	}

	m, err := model.FromSlices(doc.Objective, doc.Constant, doc.Constraints, doc.RHS)
	if err != nil {
		return nil, err
	}
	if doc.Names != nil {
		m.Names = doc.Names
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	return &Problem{Model: m, Basis: doc.Basis}, nil
}
