package instance

import (
	"fmt"
	"io"

	"q.log/twophase/matrix"
	"q.log/twophase/model"
)

// ReadStream reads the whitespace separated layout
//
//	rows cols  A entries
//	rows 1     b entries
//	1 cols     c entries
//	z
func ReadStream(r io.Reader) (*Problem, error) {
	rd := matrix.NewReader(r)

	a, err := rd.SizedMatrix()
	if err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}
	b, err := rd.SizedMatrix()
	if err != nil {
		return nil, fmt.Errorf("rhs: %w", err)
	}
	c, err := rd.SizedMatrix()
	if err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	z, err := rd.Float()
	if err != nil {
		return nil, fmt.Errorf("objective constant: %w", err)
	}

	m := &model.Model{C: c, Z: z, A: a, B: b}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Problem{Model: m}, nil
}
