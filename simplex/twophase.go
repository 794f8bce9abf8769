package simplex

import (
	"fmt"

	"q.log/twophase/model"
)

// TwoPhase solves m from scratch: Phase I finds a feasible basis or proves
// infeasibility, then Phase II optimizes the real objective from that basis.
// Redundant constraint rows found by Phase I are dropped for Phase II and
// get a zero entry in the optimality certificate.
func TwoPhase(m *model.Model, opts ...Option) (Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	p1, err := PhaseI(m.A, m.B, opts...)
	if err != nil {
		return nil, err
	}
	if !p1.Feasible {
		return &Infeasible{Certificate: p1.Certificate}, nil
	}

	reduced := m
	if len(p1.Redundant) > 0 {
		o.logger.Debug("dropping redundant constraints", "rows", p1.Redundant)
		reduced, err = m.RemoveRows(p1.Redundant...)
		if err != nil {
			return nil, err
		}
	}

	res, err := Simplex(reduced, p1.Basis, opts...)
	if err != nil {
		return nil, fmt.Errorf("phase II: %w", err)
	}

	if opt, ok := res.(*Optimal); ok && len(p1.Redundant) > 0 {
		opt.Certificate = expandCertificate(opt.Certificate, p1.Redundant, m.NumRows())
	}
	return res, nil
}

// expandCertificate places y over the kept rows of an m-row system, with
// zeros at the dropped rows.
func expandCertificate(y []float64, dropped []int, numRows int) []float64 {
	skip := make(map[int]bool, len(dropped))
	for _, r := range dropped {
		skip[r] = true
	}

	out := make([]float64, numRows)
	k := 0
	for r := range numRows {
		if skip[r] {
			continue
		}
		out[r] = y[k]
		k++
	}
	return out
}
