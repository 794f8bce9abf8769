package model

import (
	"fmt"
	"math"

	"q.log/twophase/matrix"
)

// Sense is the comparison of a General constraint row.
type Sense int

const (
	Equal Sense = iota
	LessEqual
	GreaterEqual
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	default:
		return "="
	}
}

// Variable is a named decision variable with bounds; use math.Inf for a
// missing bound.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
}

type Constraint struct {
	Coef  []float64
	Sense Sense
	RHS   float64
}

// General is a linear program with bounded variables, mixed constraint
// senses and either objective direction. Standardize turns it into a Model.
type General struct {
	Maximize    bool
	Objective   []float64
	Constant    float64
	Variables   []Variable
	Constraints []Constraint
}

// Recovery maps solutions of a standardized Model back onto the variables of
// the General program it came from.
type Recovery struct {
	names    []string
	pos      []int
	neg      []int
	width    int // columns holding variables
	cols     int // all model columns, slacks included
	maximize bool
}

// Names returns the General variable names in declaration order.
func (r *Recovery) Names() []string {
	return r.names
}

// Recover maps a Model solution x to General variable values. A variable
// split into x⁺ - x⁻ is reassembled.
func (r *Recovery) Recover(x []float64) ([]float64, error) {
	if len(x) != r.cols {
		return nil, fmt.Errorf("solution has %d values, model has %d columns: %w", len(x), r.cols, matrix.ErrDimensionMismatch)
	}

	out := make([]float64, len(r.pos))
	for j, p := range r.pos {
		out[j] = x[p]
		if r.neg[j] >= 0 {
			out[j] -= x[r.neg[j]]
		}
	}
	return out, nil
}

// Value converts a Model objective value to the General objective, undoing
// the negation applied to minimization programs.
func (r *Recovery) Value(v float64) float64 {
	if r.maximize {
		return v
	}
	return 0 - v
}

// Standardize converts g to standard equality form. Columns come first in
// variable order, a variable with a negative lower bound taking two columns
// (name+, name-); then one slack per inequality row. Finite bounds other than
// a zero lower bound become extra rows after the constraints. A minimization
// objective and its constant are negated.
func (g *General) Standardize() (*Model, *Recovery, error) {
	n := len(g.Variables)
	if len(g.Objective) != n {
		return nil, nil, fmt.Errorf("objective has %d coefficients for %d variables: %w", len(g.Objective), n, matrix.ErrDimensionMismatch)
	}
	for i, c := range g.Constraints {
		if len(c.Coef) != n {
			return nil, nil, fmt.Errorf("constraint %d has %d coefficients for %d variables: %w", i+1, len(c.Coef), n, matrix.ErrDimensionMismatch)
		}
	}

	rec := &Recovery{
		names:    make([]string, n),
		pos:      make([]int, n),
		neg:      make([]int, n),
		maximize: g.Maximize,
	}
	var names []string
	for j, v := range g.Variables {
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || v.Lower > v.Upper || math.IsInf(v.Lower, 1) || math.IsInf(v.Upper, -1) {
			return nil, nil, fmt.Errorf("%w: variable %q has bounds [%g, %g]", ErrInvalidModel, v.Name, v.Lower, v.Upper)
		}
		rec.names[j] = v.Name
		rec.pos[j] = len(names)
		rec.neg[j] = -1
		if v.Lower < 0 {
			names = append(names, v.Name+"+")
			rec.neg[j] = len(names)
			names = append(names, v.Name+"-")
			continue
		}
		names = append(names, v.Name)
	}
	rec.width = len(names)

	expand := func(coef []float64) []float64 {
		out := make([]float64, rec.width)
		for j, v := range coef {
			out[rec.pos[j]] += v
			if rec.neg[j] >= 0 {
				out[rec.neg[j]] -= v
			}
		}
		return out
	}

	rows := make([]Constraint, 0, len(g.Constraints))
	for _, c := range g.Constraints {
		rows = append(rows, Constraint{Coef: expand(c.Coef), Sense: c.Sense, RHS: c.RHS})
	}
	for j, v := range g.Variables {
		unit := make([]float64, n)
		unit[j] = 1
		if v.Lower != 0 && !math.IsInf(v.Lower, -1) {
			rows = append(rows, Constraint{Coef: expand(unit), Sense: GreaterEqual, RHS: v.Lower})
		}
		if !math.IsInf(v.Upper, 1) {
			rows = append(rows, Constraint{Coef: expand(unit), Sense: LessEqual, RHS: v.Upper})
		}
	}

	m, err := NewModel(0, rec.width)
	if err != nil {
		return nil, nil, err
	}
	m.Names = names

	sign := 1.0
	if !g.Maximize {
		sign = -1
	}
	for j, v := range expand(g.Objective) {
		if v != 0 {
			_ = m.C.Set(0, j, sign*v)
		}
	}
	if g.Constant != 0 {
		m.Z = sign * g.Constant
	}

	for _, r := range rows {
		if err := m.AddRow(r.Coef, r.RHS); err != nil {
			return nil, nil, err
		}
	}

	slack := 0
	for i, r := range rows {
		if r.Sense == Equal {
			continue
		}
		col := make([]float64, len(rows))
		col[i] = 1
		if r.Sense == GreaterEqual {
			col[i] = -1
		}
		slack++
		if err := m.AddCol(col, 0, fmt.Sprintf("s%d", slack)); err != nil {
			return nil, nil, err
		}
	}
	rec.cols = m.NumCols()

	return m, rec, nil
}
