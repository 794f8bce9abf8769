// Package lpparse reads linear programs written in a small modelling
// language:
//
//	let x1; let x2 >= 0;
//	max 3*x1 + 2*(x2 - 1) + 4;
//	s.t. x1 + x2 <= 4; x1 - x2 >= -2; x1 = 1 + x2/2;
//
// Variables are free unless declared with a bound. Both sides of a
// constraint may be any linear expression.
package lpparse

import (
	"fmt"
	"io"
	"math"
	"strings"

	"q.log/twophase/model"
)

// Program is a parsed program. After Parse it also holds its standard
// equality form and the mapping back to the declared variables.
type Program struct {
	Decls       []*Decl
	Objective   *Objective
	Constraints []*Constraint

	general  *model.General
	model    *model.Model
	recovery *model.Recovery
}

// Parse tokenizes, parses, checks and standardizes the program read from src.
func Parse(src io.Reader) (*Program, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	prog, err := NewParser(tokens).ParseProgram()
	if err != nil {
		return nil, err
	}
	if err := prog.compile(); err != nil {
		return nil, err
	}
	return prog, nil
}

func ParseString(src string) (*Program, error) {
	return Parse(strings.NewReader(src))
}

func (p *Program) compile() error {
	vars, err := Check(p)
	if err != nil {
		return err
	}

	g := &model.General{Maximize: p.Objective.Maximize}
	for _, d := range p.Decls {
		v := model.Variable{Name: d.Name, Lower: math.Inf(-1), Upper: math.Inf(1)}
		switch d.Bound {
		case TokenGreaterEqual:
			v.Lower = d.Value
		case TokenLessEqual:
			v.Upper = d.Value
		}
		g.Variables = append(g.Variables, v)
	}

	obj, err := Simplify(p.Objective.Expr, vars)
	if err != nil {
		return err
	}
	g.Objective = obj.Coef
	g.Constant = obj.Const

	for _, c := range p.Constraints {
		left, err := Simplify(c.Left, vars)
		if err != nil {
			return err
		}
		right, err := Simplify(c.Right, vars)
		if err != nil {
			return err
		}

		// left - right op 0
		lhs := left.add(right, -1)
		sense := model.Equal
		switch c.Op {
		case TokenLessEqual:
			sense = model.LessEqual
		case TokenGreaterEqual:
			sense = model.GreaterEqual
		}
		g.Constraints = append(g.Constraints, model.Constraint{Coef: lhs.Coef, Sense: sense, RHS: 0 - lhs.Const})
	}

	m, rec, err := g.Standardize()
	if err != nil {
		return fmt.Errorf("standardize: %w", err)
	}
	p.general, p.model, p.recovery = g, m, rec
	return nil
}

// General returns the program with folded expressions, before slack and
// free variable columns are added.
func (p *Program) General() *model.General {
	return p.general
}

// Model returns the standard equality form. Callers must not modify it.
func (p *Program) Model() *model.Model {
	return p.model
}

func (p *Program) Recovery() *model.Recovery {
	return p.recovery
}

// Names returns the declared variable names in order.
func (p *Program) Names() []string {
	return p.recovery.Names()
}

// Recover maps a solution of Model back to the declared variables.
func (p *Program) Recover(x []float64) ([]float64, error) {
	return p.recovery.Recover(x)
}

// Value maps an objective value of Model to the program's own objective.
func (p *Program) Value(v float64) float64 {
	return p.recovery.Value(v)
}

func (p *Program) String() string {
	var sb strings.Builder
	writeProgram(&sb, p.Decls, p.Objective, p.Constraints)
	return sb.String()
}
