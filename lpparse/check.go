package lpparse

import "fmt"

// Check rejects duplicate declarations and uses of undeclared variables. It
// returns the declaration index of every variable.
func Check(p *Program) (map[string]int, error) {
	vars := make(map[string]int, len(p.Decls))
	for i, d := range p.Decls {
		if _, ok := vars[d.Name]; ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrDuplicate, d.Line, d.Name)
		}
		vars[d.Name] = i
	}

	if p.Objective == nil {
		return nil, fmt.Errorf("%w: missing objective", ErrSyntax)
	}
	if err := checkExpr(p.Objective.Expr, vars); err != nil {
		return nil, err
	}
	for _, c := range p.Constraints {
		if err := checkExpr(c.Left, vars); err != nil {
			return nil, err
		}
		if err := checkExpr(c.Right, vars); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

func checkExpr(e Expr, vars map[string]int) error {
	switch x := e.(type) {
	case *Ident:
		if _, ok := vars[x.Name]; !ok {
			return fmt.Errorf("%w: line %d: %q", ErrUndeclared, x.Line, x.Name)
		}
	case *Unary:
		return checkExpr(x.X, vars)
	case *Binary:
		if err := checkExpr(x.Left, vars); err != nil {
			return err
		}
		return checkExpr(x.Right, vars)
	}
	return nil
}
