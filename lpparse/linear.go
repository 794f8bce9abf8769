package lpparse

import (
	"fmt"
	"slices"
)

// Linear is the folded form Coef·x + Const of an expression, with Coef
// indexed by variable declaration order.
type Linear struct {
	Coef  []float64
	Const float64
}

// IsConst reports whether every coefficient is zero.
func (l Linear) IsConst() bool {
	for _, c := range l.Coef {
		if c != 0 {
			return false
		}
	}
	return true
}

func (l Linear) scale(f float64) Linear {
	out := Linear{Coef: slices.Clone(l.Coef), Const: l.Const * f}
	for i := range out.Coef {
		out.Coef[i] *= f
	}
	return out
}

func (l Linear) add(o Linear, f float64) Linear {
	out := Linear{Coef: slices.Clone(l.Coef), Const: l.Const + f*o.Const}
	for i := range out.Coef {
		out.Coef[i] += f * o.Coef[i]
	}
	return out
}

// Simplify folds e into a Linear over the variables in vars, which maps each
// name to its declaration index.
func Simplify(e Expr, vars map[string]int) (Linear, error) {
	zero := Linear{Coef: make([]float64, len(vars))}

	switch x := e.(type) {
	case *Number:
		zero.Const = x.Value
		return zero, nil

	case *Ident:
		idx, ok := vars[x.Name]
		if !ok {
			return Linear{}, fmt.Errorf("%w: line %d: %q", ErrUndeclared, x.Line, x.Name)
		}
		zero.Coef[idx] = 1
		return zero, nil

	case *Unary:
		inner, err := Simplify(x.X, vars)
		if err != nil {
			return Linear{}, err
		}
		if x.Op == TokenMinus {
			return inner.scale(-1), nil
		}
		return inner, nil

	case *Binary:
		left, err := Simplify(x.Left, vars)
		if err != nil {
			return Linear{}, err
		}
		right, err := Simplify(x.Right, vars)
		if err != nil {
			return Linear{}, err
		}

		switch x.Op {
		case TokenPlus:
			return left.add(right, 1), nil
		case TokenMinus:
			return left.add(right, -1), nil
		case TokenAsterisk:
			switch {
			case left.IsConst():
				return right.scale(left.Const), nil
			case right.IsConst():
				return left.scale(right.Const), nil
			}
			return Linear{}, fmt.Errorf("%w: line %d: product of variable terms %s", ErrNonlinear, x.Line, x)
		case TokenSlash:
			if !right.IsConst() {
				return Linear{}, fmt.Errorf("%w: line %d: division by variable term %s", ErrNonlinear, x.Line, x.Right)
			}
			if right.Const == 0 {
				return Linear{}, fmt.Errorf("%w: line %d: %s", ErrDivisionByZero, x.Line, x)
			}
			return left.scale(1 / right.Const), nil
		}
		return Linear{}, fmt.Errorf("%w: line %d: unknown operator %q", ErrSyntax, x.Line, string(x.Op))
	}

	return Linear{}, fmt.Errorf("%w: unknown expression %T", ErrSyntax, e)
}
