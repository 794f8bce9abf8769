package lpparse

import "errors"

var (
	// ErrToken is returned by the lexer for characters outside the language.
	ErrToken = errors.New("lpparse: invalid token")

	// ErrSyntax is returned by the parser when the token stream does not
	// match the grammar.
	ErrSyntax = errors.New("lpparse: syntax error")

	// ErrNonlinear is returned for products of two variable terms and
	// division by a variable term.
	ErrNonlinear = errors.New("lpparse: nonlinear expression")

	ErrDivisionByZero = errors.New("lpparse: division by zero")
	ErrDuplicate      = errors.New("lpparse: duplicate variable")
	ErrUndeclared     = errors.New("lpparse: undeclared variable")
)
