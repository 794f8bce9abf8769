package lpparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Decl declares a variable, free unless a bound is given.
type Decl struct {
	Name string
	Line int

	// Bound is TokenGreaterEqual, TokenLessEqual or empty.
	Bound TokenType
	Value float64
}

type Objective struct {
	Maximize bool
	Expr     Expr
	Line     int
}

type Constraint struct {
	Left  Expr
	Op    TokenType
	Right Expr
	Line  int
}

// Expr is a node of an arithmetic expression tree.
type Expr interface {
	fmt.Stringer
	exprNode()
}

type Number struct {
	Value float64
	Line  int
}

type Ident struct {
	Name string
	Line int
}

type Unary struct {
	Op   TokenType
	X    Expr
	Line int
}

type Binary struct {
	Op    TokenType
	Left  Expr
	Right Expr
	Line  int
}

func (*Number) exprNode() {}
func (*Ident) exprNode()  {}
func (*Unary) exprNode()  {}
func (*Binary) exprNode() {}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (v *Ident) String() string {
	return v.Name
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.X)
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (d *Decl) String() string {
	if d.Bound == "" {
		return fmt.Sprintf("let %s;", d.Name)
	}
	return fmt.Sprintf("let %s %s %s;", d.Name, d.Bound, strconv.FormatFloat(d.Value, 'g', -1, 64))
}

func (o *Objective) String() string {
	sense := "min"
	if o.Maximize {
		sense = "max"
	}
	return fmt.Sprintf("%s %s;", sense, o.Expr)
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s %s %s;", c.Left, c.Op, c.Right)
}

func writeProgram(sb *strings.Builder, decls []*Decl, obj *Objective, cons []*Constraint) {
	for _, d := range decls {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(obj.String())
	sb.WriteString("\ns.t.\n")
	for _, c := range cons {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
}
