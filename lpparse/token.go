package lpparse

import "fmt"

// TokenType names a lexical class; the value doubles as its display form.
type TokenType string

const (
	TokenLet          TokenType = "let"
	TokenMax          TokenType = "max"
	TokenMin          TokenType = "min"
	TokenSubjectTo    TokenType = "s.t."
	TokenID           TokenType = "identifier"
	TokenNumber       TokenType = "number"
	TokenSemicolon    TokenType = ";"
	TokenEqual        TokenType = "="
	TokenLessEqual    TokenType = "<="
	TokenGreaterEqual TokenType = ">="
	TokenPlus         TokenType = "+"
	TokenMinus        TokenType = "-"
	TokenAsterisk     TokenType = "*"
	TokenSlash        TokenType = "/"
	TokenLParen       TokenType = "("
	TokenRParen       TokenType = ")"
	TokenEOF          TokenType = "end of input"
)

var keywords = map[string]TokenType{
	"let": TokenLet,
	"max": TokenMax,
	"min": TokenMin,
}

type Token struct {
	Type  TokenType
	Value string
	Line  int
}

func (t Token) String() string {
	switch t.Type {
	case TokenID, TokenNumber:
		return fmt.Sprintf("%s %q", t.Type, t.Value)
	default:
		return fmt.Sprintf("%q", string(t.Type))
	}
}
