package lpparse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/twophase/lpparse"
)

func types(tokens []lpparse.Token) []lpparse.TokenType {
	out := make([]lpparse.TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func TestTokenize(t *testing.T) {
	tokens, err := lpparse.Tokenize(strings.NewReader("let x1;\nmax 3*x1 - .5/(x1) ; # comment\ns.t. x1 <= 4; x1>=2.25;lettuce=0;"))
	require.NoError(t, err)

	assert.Equal(t, []lpparse.TokenType{
		lpparse.TokenLet, lpparse.TokenID, lpparse.TokenSemicolon,
		lpparse.TokenMax, lpparse.TokenNumber, lpparse.TokenAsterisk, lpparse.TokenID,
		lpparse.TokenMinus, lpparse.TokenNumber, lpparse.TokenSlash,
		lpparse.TokenLParen, lpparse.TokenID, lpparse.TokenRParen, lpparse.TokenSemicolon,
		lpparse.TokenSubjectTo, lpparse.TokenID, lpparse.TokenLessEqual, lpparse.TokenNumber, lpparse.TokenSemicolon,
		lpparse.TokenID, lpparse.TokenGreaterEqual, lpparse.TokenNumber, lpparse.TokenSemicolon,
		lpparse.TokenID, lpparse.TokenEqual, lpparse.TokenNumber, lpparse.TokenSemicolon,
		lpparse.TokenEOF,
	}, types(tokens))

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[3].Line)
	assert.Equal(t, 3, tokens[14].Line)
	assert.Equal(t, ".5", tokens[8].Value)
	assert.Equal(t, "2.25", tokens[21].Value)
	assert.Equal(t, "lettuce", tokens[23].Value)
}

func TestTokenizeUnicodeIdentifiers(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	tokens, err := lpparse.Tokenize(strings.NewReader(composed + " " + decomposed + " λ_2"))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, composed, tokens[0].Value)
	assert.Equal(t, composed, tokens[1].Value)
	assert.Equal(t, "λ_2", tokens[2].Value)
}

func TestTokenizeErrors(t *testing.T) {
	for _, src := range []string{
		"let x;\nmax x < 3;",
		"max x ! 2;",
		"max x ^ 2;",
		"max x > y;",
	} {
		_, err := lpparse.Tokenize(strings.NewReader(src))
		assert.ErrorIs(t, err, lpparse.ErrToken, src)
	}

	_, err := lpparse.Tokenize(strings.NewReader("let x;\nmax x ! 2;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestTokenizeLongLine(t *testing.T) {
	const terms = 20000
	var sb strings.Builder
	sb.WriteString("max ")
	for i := range terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString("x")
	}
	sb.WriteString(";")
	require.Greater(t, sb.Len(), 64*1024)

	tokens, err := lpparse.Tokenize(strings.NewReader(sb.String()))
	require.NoError(t, err)
	// max, terms identifiers, terms-1 plus signs, semicolon, EOF
	assert.Len(t, tokens, 2*terms+2)

	_, err = lpparse.Tokenize(strings.NewReader(strings.Repeat("x", 2<<20)))
	require.Error(t, err)
}
