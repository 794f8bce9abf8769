package lpparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxLineBytes bounds a single program line.
const maxLineBytes = 1 << 20

// Tokenize splits src into tokens, always ending with a TokenEOF. Identifiers
// are NFC normalized so that composed and decomposed spellings name the same
// variable. A '#' starts a comment running to the end of the line.
func Tokenize(src io.Reader) ([]Token, error) {
	var tokens []Token

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		lineTokens, err := lexLine([]rune(scanner.Text()), line)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, lineTokens...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	return append(tokens, Token{Type: TokenEOF, Line: line}), nil
}

var symbols = map[rune]TokenType{
	';': TokenSemicolon,
	'=': TokenEqual,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenAsterisk,
	'/': TokenSlash,
	'(': TokenLParen,
	')': TokenRParen,
}

func lexLine(src []rune, line int) ([]Token, error) {
	var out []Token
	for i := 0; i < len(src); {
		r := src[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '#':
			return out, nil

		case hasPrefix(src[i:], "s.t."):
			out = append(out, Token{Type: TokenSubjectTo, Value: "s.t.", Line: line})
			i += 4

		case isIdentStart(r):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			word := norm.NFC.String(string(src[i:j]))
			tt, ok := keywords[word]
			if !ok {
				tt = TokenID
			}
			out = append(out, Token{Type: tt, Value: word, Line: line})
			i = j

		case isDigit(r) || (r == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := i
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			if j < len(src) && src[j] == '.' {
				j++
				for j < len(src) && isDigit(src[j]) {
					j++
				}
			}
			text := string(src[i:j])
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: bad number %q", ErrToken, line, text)
			}
			out = append(out, Token{Type: TokenNumber, Value: text, Line: line})
			i = j

		case r == '<' || r == '>':
			if i+1 >= len(src) || src[i+1] != '=' {
				return nil, fmt.Errorf("%w: line %d: %q must be followed by '='", ErrToken, line, r)
			}
			tt := TokenLessEqual
			if r == '>' {
				tt = TokenGreaterEqual
			}
			out = append(out, Token{Type: tt, Value: string(tt), Line: line})
			i += 2

		default:
			tt, ok := symbols[r]
			if !ok {
				return nil, fmt.Errorf("%w: line %d: unexpected character %q", ErrToken, line, r)
			}
			out = append(out, Token{Type: tt, Value: string(r), Line: line})
			i++
		}
	}
	return out, nil
}

func hasPrefix(src []rune, prefix string) bool {
	i := 0
	for _, r := range prefix {
		if i >= len(src) || src[i] != r {
			return false
		}
		i++
	}
	return true
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}
