package htypes

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var ErrEmptyToken = errors.New("token text cannot be empty")

// Token is a single word or punctuation character of a type string.
type Token struct {
	// Position is the byte offset of the token's first character.
	Position int
	Text     string
	// IsWord is true for identifier/number runs and false for punctuation.
	IsWord bool
}

func NewToken(position int, text string, isWord bool) (Token, error) {
	if text == "" {
		return Token{}, errors.Wrapf(ErrEmptyToken, "at position %d", position)
	}
	return Token{
		Position: position,
		Text:     text,
		IsWord:   isWord,
	}, nil
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%s", t.Position, t.Text)
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isPunctuation(r rune) bool {
	switch r {
	case '<', '>', '(', ')', ',', ':':
		return true
	}
	return false
}

// Tokenize splits a type string into word and punctuation tokens.
// Characters which are neither are separators and never produce a token.
func Tokenize(input string) []Token {
	var tokens []Token
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		switch {
		case isWordChar(r):
			start := i
			for i < len(input) {
				r, size = utf8.DecodeRuneInString(input[i:])
				if !isWordChar(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{Position: start, Text: input[start:i], IsWord: true})
		case isPunctuation(r):
			tokens = append(tokens, Token{Position: i, Text: input[i : i+size], IsWord: false})
			i += size
		default:
			i += size
		}
	}
	return tokens
}
