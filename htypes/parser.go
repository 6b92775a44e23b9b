package htypes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// primitiveKeywords maps upper-cased keywords to the plain primitive they name.
// Both the category names (LONG) and the wire names (BIGINT) are accepted.
var primitiveKeywords = func() map[string]PrimitiveCategory {
	out := make(map[string]PrimitiveCategory)
	for _, c := range PrimitiveCategories() {
		if c.IsParameterized() {
			continue
		}
		out[c.String()] = c
		out[strings.ToUpper(string(SerdeName(c)))] = c
	}
	return out
}()

// The trailing words of "timestamp with local time zone".
var localTimeZoneSuffix = []string{"WITH", "LOCAL", "TIME", "ZONE"}

type ParserOption func(parser *Parser)

// WithMaxDepth limits how deeply compound types may nest. Zero means no limit.
func WithMaxDepth(depth int) ParserOption {
	return func(parser *Parser) {
		parser.maxDepth = depth
	}
}

// WithMaxLength limits the length of the type string in bytes. Zero means no limit.
func WithMaxLength(length int) ParserOption {
	return func(parser *Parser) {
		parser.maxLength = length
	}
}

// Parser is a recursive descent parser over the tokens of a single type string.
// A Parser is not safe for concurrent use, but separate Parsers never share state.
type Parser struct {
	input  string
	tokens []Token
	index  int

	depth     int
	maxDepth  int
	maxLength int
}

func NewParser(input string, opts ...ParserOption) *Parser {
	parser := &Parser{
		input:  input,
		tokens: Tokenize(input),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

func (p *Parser) Tokens() []Token {
	return p.tokens
}

// Index is the position of the next unread token.
func (p *Parser) Index() int {
	return p.index
}

func (p *Parser) AtEnd() bool {
	return p.index >= len(p.tokens)
}

// ParseType parses one complete type starting at the current token.
// Tokens following the type are left unread. On failure the cursor is left where it was.
func (p *Parser) ParseType() (Type, error) {
	if p.maxLength > 0 && len(p.input) > p.maxLength {
		err := newValidationError("Type string length %d exceeds the limit of %d", len(p.input), p.maxLength)
		err.Input = p.input
		return Type{}, err
	}
	start := p.index
	out, err := p.parseType()
	if err != nil {
		p.index = start
		return Type{}, err
	}
	return out, nil
}

// Parse parses a type string which must consist of exactly one type.
func Parse(input string, opts ...ParserOption) (Type, error) {
	parser := NewParser(input, opts...)
	out, err := parser.ParseType()
	if err != nil {
		return Type{}, err
	}
	if !parser.AtEnd() {
		return Type{}, parser.unexpected("end of type", parser.tokens[parser.index])
	}
	return out, nil
}

func (p *Parser) parseType() (Type, error) {
	p.depth++
	defer func() { p.depth-- }()

	keywordToken, err := p.expectWord("type")
	if err != nil {
		return Type{}, err
	}
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return Type{}, p.validation(keywordToken, newValidationError("Type nesting depth exceeds the limit of %d", p.maxDepth))
	}

	keyword := strings.ToUpper(keywordToken.Text)
	switch keyword {
	case "DECIMAL":
		return p.parseDecimal(keywordToken)
	case "CHAR":
		return p.parseCharacter(keywordToken, TypeIDChar)
	case "VARCHAR":
		return p.parseCharacter(keywordToken, TypeIDVarchar)
	case "ARRAY":
		return p.parseList()
	case "MAP":
		return p.parseMap()
	case "STRUCT":
		return p.parseStruct()
	case "UNIONTYPE":
		return p.parseUnion()
	}

	category, ok := primitiveKeywords[keyword]
	if !ok {
		return Type{}, p.unexpected("type", keywordToken)
	}
	if category == PrimitiveTimestamp && p.consumeLocalTimeZoneSuffix() {
		category = PrimitiveTimestampLocalTZ
	}
	return NewPrimitive(category), nil
}

func (p *Parser) consumeLocalTimeZoneSuffix() bool {
	if p.index+len(localTimeZoneSuffix) > len(p.tokens) {
		return false
	}
	for i, word := range localTimeZoneSuffix {
		tok := p.tokens[p.index+i]
		if !tok.IsWord || strings.ToUpper(tok.Text) != word {
			return false
		}
	}
	p.index += len(localTimeZoneSuffix)
	return true
}

func (p *Parser) parseDecimal(keywordToken Token) (Type, error) {
	params, ok, err := p.parseParams()
	if err != nil {
		return Type{}, err
	}
	precision, scale := DefaultDecimalPrecision, DefaultDecimalScale
	if ok {
		switch len(params) {
		case 1:
			precision = params[0]
		case 2:
			precision, scale = params[0], params[1]
		default:
			return Type{}, p.validation(keywordToken, newValidationError(
				"Error: decimal type takes at most two parameters, but instead %d parameters are found.", len(params),
			))
		}
	}
	out, err := NewDecimal(precision, scale)
	if err != nil {
		return Type{}, p.validation(keywordToken, err)
	}
	return out, nil
}

func (p *Parser) parseCharacter(keywordToken Token, id TypeID) (Type, error) {
	params, ok, err := p.parseParams()
	if err != nil {
		return Type{}, err
	}
	if !ok {
		return Type{}, p.validation(keywordToken, newValidationError("char/varchar type must have a length specified"))
	}
	if len(params) != 1 {
		return Type{}, p.validation(keywordToken, newValidationError(
			"Error: %s type takes only one parameter, but instead %d parameters are found.", id, len(params),
		))
	}

	var out Type
	if id == TypeIDChar {
		out, err = NewChar(params[0])
	} else {
		out, err = NewVarchar(params[0])
	}
	if err != nil {
		return Type{}, p.validation(keywordToken, err)
	}
	return out, nil
}

// parseParams reads an optional parenthesised list of integers.
// ok is false if there is no list at all.
func (p *Parser) parseParams() (params []int, ok bool, err error) {
	if !p.peekText("(") {
		return nil, false, nil
	}
	p.index++

	for {
		tok, err := p.expectWord("integer")
		if err != nil {
			return nil, false, err
		}
		param, convErr := strconv.Atoi(tok.Text)
		if convErr != nil {
			// Too many digits is still an integer, the bound checks reject it.
			if !errors.Is(convErr, strconv.ErrRange) || !isDigits(tok.Text) {
				return nil, false, p.unexpected("integer", tok)
			}
			param = math.MaxInt
		}
		params = append(params, param)

		tok, err = p.expect("',' or ')'", ",", ")")
		if err != nil {
			return nil, false, err
		}
		if tok.Text == ")" {
			return params, true, nil
		}
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (p *Parser) parseList() (Type, error) {
	if _, err := p.expect("'<'", "<"); err != nil {
		return Type{}, err
	}
	element, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if _, err := p.expect("'>'", ">"); err != nil {
		return Type{}, err
	}
	return NewList(element), nil
}

func (p *Parser) parseMap() (Type, error) {
	if _, err := p.expect("'<'", "<"); err != nil {
		return Type{}, err
	}
	key, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if _, err := p.expect("','", ","); err != nil {
		return Type{}, err
	}
	value, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if _, err := p.expect("'>'", ">"); err != nil {
		return Type{}, err
	}
	return NewMap(key, value), nil
}

func (p *Parser) parseStruct() (Type, error) {
	if _, err := p.expect("'<'", "<"); err != nil {
		return Type{}, err
	}

	var fields []StructField
	for {
		name, err := p.expectWord("field name")
		if err != nil {
			return Type{}, err
		}
		if _, err := p.expect("':'", ":"); err != nil {
			return Type{}, err
		}
		fieldType, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		fields = append(fields, StructField{Name: name.Text, Type: fieldType})

		tok, err := p.expect("',' or '>'", ",", ">")
		if err != nil {
			return Type{}, err
		}
		if tok.Text == ">" {
			return NewStruct(fields...), nil
		}
	}
}

func (p *Parser) parseUnion() (Type, error) {
	if _, err := p.expect("'<'", "<"); err != nil {
		return Type{}, err
	}

	var alternatives []Type
	for {
		alternative, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		alternatives = append(alternatives, alternative)

		tok, err := p.expect("',' or '>'", ",", ">")
		if err != nil {
			return Type{}, err
		}
		if tok.Text == ">" {
			return NewUnion(alternatives...), nil
		}
	}
}

func (p *Parser) peekText(text string) bool {
	return !p.AtEnd() && !p.tokens[p.index].IsWord && p.tokens[p.index].Text == text
}

// expect consumes the next token, which must be punctuation with one of the given texts.
func (p *Parser) expect(item string, texts ...string) (Token, error) {
	if p.AtEnd() {
		return Token{}, p.unexpectedEnd(item)
	}
	tok := p.tokens[p.index]
	if !tok.IsWord {
		for _, text := range texts {
			if tok.Text == text {
				p.index++
				return tok, nil
			}
		}
	}
	return Token{}, p.unexpected(item, tok)
}

func (p *Parser) expectWord(item string) (Token, error) {
	if p.AtEnd() {
		return Token{}, p.unexpectedEnd(item)
	}
	tok := p.tokens[p.index]
	if !tok.IsWord {
		return Token{}, p.unexpected(item, tok)
	}
	p.index++
	return tok, nil
}

func (p *Parser) unexpected(item string, tok Token) *ParseError {
	return &ParseError{
		Kind:     ErrorKindGrammar,
		Input:    p.input,
		Position: tok.Position,
		Message:  fmt.Sprintf("Error: %s expected at the position %d of '%s' but '%s' is found.", item, tok.Position, p.input, tok.Text),
	}
}

func (p *Parser) unexpectedEnd(item string) *ParseError {
	return &ParseError{
		Kind:     ErrorKindGrammar,
		Input:    p.input,
		Position: -1,
		Message:  fmt.Sprintf("Error: %s expected at the end of '%s'", item, p.input),
	}
}

// validation attaches the input and the position of the type keyword to a validation error.
func (p *Parser) validation(keywordToken Token, err error) *ParseError {
	parseErr, ok := err.(*ParseError)
	if !ok {
		parseErr = newValidationError("%s", err.Error())
	}
	out := *parseErr
	out.Input = p.input
	out.Position = keywordToken.Position
	return &out
}
