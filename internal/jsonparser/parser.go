// Package jsonparser parses JSON text into a models.Value tree using a
// single forward cursor with one character of lookahead.
package jsonparser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/models"
)

// ParseString parses a complete JSON document from a string. Anything
// other than whitespace after the top-level value is an error.
func ParseString(input string) (models.Value, error) {
	p := &parser{input: []rune(input)}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.input) {
		return nil, &errors.ParseError{
			Kind:   errors.KindTrailingContent,
			Offset: p.pos,
			Found:  string(p.input[p.pos]),
		}
	}
	return value, nil
}

// Parse reads everything from r and parses it as a JSON document.
func Parse(r io.Reader) (models.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseFile parses a JSON document from a file path.
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseString(string(data))
}

type parser struct {
	input []rune
	pos   int
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) next() (rune, bool) {
	c, ok := p.peek()
	if ok {
		p.pos++
	}
	return c, ok
}

// skipWhitespace consumes ASCII whitespace between tokens.
func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errEOF() error {
	return errors.NewParseError(errors.KindUnexpectedEndOfInput, p.pos)
}

func (p *parser) errUnexpected(c rune) error {
	return &errors.ParseError{
		Kind:   errors.KindUnexpectedCharacter,
		Offset: p.pos,
		Found:  string(c),
	}
}

func (p *parser) parseValue() (models.Value, error) {
	p.skipWhitespace()
	c, ok := p.peek()
	if !ok {
		return nil, p.errEOF()
	}
	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return models.String(s), nil
	case c == 't':
		return p.parseLiteral("true", models.Bool(true))
	case c == 'f':
		return p.parseLiteral("false", models.Bool(false))
	case c == 'n':
		return p.parseLiteral("null", models.Null{})
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errUnexpected(c)
	}
}

func (p *parser) parseObject() (models.Value, error) {
	p.pos++ // consume '{'
	obj := models.NewObject()
	p.skipWhitespace()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipWhitespace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errEOF()
		}
		if c != '"' {
			return nil, p.errUnexpected(c)
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		c, ok = p.peek()
		if !ok {
			return nil, p.errEOF()
		}
		if c != ':' {
			return nil, p.errUnexpected(c)
		}
		p.pos++
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		// Duplicate keys: last occurrence wins.
		obj.Set(key, value)

		p.skipWhitespace()
		c, ok = p.peek()
		if !ok {
			return nil, p.errEOF()
		}
		switch c {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, p.errUnexpected(c)
		}
	}
}

func (p *parser) parseArray() (models.Value, error) {
	p.pos++ // consume '['
	arr := models.Array{}
	p.skipWhitespace()
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return arr, nil
	}
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)

		p.skipWhitespace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errEOF()
		}
		switch c {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return arr, nil
		default:
			return nil, p.errUnexpected(c)
		}
	}
}

// parseString consumes a quoted string, starting at the opening quote.
func (p *parser) parseString() (string, error) {
	start := p.pos
	p.pos++ // consume '"'
	var sb strings.Builder
	for {
		c, ok := p.next()
		if !ok {
			return "", errors.NewParseError(errors.KindUnterminatedString, start)
		}
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, ok := p.next()
			if !ok {
				return "", errors.NewParseError(errors.KindUnterminatedString, start)
			}
			switch esc {
			case '"', '\\', '/':
				sb.WriteRune(esc)
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case 'b':
				sb.WriteRune('\b')
			case 'f':
				sb.WriteRune('\f')
			default:
				return "", &errors.ParseError{
					Kind:   errors.KindUnexpectedCharacter,
					Offset: p.pos - 1,
					Found:  `\` + string(esc),
				}
			}
		default:
			sb.WriteRune(c)
		}
	}
}

// parseNumber consumes a number lexeme and parses it as a float64.
func (p *parser) parseNumber() (models.Value, error) {
	start := p.pos
	if c, ok := p.peek(); ok && c == '-' {
		p.pos++
	}
	digits := p.consumeDigits()
	if digits == 0 {
		return nil, errors.NewParseError(errors.KindInvalidNumber, start)
	}
	if c, ok := p.peek(); ok && c == '.' {
		p.pos++
		if p.consumeDigits() == 0 {
			return nil, errors.NewParseError(errors.KindInvalidNumber, start)
		}
	}
	if c, ok := p.peek(); ok && (c == 'e' || c == 'E') {
		p.pos++
		if c, ok := p.peek(); ok && (c == '+' || c == '-') {
			p.pos++
		}
		if p.consumeDigits() == 0 {
			return nil, errors.NewParseError(errors.KindInvalidNumber, start)
		}
	}
	lexeme := string(p.input[start:p.pos])
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return nil, &errors.ParseError{
			Kind:   errors.KindInvalidNumber,
			Offset: start,
			Found:  lexeme,
		}
	}
	return models.Number(f), nil
}

func (p *parser) consumeDigits() int {
	n := 0
	for {
		c, ok := p.peek()
		if !ok || c < '0' || c > '9' {
			return n
		}
		p.pos++
		n++
	}
}

// parseLiteral matches an exact keyword (true, false or null).
func (p *parser) parseLiteral(word string, value models.Value) (models.Value, error) {
	start := p.pos
	for _, want := range word {
		c, ok := p.next()
		if !ok || c != want {
			end := p.pos
			if end > len(p.input) {
				end = len(p.input)
			}
			return nil, &errors.ParseError{
				Kind:     errors.KindInvalidLiteral,
				Offset:   start,
				Expected: word,
				Found:    string(p.input[start:end]),
			}
		}
	}
	return value, nil
}
