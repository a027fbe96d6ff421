// Package xmlparser parses XML text into a models.Node tree. It handles
// elements, attributes, text content and the minimal entity set; CDATA,
// comments, processing instructions and namespaces are out of scope.
package xmlparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/models"
)

// entityDecoder reverses the escaping applied by the encoder. Unknown
// entities pass through untouched.
var entityDecoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// ParseString parses a complete XML document with a single root
// element. Anything other than whitespace after the root's closing tag
// is an error.
func ParseString(input string) (*models.Node, error) {
	p := &parser{input: []rune(input)}
	p.skipWhitespace()
	root, err := p.parseElement()
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
	return root, nil
}

// Parse reads everything from r and parses it as an XML document.
func Parse(r io.Reader) (*models.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseFile parses an XML document from a file path.
func ParseFile(filePath string) (*models.Node, error) {
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

func (p *parser) peekAt(offset int) (rune, bool) {
	if p.pos+offset >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos+offset], true
}

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

func (p *parser) expect(want rune) error {
	c, ok := p.peek()
	if !ok {
		return &errors.ParseError{
			Kind:     errors.KindUnexpectedEndOfInput,
			Offset:   p.pos,
			Expected: string(want),
		}
	}
	if c != want {
		return &errors.ParseError{
			Kind:     errors.KindUnexpectedCharacter,
			Offset:   p.pos,
			Expected: string(want),
			Found:    string(c),
		}
	}
	p.pos++
	return nil
}

func isNameRune(c rune) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == ':'
}

func (p *parser) parseName() (string, error) {
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok || !isNameRune(c) {
			break
		}
		p.pos++
	}
	if p.pos == start {
		c, ok := p.peek()
		if !ok {
			return "", &errors.ParseError{
				Kind:     errors.KindUnexpectedEndOfInput,
				Offset:   p.pos,
				Expected: "name",
			}
		}
		return "", &errors.ParseError{
			Kind:     errors.KindUnexpectedCharacter,
			Offset:   p.pos,
			Expected: "name",
			Found:    string(c),
		}
	}
	return string(p.input[start:p.pos]), nil
}

// parseElement parses one element starting at its '<'.
func (p *parser) parseElement() (*models.Node, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	tag, err := p.parseName()
	if err != nil {
		return nil, err
	}
	node := models.NewNode(tag)

	if err := p.parseAttributes(node); err != nil {
		return nil, err
	}

	// Self-closing tag has no body.
	if c, ok := p.peek(); ok && c == '/' {
		p.pos++
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return node, nil
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return p.parseBody(node)
}

// parseAttributes reads name="value" pairs until '>' or '/>'.
func (p *parser) parseAttributes(node *models.Node) error {
	for {
		p.skipWhitespace()
		c, ok := p.peek()
		if !ok {
			return p.errEOF()
		}
		if c == '>' || c == '/' {
			return nil
		}
		name, err := p.parseName()
		if err != nil {
			return err
		}
		p.skipWhitespace()
		if err := p.expect('='); err != nil {
			return err
		}
		p.skipWhitespace()
		value, err := p.parseAttrValue()
		if err != nil {
			return err
		}
		node.SetAttr(name, value)
	}
}

// parseAttrValue reads a quoted attribute value. Both double and single
// quotes are accepted; the closing quote must match the opening one.
func (p *parser) parseAttrValue() (string, error) {
	start := p.pos
	quote, ok := p.peek()
	if !ok {
		return "", p.errEOF()
	}
	if quote != '"' && quote != '\'' {
		return "", &errors.ParseError{
			Kind:     errors.KindUnexpectedCharacter,
			Offset:   p.pos,
			Expected: "quote",
			Found:    string(quote),
		}
	}
	p.pos++
	valueStart := p.pos
	for {
		c, ok := p.peek()
		if !ok {
			return "", errors.NewParseError(errors.KindUnterminatedString, start)
		}
		if c == quote {
			value := string(p.input[valueStart:p.pos])
			p.pos++
			return entityDecoder.Replace(value), nil
		}
		p.pos++
	}
}

// parseBody reads interleaved text runs and child elements until the
// matching closing tag.
func (p *parser) parseBody(node *models.Node) (*models.Node, error) {
	var text strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return nil, &errors.ParseError{
				Kind:     errors.KindUnexpectedEndOfInput,
				Offset:   p.pos,
				Expected: "</" + node.Tag + ">",
			}
		}
		if c != '<' {
			text.WriteString(p.parseText())
			continue
		}
		if next, ok := p.peekAt(1); ok && next == '/' {
			p.pos += 2
			nameStart := p.pos
			closeTag, err := p.parseName()
			if err != nil {
				return nil, err
			}
			p.skipWhitespace()
			if err := p.expect('>'); err != nil {
				return nil, err
			}
			if closeTag != node.Tag {
				return nil, &errors.ParseError{
					Kind:     errors.KindUnbalancedTags,
					Offset:   nameStart,
					Expected: node.Tag,
					Found:    closeTag,
				}
			}
			break
		}
		child, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		node.Append(child)
	}

	// Text that is entirely whitespace next to child elements is
	// separator whitespace, not content.
	node.Text = text.String()
	if strings.TrimSpace(node.Text) == "" && len(node.Children) > 0 {
		node.Text = ""
	}
	return node, nil
}

// parseText consumes a raw text run up to the next '<' and decodes the
// minimal entity set.
func (p *parser) parseText() string {
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok || c == '<' {
			break
		}
		p.pos++
	}
	return entityDecoder.Replace(string(p.input[start:p.pos]))
}
