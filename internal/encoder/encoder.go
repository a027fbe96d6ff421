// Package encoder serializes models.Value and models.Node trees back to
// JSON and XML text. Encoding then reparsing yields a structurally equal
// tree, and reserializing that tree reproduces the same bytes.
package encoder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/xmljson/internal/models"
)

// xmlEscaper escapes the characters that are significant in XML markup.
// It is applied to both text content and attribute values.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// JSON serializes a value compactly.
func JSON(v models.Value) string {
	var sb strings.Builder
	writeJSON(&sb, v, "", "")
	return sb.String()
}

// JSONIndent serializes a value with one level of indent per depth.
func JSONIndent(v models.Value, indent string) string {
	var sb strings.Builder
	writeJSON(&sb, v, "", indent)
	return sb.String()
}

func writeJSON(sb *strings.Builder, v models.Value, prefix, indent string) {
	switch val := v.(type) {
	case models.Null:
		sb.WriteString("null")
	case models.Bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case models.Number:
		sb.WriteString(FormatNumber(float64(val)))
	case models.String:
		writeJSONString(sb, string(val))
	case models.Array:
		if len(val) == 0 {
			sb.WriteString("[]")
			return
		}
		inner := prefix + indent
		sb.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				sb.WriteByte(',')
			}
			if indent != "" {
				sb.WriteByte('\n')
				sb.WriteString(inner)
			}
			writeJSON(sb, item, inner, indent)
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(prefix)
		}
		sb.WriteByte(']')
	case *models.Object:
		if val.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		inner := prefix + indent
		sb.WriteByte('{')
		for i, key := range val.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			if indent != "" {
				sb.WriteByte('\n')
				sb.WriteString(inner)
			}
			writeJSONString(sb, key)
			sb.WriteByte(':')
			if indent != "" {
				sb.WriteByte(' ')
			}
			item, _ := val.Get(key)
			writeJSON(sb, item, inner, indent)
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(prefix)
		}
		sb.WriteByte('}')
	}
}

// writeJSONString writes a quoted string, escaping quotes, backslashes
// and control characters.
func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if c < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, c)
			} else {
				sb.WriteRune(c)
			}
		}
	}
	sb.WriteByte('"')
}

// FormatNumber renders a float in its canonical decimal form: integral
// values print without a decimal point or trailing zeros, and very
// large or very small magnitudes fall back to exponent notation.
func FormatNumber(f float64) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.FormatFloat(f, format, -1, 64)
}

// XML serializes a node compactly.
func XML(n *models.Node) string {
	var sb strings.Builder
	writeXML(&sb, n, "", "")
	return sb.String()
}

// XMLIndent serializes a node with one level of indent per depth.
// Child elements each go on their own line; text-only elements stay on
// one line so their content survives round-tripping untouched.
func XMLIndent(n *models.Node, indent string) string {
	var sb strings.Builder
	writeXML(&sb, n, "", indent)
	return sb.String()
}

func writeXML(sb *strings.Builder, n *models.Node, prefix, indent string) {
	sb.WriteString(prefix)
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(xmlEscaper.Replace(a.Value))
		sb.WriteByte('"')
	}
	if len(n.Attrs) == 0 && len(n.Children) == 0 && n.Text == "" {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	if n.Text != "" {
		sb.WriteString(xmlEscaper.Replace(n.Text))
	}
	if len(n.Children) > 0 {
		// Mixed content stays inline: added line breaks would reparse
		// as part of the text.
		if indent == "" || n.Text != "" {
			for _, child := range n.Children {
				writeXML(sb, child, "", "")
			}
		} else {
			inner := prefix + indent
			for _, child := range n.Children {
				sb.WriteByte('\n')
				writeXML(sb, child, inner, indent)
			}
			sb.WriteByte('\n')
			sb.WriteString(prefix)
		}
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}
