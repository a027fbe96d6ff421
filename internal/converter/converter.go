// Package converter maps between XML node trees and JSON value trees.
//
// Conventions, both directions:
//   - an element becomes a JSON object with a single key, its tag name;
//   - attributes become keys carrying a reserved prefix ("@" by
//     default), so <a id="1"/> and {"a":{"@id":"1"}} are equivalent;
//   - element text sits beside attributes or children under a reserved
//     text key ("#text" by default);
//   - same-tag sibling elements collapse into one JSON array in
//     document order.
//
// The prefix and text key are conventions, not protocol: a JSON key
// already spelled with the prefix is treated as an attribute when its
// value is scalar.
package converter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/xmljson/internal/config"
	"github.com/mcncl/xmljson/internal/encoder"
	"github.com/mcncl/xmljson/internal/models"
)

// numberPattern is the JSON number grammar. Text coercion only fires on
// an exact match so values like "30px" or " 30" stay strings.
var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Converter performs pure, total transforms between the two tree
// models. It holds no per-call state and is safe for concurrent use.
type Converter struct {
	cfg *config.Config
}

// New creates a Converter with default conventions.
func New() *Converter {
	return &Converter{cfg: config.NewConfig()}
}

// NewWithConfig creates a Converter with custom conventions.
func NewWithConfig(cfg *config.Config) *Converter {
	return &Converter{cfg: cfg}
}

// XMLToJSON converts an XML tree to a JSON object keyed by the root's
// tag name.
func (c *Converter) XMLToJSON(node *models.Node) models.Value {
	root := models.NewObject()
	root.Set(node.Tag, c.convertNode(node))
	return root
}

// convertNode builds the JSON value for one element, without the
// enclosing tag key.
func (c *Converter) convertNode(node *models.Node) models.Value {
	// A text-only element is just its coerced text.
	if len(node.Attrs) == 0 && len(node.Children) == 0 {
		if node.Text == "" {
			return models.Null{}
		}
		return c.coerceText(node.Text)
	}

	inner := models.NewObject()
	for _, a := range node.Attrs {
		inner.Set(c.cfg.Convert.AttrPrefix+a.Name, models.String(a.Value))
	}
	if node.Text != "" {
		inner.Set(c.cfg.Convert.TextKey, models.String(node.Text))
	}

	// Group same-tag siblings, keeping the position of each tag's
	// first occurrence.
	tagOrder := make([]string, 0, len(node.Children))
	grouped := make(map[string][]models.Value)
	for _, child := range node.Children {
		if _, seen := grouped[child.Tag]; !seen {
			tagOrder = append(tagOrder, child.Tag)
		}
		grouped[child.Tag] = append(grouped[child.Tag], c.convertNode(child))
	}
	for _, tag := range tagOrder {
		values := grouped[tag]
		if len(values) == 1 {
			inner.Set(tag, values[0])
		} else {
			inner.Set(tag, models.Array(values))
		}
	}

	if inner.Len() == 0 {
		return models.Null{}
	}
	return inner
}

// coerceText maps element text onto the closest JSON scalar.
func (c *Converter) coerceText(text string) models.Value {
	if !c.cfg.Convert.CoerceText {
		return models.String(text)
	}
	switch text {
	case "true":
		return models.Bool(true)
	case "false":
		return models.Bool(false)
	case "null":
		return models.Null{}
	}
	if numberPattern.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return models.Number(f)
		}
	}
	return models.String(text)
}

// JSONToXML converts a JSON value to an XML tree. A single-key object
// supplies its own root tag; everything else is wrapped under rootTag.
func (c *Converter) JSONToXML(value models.Value, rootTag string) *models.Node {
	if obj, ok := value.(*models.Object); ok && obj.Len() == 1 {
		key := obj.Keys()[0]
		if !c.isReservedKey(key) {
			inner, _ := obj.Get(key)
			return c.buildElement(key, inner)
		}
	}
	return c.buildElement(rootTag, value)
}

// isReservedKey reports whether a key names an attribute or element
// text rather than a child element.
func (c *Converter) isReservedKey(key string) bool {
	return strings.HasPrefix(key, c.cfg.Convert.AttrPrefix) || key == c.cfg.Convert.TextKey
}

// buildElement builds one element for a value under the given tag.
func (c *Converter) buildElement(tag string, value models.Value) *models.Node {
	node := models.NewNode(c.cfg.GetTagName(tag))
	switch v := value.(type) {
	case *models.Object:
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			if strings.HasPrefix(key, c.cfg.Convert.AttrPrefix) {
				if text, ok := scalarText(item); ok {
					node.SetAttr(key[len(c.cfg.Convert.AttrPrefix):], text)
					continue
				}
				// Non-scalar under a prefixed key cannot be an
				// attribute; keep it as a child with the literal key.
			}
			if key == c.cfg.Convert.TextKey {
				if text, ok := scalarText(item); ok {
					node.Text = text
					continue
				}
			}
			if arr, ok := item.(models.Array); ok {
				for _, entry := range arr {
					node.Append(c.buildElement(key, entry))
				}
				continue
			}
			node.Append(c.buildElement(key, item))
		}
	case models.Array:
		for _, entry := range v {
			node.Append(c.buildElement(c.cfg.Convert.ItemTag, entry))
		}
	default:
		text, _ := scalarText(value)
		node.Text = text
	}
	return node
}

// scalarText renders a scalar value in its canonical text form. Null
// renders as empty text.
func scalarText(value models.Value) (string, bool) {
	switch v := value.(type) {
	case models.Null:
		return "", true
	case models.Bool:
		if v {
			return "true", true
		}
		return "false", true
	case models.Number:
		return encoder.FormatNumber(float64(v)), true
	case models.String:
		return string(v), true
	default:
		return "", false
	}
}
