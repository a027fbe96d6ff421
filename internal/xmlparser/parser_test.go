package xmlparser

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/models"
)

func TestParseString_SimpleElement(t *testing.T) {
	node, err := ParseString(`<name>John Doe</name>`)
	require.NoError(t, err)

	assert.Equal(t, "name", node.Tag)
	assert.Equal(t, "John Doe", node.Text)
	assert.Empty(t, node.Attrs)
	assert.Empty(t, node.Children)
}

func TestParseString_SelfClosing(t *testing.T) {
	node, err := ParseString(`<a/>`)
	require.NoError(t, err)

	assert.Equal(t, "a", node.Tag)
	assert.Empty(t, node.Attrs)
	assert.Empty(t, node.Children)
	assert.Empty(t, node.Text)
}

func TestParseString_Attributes(t *testing.T) {
	node, err := ParseString(`<user id="42" name='Jane' active="true"/>`)
	require.NoError(t, err)

	assert.Equal(t, []models.Attr{
		{Name: "id", Value: "42"},
		{Name: "name", Value: "Jane"},
		{Name: "active", Value: "true"},
	}, node.Attrs)
}

func TestParseString_AttributeSpacing(t *testing.T) {
	node, err := ParseString("<a x = \"1\"\n\ty='2' />")
	require.NoError(t, err)

	assert.Equal(t, []models.Attr{{Name: "x", Value: "1"}, {Name: "y", Value: "2"}}, node.Attrs)
}

func TestParseString_DuplicateAttributeLastWins(t *testing.T) {
	node, err := ParseString(`<a x="1" x="2"/>`)
	require.NoError(t, err)

	require.Len(t, node.Attrs, 1)
	assert.Equal(t, models.Attr{Name: "x", Value: "2"}, node.Attrs[0])
}

func TestParseString_Nested(t *testing.T) {
	node, err := ParseString(`<person><name>John Doe</name><age>30</age></person>`)
	require.NoError(t, err)

	assert.Equal(t, "person", node.Tag)
	assert.Empty(t, node.Text)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "name", node.Children[0].Tag)
	assert.Equal(t, "John Doe", node.Children[0].Text)
	assert.Equal(t, "age", node.Children[1].Tag)
	assert.Equal(t, "30", node.Children[1].Text)
}

func TestParseString_SeparatorWhitespaceDropped(t *testing.T) {
	node, err := ParseString("<person>\n  <name>John</name>\n  <age>30</age>\n</person>")
	require.NoError(t, err)

	assert.Empty(t, node.Text)
	require.Len(t, node.Children, 2)
}

func TestParseString_WhitespaceOnlyTextPreserved(t *testing.T) {
	node, err := ParseString(`<a>   </a>`)
	require.NoError(t, err)

	assert.Equal(t, "   ", node.Text)
	assert.Empty(t, node.Children)
}

func TestParseString_MixedContentConcatenated(t *testing.T) {
	node, err := ParseString(`<p>one<b>bold</b>two</p>`)
	require.NoError(t, err)

	assert.Equal(t, "onetwo", node.Text)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "bold", node.Children[0].Text)
}

func TestParseString_EntityDecoding(t *testing.T) {
	node, err := ParseString(`<a note="x &amp; y">1 &lt; 2 &amp; &quot;q&quot; &apos;s&apos; &gt;</a>`)
	require.NoError(t, err)

	note, ok := node.Attr("note")
	require.True(t, ok)
	assert.Equal(t, "x & y", note)
	assert.Equal(t, `1 < 2 & "q" 's' >`, node.Text)
}

func TestParseString_UnknownEntityPassesThrough(t *testing.T) {
	node, err := ParseString(`<a>&copy;</a>`)
	require.NoError(t, err)
	assert.Equal(t, "&copy;", node.Text)
}

func TestParseString_TagNameCharset(t *testing.T) {
	node, err := ParseString(`<ns:item-name_2>x</ns:item-name_2>`)
	require.NoError(t, err)
	assert.Equal(t, "ns:item-name_2", node.Tag)
}

func TestParseString_LeadingAndTrailingWhitespace(t *testing.T) {
	node, err := ParseString("  \n<a>x</a>\n\t ")
	require.NoError(t, err)
	assert.Equal(t, "a", node.Tag)
}

func TestParseString_Errors(t *testing.T) {
	testCases := []struct {
		name         string
		xmlStr       string
		wantKind     errors.ParseKind
		wantOffset   int
		wantExpected string
		wantFound    string
	}{
		{"UnbalancedTags", `<a><b></a>`, errors.KindUnbalancedTags, 8, "b", "a"},
		{"UnbalancedRoot", `<a></b>`, errors.KindUnbalancedTags, 5, "a", "b"},
		{"UnclosedRoot", `<a>`, errors.KindUnexpectedEndOfInput, 3, "</a>", ""},
		{"TruncatedOpenTag", `<a`, errors.KindUnexpectedEndOfInput, 2, "", ""},
		{"NotMarkup", `hello`, errors.KindUnexpectedCharacter, 0, "<", "h"},
		{"EmptyTagName", `<>`, errors.KindUnexpectedCharacter, 1, "name", ">"},
		{"SecondRoot", `<a/><b/>`, errors.KindTrailingContent, 4, "", "<"},
		{"TrailingText", `<a/>x`, errors.KindTrailingContent, 4, "", "x"},
		{"UnquotedAttribute", `<a b=c/>`, errors.KindUnexpectedCharacter, 5, "quote", "c"},
		{"MismatchedQuotes", `<a b="c'/>`, errors.KindUnterminatedString, 5, "", ""},
		{"MissingEquals", `<a b "c"/>`, errors.KindUnexpectedCharacter, 5, "=", `"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.xmlStr)
			require.Error(t, err)

			var parseErr *errors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.wantKind, parseErr.Kind)
			assert.Equal(t, tc.wantOffset, parseErr.Offset)
			if tc.wantExpected != "" {
				assert.Equal(t, tc.wantExpected, parseErr.Expected)
			}
			if tc.wantFound != "" {
				assert.Equal(t, tc.wantFound, parseErr.Found)
			}
		})
	}
}

func TestParse_Reader(t *testing.T) {
	node, err := Parse(strings.NewReader(`<ok/>`))
	require.NoError(t, err)
	assert.Equal(t, "ok", node.Tag)
}

func TestParseFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_*.xml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString(`<config debug="true"><level>3</level></config>`)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	node, err := ParseFile(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "config", node.Tag)

	debug, ok := node.Attr("debug")
	require.True(t, ok)
	assert.Equal(t, "true", debug)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "3", node.Children[0].Text)
}

func TestParseFile_NonExistent(t *testing.T) {
	_, err := ParseFile("nonexistent.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}
