package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_SetAttr(t *testing.T) {
	n := NewNode("a")
	n.SetAttr("id", "1")
	n.SetAttr("class", "x")

	assert.Equal(t, []Attr{{"id", "1"}, {"class", "x"}}, n.Attrs)

	// Overwrite keeps position
	n.SetAttr("id", "2")
	assert.Equal(t, []Attr{{"id", "2"}, {"class", "x"}}, n.Attrs)

	v, ok := n.Attr("id")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = n.Attr("missing")
	assert.False(t, ok)
}

func TestNode_Append(t *testing.T) {
	parent := NewNode("parent")
	parent.Append(NewNode("a"))
	parent.Append(NewNode("b"))

	require.Len(t, parent.Children, 2)
	assert.Equal(t, "a", parent.Children[0].Tag)
	assert.Equal(t, "b", parent.Children[1].Tag)
}

func TestNode_Equal(t *testing.T) {
	build := func() *Node {
		n := NewNode("person")
		n.SetAttr("id", "42")
		name := NewNode("name")
		name.Text = "John Doe"
		n.Append(name)
		return n
	}

	assert.True(t, build().Equal(build()))

	differentText := build()
	differentText.Children[0].Text = "Jane Doe"
	assert.False(t, build().Equal(differentText))

	differentTag := build()
	differentTag.Tag = "user"
	assert.False(t, build().Equal(differentTag))

	extraAttr := build()
	extraAttr.SetAttr("extra", "1")
	assert.False(t, build().Equal(extraAttr))

	var nilNode *Node
	assert.False(t, build().Equal(nilNode))
	assert.True(t, nilNode.Equal(nil))
}
