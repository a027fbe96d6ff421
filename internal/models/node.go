package models

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Node represents one parsed XML element: its tag name, attributes in
// document order, child elements in document order and any text content
// that appeared directly inside the element (outside child tags,
// concatenated in encounter order). A Node owns its subtree exclusively.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// NewNode creates a Node with the given tag and no attributes, children
// or text.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// SetAttr sets an attribute, overwriting the value in place when the
// name is already present so the attribute keeps its original position.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Attr returns the value of the named attribute, if present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds a child element.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Equal reports structural equality: same tag, same attributes in the
// same order, same text and recursively equal children.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Tag != other.Tag || n.Text != other.Text {
		return false
	}
	if len(n.Attrs) != len(other.Attrs) || len(n.Children) != len(other.Children) {
		return false
	}
	for i, a := range n.Attrs {
		if a != other.Attrs[i] {
			return false
		}
	}
	for i, c := range n.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
