// Package localization resolves dotted translation keys against per-locale string tables
// and tracks the active locale of a session.
package localization

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one entry of a locale table: either a string leaf or a nested table.
type Node struct {
	text     string
	children map[string]Node
	leaf     bool
}

// Leaf returns a string node.
func Leaf(text string) Node {
	return Node{text: text, leaf: true}
}

// Table returns a nested node holding children.
func Table(children map[string]Node) Node {
	if children == nil {
		children = map[string]Node{}
	}
	return Node{children: children}
}

// IsLeaf reports whether n is a string leaf.
func (n Node) IsLeaf() bool {
	return n.leaf
}

// Child returns the named child of a table node.
func (n Node) Child(name string) (Node, bool) {
	if n.leaf {
		return Node{}, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Lookup walks segments from n. It reports false when a segment is missing, when a
// segment is applied to a leaf, or when the walk ends on a table rather than a string.
func (n Node) Lookup(segments []string) (string, bool) {
	if len(segments) == 0 {
		if n.leaf {
			return n.text, true
		}
		return "", false
	}
	child, ok := n.Child(segments[0])
	if !ok {
		return "", false
	}
	return child.Lookup(segments[1:])
}

// UnmarshalJSON accepts a JSON string or an object whose values are themselves nodes.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty locale node")
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*n = Leaf(text)
		return nil
	case '{':
		var children map[string]Node
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return err
		}
		*n = Table(children)
		return nil
	default:
		return fmt.Errorf("locale node must be a string or an object, got %s", trimmed)
	}
}

// MarshalJSON writes n back in the same shape it was read from.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.leaf {
		return json.Marshal(n.text)
	}
	return json.Marshal(n.children)
}
