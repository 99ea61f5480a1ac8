package routing

import (
	"strings"
)

// TrieNode is one path segment of the route tree.
type TrieNode struct {
	segment    string               // "suppliers", ":id"
	isParam    bool                 // true for ":name" segments
	paramName  string               // "id" for ":id"
	children   map[string]*TrieNode // static children
	paramChild *TrieNode            // ":name" child
	routes     map[string]*Route    // method -> route ending here
}

// NewTrieNode creates a new trie node
func NewTrieNode(segment string) *TrieNode {
	node := &TrieNode{
		segment:  segment,
		children: make(map[string]*TrieNode),
	}

	if IsParameterSegment(segment) {
		node.isParam = true
		node.paramName = segment[1:]
	}

	return node
}

// AddChild adds or retrieves a child node
func (n *TrieNode) AddChild(segment string) *TrieNode {
	if IsParameterSegment(segment) {
		if n.paramChild == nil {
			n.paramChild = NewTrieNode(segment)
		}
		return n.paramChild
	}

	if child, exists := n.children[segment]; exists {
		return child
	}

	child := NewTrieNode(segment)
	n.children[segment] = child
	return child
}

// FindChild finds the best matching child for a segment, preferring a
// static match over a parameter.
func (n *TrieNode) FindChild(segment string, params map[string]string) *TrieNode {
	if child, exists := n.children[segment]; exists {
		return child
	}

	if n.paramChild != nil {
		if params != nil {
			params[n.paramChild.paramName] = segment
		}
		return n.paramChild
	}

	return nil
}

// ParseURI splits a URI path into segments
// Example: "/api/v1/suppliers/7" -> ["api", "v1", "suppliers", "7"]
func ParseURI(uri string) []string {
	uri = strings.Trim(uri, "/")

	if uri == "" {
		return []string{}
	}

	return strings.Split(uri, "/")
}

// IsParameterSegment reports whether segment is a gin style ":name"
// parameter.
func IsParameterSegment(segment string) bool {
	return len(segment) > 1 && segment[0] == ':'
}
