package view

import (
	"slices"
	"strings"
)

// Kind is the element type of a Node.
type Kind string

const (
	KindMain      Kind = "main"
	KindFragment  Kind = "fragment"
	KindArticle   Kind = "article"
	KindH2        Kind = "h2"
	KindH3        Kind = "h3"
	KindParagraph Kind = "p"
	KindButton    Kind = "button"
	KindSection   Kind = "section"
)

// Listener is a click handler installed on a button Node.
// Its identity is its pointer: RemoveListener only removes the exact
// *Listener that AddListener received.
type Listener struct {
	fn func()
}

// NewListener wraps fn as an installable click handler.
func NewListener(fn func()) *Listener {
	return &Listener{fn: fn}
}

// Node is one element of the in-memory view tree.
//
// A fragment is a detached container: appending it to another node moves its
// children and leaves the fragment empty.
type Node struct {
	Kind   Kind
	Text   string
	PostID int // post-id attribute; 0 means unset

	classes   []string
	children  []*Node
	parent    *Node
	listeners []*Listener
}

// NewNode creates an empty node of the given kind.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewFragment creates an empty fragment.
func NewFragment() *Node {
	return NewNode(KindFragment)
}

// Append adds child as the last child of n and returns child.
// A child already mounted elsewhere is moved.
func (n *Node) Append(child *Node) *Node {
	if child == nil {
		return nil
	}
	if child.Kind == KindFragment {
		moved := child.children
		child.children = nil
		for _, c := range moved {
			c.parent = nil
			n.Append(c)
		}
		return child
	}
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) remove(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.parent = nil
}

// Clear detaches every child of n, last first, and returns them in
// document order.
func (n *Node) Clear() []*Node {
	removed := make([]*Node, len(n.children))
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		c.parent = nil
		removed[i] = c
	}
	n.children = nil
	return removed
}

// Children returns a copy of n's children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Parent returns the node n is mounted under, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Contains reports whether other is n or mounted somewhere below n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first in document order.
// Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// FindAll returns every node below n, n included, of the given kind.
func (n *Node) FindAll(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// AddClass adds class unless already present.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// RemoveClass removes class if present.
func (n *Node) RemoveClass(class string) {
	if i := slices.Index(n.classes, class); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
}

// HasClass reports whether class is set.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// SetClass adds or removes class so that HasClass(class) == on.
func (n *Node) SetClass(class string, on bool) {
	if on {
		n.AddClass(class)
		return
	}
	n.RemoveClass(class)
}

// ClassName returns the classes joined by spaces.
func (n *Node) ClassName() string {
	return strings.Join(n.classes, " ")
}

// AddListener installs l. Installing the same *Listener twice is a no-op.
func (n *Node) AddListener(l *Listener) {
	if l == nil || slices.Contains(n.listeners, l) {
		return
	}
	n.listeners = append(n.listeners, l)
}

// RemoveListener uninstalls l and reports whether it was installed.
func (n *Node) RemoveListener(l *Listener) bool {
	i := slices.Index(n.listeners, l)
	if i < 0 {
		return false
	}
	n.listeners = slices.Delete(n.listeners, i, i+1)
	return true
}

// ListenerCount returns the number of installed listeners.
func (n *Node) ListenerCount() int {
	return len(n.listeners)
}

// Click invokes every installed listener in install order and returns how
// many ran.
func (n *Node) Click() int {
	ls := slices.Clone(n.listeners)
	for _, l := range ls {
		if l.fn != nil {
			l.fn()
		}
	}
	return len(ls)
}
