package view

// Controls is the toggle button and comment section mounted for one post.
type Controls struct {
	Button  *Node
	Section *Node
}

// Index maps post ids to their mounted controls. It is built once per
// mount so nothing has to re-query the tree by attribute.
type Index struct {
	order []int
	byID  map[int]Controls
}

// BuildIndex walks root once and records every post that has both a toggle
// button and a comment section. Posts are kept in document order.
func BuildIndex(root *Node) *Index {
	idx := &Index{byID: make(map[int]Controls)}
	if root == nil {
		return idx
	}
	partial := make(map[int]Controls)
	var seen []int
	root.Walk(func(n *Node) bool {
		if n.PostID == 0 {
			return true
		}
		c, ok := partial[n.PostID]
		if !ok {
			seen = append(seen, n.PostID)
		}
		switch n.Kind {
		case KindButton:
			if c.Button == nil {
				c.Button = n
			}
		case KindSection:
			if c.Section == nil {
				c.Section = n
			}
		}
		partial[n.PostID] = c
		return true
	})
	for _, id := range seen {
		c := partial[id]
		if c.Button == nil || c.Section == nil {
			continue
		}
		idx.order = append(idx.order, id)
		idx.byID[id] = c
	}
	return idx
}

// Lookup returns the controls for postID.
func (x *Index) Lookup(postID int) (Controls, bool) {
	if x == nil {
		return Controls{}, false
	}
	c, ok := x.byID[postID]
	return c, ok
}

// IDs returns the indexed post ids in document order.
func (x *Index) IDs() []int {
	if x == nil {
		return nil
	}
	return append([]int(nil), x.order...)
}

// Len returns the number of indexed posts.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.order)
}
