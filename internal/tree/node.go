// Package tree builds an in-memory model of a directory hierarchy and renders
// it as an indented listing.
package tree

// Node is either a directory, holding named children in insertion order,
// or a file, which is a terminal marker.
//
// The root node returned by Build stands for the walk root and has no name.
type Node struct {
	dir      bool
	names    []string
	children map[string]*Node
}

// NewDir creates an empty directory node.
func NewDir() *Node {
	return &Node{dir: true, children: make(map[string]*Node)}
}

// NewFile creates a file marker.
func NewFile() *Node {
	return &Node{}
}

// IsDir reports whether n is a directory node.
func (n *Node) IsDir() bool {
	return n.dir
}

// Len returns the number of direct children. Files always have zero.
func (n *Node) Len() int {
	return len(n.names)
}

// Names returns the child names in insertion order.
func (n *Node) Names() []string {
	return append([]string(nil), n.names...)
}

// Child returns the child called name.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Descend returns the child directory called name, creating it if needed.
// Calling it again with the same name returns the same node. A file entry of
// the same name is turned into an empty directory in place.
func (n *Node) Descend(name string) *Node {
	n.mustBeDir("Descend")
	if c, ok := n.children[name]; ok {
		if !c.dir {
			*c = *NewDir()
		}
		return c
	}
	c := NewDir()
	n.insert(name, c)
	return c
}

// AddFile inserts a file marker called name. An existing child of the same
// name is kept unchanged.
func (n *Node) AddFile(name string) {
	n.mustBeDir("AddFile")
	if _, ok := n.children[name]; ok {
		return
	}
	n.insert(name, NewFile())
}

// Equal reports whether n and other have the same kind, the same child names
// in the same order, and equal children.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.dir != other.dir || len(n.names) != len(other.names) {
		return false
	}
	for i, name := range n.names {
		if other.names[i] != name {
			return false
		}
		if !n.children[name].Equal(other.children[name]) {
			return false
		}
	}
	return true
}

// Count returns the number of directories and files below n, not counting n.
func (n *Node) Count() (dirs, files int) {
	for _, name := range n.names {
		c := n.children[name]
		if !c.dir {
			files++
			continue
		}
		dirs++
		d, f := c.Count()
		dirs += d
		files += f
	}
	return dirs, files
}

func (n *Node) insert(name string, c *Node) {
	n.names = append(n.names, name)
	n.children[name] = c
}

func (n *Node) mustBeDir(op string) {
	if !n.dir {
		panic("tree: " + op + " called on a file node")
	}
}
