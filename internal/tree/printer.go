package tree

import (
	"bufio"
	"io"
	"strings"
)

const (
	indentUnit  = "  "
	emptyMarker = "(empty)"
)

// Print writes root's children to w as an indented listing, depth first.
//
// Each entry is one line: two spaces per level of depth, a "/" for anything
// below the top level, then the name. An empty directory below the top level
// is followed by an "(empty)" line one level deeper. Empty directories at the
// top level get no marker.
func Print(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	if err := printDir(bw, root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

// Render returns the listing Print would write.
func Render(root *Node) string {
	var sb strings.Builder
	_ = Print(&sb, root)
	return sb.String()
}

func printDir(w *bufio.Writer, dir *Node, depth int) error {
	indent := strings.Repeat(indentUnit, depth)
	for _, name := range dir.names {
		line := indent + name
		if depth > 0 {
			line = indent + "/" + name
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}

		child, _ := dir.Child(name)
		switch {
		case !child.dir:
		case child.Len() > 0:
			if err := printDir(w, child, depth+1); err != nil {
				return err
			}
		case depth > 0:
			if _, err := w.WriteString(indent + indentUnit + emptyMarker + "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
