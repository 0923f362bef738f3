// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Nodes of the content tree.

package archive

import (
	"io"
	"maps"
	"slices"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

// Node is either a directory, which has children, or a file, which
// owns an Asset.
type Node struct {
	path     vpath.Path
	asset    asset.Asset
	children map[string]*Node
}

func newDir(p vpath.Path) *Node {
	return &Node{path: p, children: make(map[string]*Node)}
}

func newFile(p vpath.Path, a asset.Asset) *Node {
	return &Node{path: p, asset: a}
}

// Path returns the location of the node in its archive.
func (n *Node) Path() vpath.Path {
	return n.path
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n.children != nil
}

// Asset returns the content of a file node, nil for directories.
func (n *Node) Asset() asset.Asset {
	return n.asset
}

// Open opens the content of a file node.
func (n *Node) Open() (io.ReadCloser, error) {
	if n.IsDir() {
		return nil, errors.Wrapf(ErrPathIsDirectory, "cannot open %s", n.path)
	}
	return n.asset.Open()
}

// Children returns the direct children of a directory in path order.
func (n *Node) Children() []*Node {
	if !n.IsDir() {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, name := range n.childNames() {
		out = append(out, n.children[name])
	}
	return out
}

// childNames returns the names of the children sorted bytewise, which
// is path order for siblings.
func (n *Node) childNames() []string {
	return slices.Sorted(maps.Keys(n.children))
}

// walk visits every descendant of n in path order until yield returns
// false.
func (n *Node) walk(yield func(*Node) bool) bool {
	for _, name := range n.childNames() {
		c := n.children[name]
		if !yield(c) {
			return false
		}
		if c.IsDir() && !c.walk(yield) {
			return false
		}
	}
	return true
}

// count returns the number of descendants of n.
func (n *Node) count() int {
	total := 0
	for _, c := range n.children {
		total++
		if c.IsDir() {
			total += c.count()
		}
	}
	return total
}
