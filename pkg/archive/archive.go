// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The in-memory archive and its content tree operations.

// Package archive implements an in-memory virtual archive: a tree of
// named content addressed by vpath.Path that can be imported from and
// exported to several archive formats.
//
//	a := archive.New("a.jar")
//	_ = a.AddString(vpath.Must("/x.txt"), "hi")
//	_ = a.AddString(vpath.Must("/dir/y.txt"), "yo")
//
//	v, _ := a.As(archive.TarGz)
//	err := v.ExportToFile(ctx, "a.tar.gz", false)
//
// An Archive has a single writer. Concurrent reads, such as several
// exports at once, are safe as long as nothing mutates the archive.
package archive

import (
	"iter"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/filter"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

// Archive is a named tree of directories and files.
type Archive struct {
	name string
	root *Node
	cfg  Config
}

// Option configures an Archive.
type Option func(*Archive)

// WithConfig sets the config used by imports and exports of the
// archive. Unset fields keep their defaults.
func WithConfig(c Config) Option {
	return func(a *Archive) {
		a.cfg = c.withDefaults()
	}
}

// New creates an empty archive. An empty name is replaced by a random
// unique one.
func New(name string, opts ...Option) *Archive {
	if name == "" {
		name = uuid.NewString()
	}
	a := &Archive{name: name, root: newDir(vpath.Root), cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the display name of the archive.
func (a *Archive) Name() string {
	return a.name
}

// SetName changes the display name of the archive.
func (a *Archive) SetName(name string) {
	a.name = name
}

// Config returns the config of the archive.
func (a *Archive) Config() Config {
	return a.cfg
}

// Add stores ast at p, creating missing parent directories. A file
// already at p is replaced.
func (a *Archive) Add(p vpath.Path, ast asset.Asset) error {
	if p.IsZero() {
		return errors.Wrap(ErrIllegalArgument, "add requires a path")
	}
	if ast == nil {
		return errors.Wrapf(ErrIllegalArgument, "add %s requires an asset", p)
	}

	parent, err := a.ensureParents(p, true)
	if err != nil {
		return err
	}
	if p.IsRoot() {
		return errors.Wrapf(ErrPathIsDirectory, "cannot add %s", p)
	}
	if existing, ok := parent.children[p.Name()]; ok && existing.IsDir() {
		return errors.Wrapf(ErrPathIsDirectory, "cannot add %s", p)
	}

	parent, _ = a.ensureParents(p, false)
	parent.children[p.Name()] = newFile(p, ast)
	return nil
}

// AddString stores s at p. See Add.
func (a *Archive) AddString(p vpath.Path, s string) error {
	return a.Add(p, asset.String(s))
}

// AddBytes stores b at p. See Add.
func (a *Archive) AddBytes(p vpath.Path, b []byte) error {
	return a.Add(p, asset.Bytes(b))
}

// AddDirectory ensures a directory exists at p, creating missing
// parents. It is a no-op if the directory already exists.
func (a *Archive) AddDirectory(p vpath.Path) error {
	if p.IsZero() {
		return errors.Wrap(ErrIllegalArgument, "add directory requires a path")
	}
	if p.IsRoot() {
		return nil
	}

	parent, err := a.ensureParents(p, true)
	if err != nil {
		return err
	}
	if existing, ok := parent.children[p.Name()]; ok {
		if !existing.IsDir() {
			return errors.Wrapf(ErrPathIsFile, "cannot add directory %s", p)
		}
		return nil
	}

	parent, _ = a.ensureParents(p, false)
	parent.children[p.Name()] = newDir(p)
	return nil
}

// AddDirectories calls AddDirectory for every path, stopping at the
// first error.
func (a *Archive) AddDirectories(ps ...vpath.Path) error {
	for _, p := range ps {
		if err := a.AddDirectory(p); err != nil {
			return err
		}
	}
	return nil
}

// ensureParents returns the directory that holds p. With dryRun set
// nothing is created, and the returned node is only meaningful when
// every parent exists; the call only checks that no file is in the
// way. Without dryRun missing directories are created.
func (a *Archive) ensureParents(p vpath.Path, dryRun bool) (*Node, error) {
	cur := a.root
	segs := p.Segments()
	if len(segs) == 0 {
		return cur, nil
	}

	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur.children[seg]
		if !ok {
			if dryRun {
				// nothing below a missing directory can be in the way
				return newDir(p.Parent()), nil
			}
			child, err := cur.path.Child(seg)
			if err != nil {
				return nil, err
			}
			next = newDir(child)
			cur.children[seg] = next
		}
		if !next.IsDir() {
			return nil, errors.Wrapf(ErrPathIsFile, "%s is in the way of %s", next.path, p)
		}
		cur = next
	}
	return cur, nil
}

// Get returns the node at p, or nil when there is none.
func (a *Archive) Get(p vpath.Path) *Node {
	if p.IsZero() {
		return nil
	}

	cur := a.root
	for _, seg := range p.Segments() {
		next, ok := cur.children[seg]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Contains reports whether there is a node at p.
func (a *Archive) Contains(p vpath.Path) bool {
	return a.Get(p) != nil
}

// Delete removes the subtree rooted at p and reports whether anything
// was removed. Deleting the root removes all of its children.
func (a *Archive) Delete(p vpath.Path) bool {
	if p.IsZero() {
		return false
	}
	if p.IsRoot() {
		removed := len(a.root.children) > 0
		a.root.children = make(map[string]*Node)
		return removed
	}

	parent := a.Get(p.Parent())
	if parent == nil || !parent.IsDir() {
		return false
	}
	if _, ok := parent.children[p.Name()]; !ok {
		return false
	}
	delete(parent.children, p.Name())
	return true
}

// Len returns the number of nodes in the archive, not counting the
// root.
func (a *Archive) Len() int {
	return a.root.count()
}

// Content returns the nodes accepted by f in path order, excluding the
// root. A nil filter accepts everything. The sequence is lazy and reads
// the tree as it goes, so the archive must not be mutated while it is
// being consumed.
func (a *Archive) Content(f filter.Filter) iter.Seq2[vpath.Path, *Node] {
	return func(yield func(vpath.Path, *Node) bool) {
		a.root.walk(func(n *Node) bool {
			if !f.Include(n.path) {
				return true
			}
			return yield(n.path, n)
		})
	}
}

// Merge copies every node of other accepted by f into a, below target.
// Files replace existing files, as with Add.
func (a *Archive) Merge(other *Archive, target vpath.Path, f filter.Filter) error {
	if other == nil {
		return errors.Wrap(ErrIllegalArgument, "merge requires an archive")
	}
	if target.IsZero() {
		return errors.Wrap(ErrIllegalArgument, "merge requires a target path")
	}

	// collect first so merging an archive into itself terminates
	type entry struct {
		p vpath.Path
		n *Node
	}
	var entries []entry
	for p, n := range other.Content(f) {
		entries = append(entries, entry{p, n})
	}

	for _, e := range entries {
		np, ok := e.p.Rebase(vpath.Root, target)
		if !ok {
			return errors.Wrapf(ErrIllegalArgument, "cannot move %s below %s", e.p, target)
		}

		var err error
		if e.n.IsDir() {
			err = a.AddDirectory(np)
		} else {
			err = a.Add(np, e.n.asset)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// replaceContent swaps the tree of a for the tree of other.
func (a *Archive) replaceContent(other *Archive) {
	a.root = other.root
}
