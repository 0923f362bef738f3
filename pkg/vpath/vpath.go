// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Implements the normalized hierarchical path type used to
// address entries inside an archive.

// Package vpath implements normalized, slash separated paths that address
// entries inside a virtual archive.
//
// A Path always starts with the root separator, never contains doubled
// separators and never ends with a separator (except the root itself):
//
//	p, err := vpath.Normalize("a//b/c/")
//	// p.String() == "/a/b/c"
//
// Paths must only be built through Normalize, Join and the methods on Path
// so the normalization invariant holds everywhere.
package vpath

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/orerr"
)

// Separator is the path separator used by every Path.
const Separator = "/"

// ErrMalformedPath is returned when a raw string cannot be normalized.
const ErrMalformedPath orerr.SentinelError = "malformed path"

// Root is the path of the root directory of an archive.
//
//nolint:gochecknoglobals // Why: immutable value
var Root = Path{s: Separator}

// Path is an immutable, normalized hierarchical name. The zero value
// is not a valid path; see IsZero.
type Path struct {
	s string
}

// Normalize converts raw into a Path. Backslashes are treated as
// separators, repeated separators are collapsed, "." segments are
// dropped and a leading separator is added when missing. The empty
// string normalizes to Root.
//
// Raw input containing a NUL byte or a ".." segment is rejected with
// ErrMalformedPath.
func Normalize(raw string) (Path, error) {
	if strings.IndexByte(raw, 0) >= 0 {
		return Path{}, errors.Wrapf(ErrMalformedPath, "%q contains a null element", raw)
	}

	raw = strings.ReplaceAll(raw, "\\", Separator)
	segs := make([]string, 0, strings.Count(raw, Separator)+1)
	for _, seg := range strings.Split(raw, Separator) {
		switch seg {
		case "", ".":
			continue
		case "..":
			return Path{}, errors.Wrapf(ErrMalformedPath, "%q escapes its parent", raw)
		}
		segs = append(segs, seg)
	}

	return Path{s: Separator + strings.Join(segs, Separator)}, nil
}

// Must is like Normalize but panics on error. It is meant for
// constants and tests.
func Must(raw string) Path {
	p, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Join appends child, which may contain separators, to parent.
// Joining the empty string returns parent unchanged.
func Join(parent Path, child string) (Path, error) {
	if parent.IsZero() {
		return Path{}, errors.Wrap(ErrMalformedPath, "join on an empty parent")
	}
	if child == "" {
		return parent, nil
	}
	return Normalize(parent.s + Separator + child)
}

// String returns the normalized form of the path.
func (p Path) String() string {
	return p.s
}

// IsZero reports whether p is the zero value, i.e. was never
// normalized.
func (p Path) IsZero() bool {
	return p.s == ""
}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool {
	return p.s == Separator
}

// Segments returns the names that make up the path, root first. The
// root path has no segments.
func (p Path) Segments() []string {
	if p.IsZero() || p.IsRoot() {
		return nil
	}
	return strings.Split(p.s[1:], Separator)
}

// Name returns the last segment of the path, or the empty string for
// the root.
func (p Path) Name() string {
	if p.IsZero() || p.IsRoot() {
		return ""
	}
	return p.s[strings.LastIndex(p.s, Separator)+1:]
}

// Parent returns the parent of p. The parent of the root is the root.
func (p Path) Parent() Path {
	if p.IsZero() || p.IsRoot() {
		return Root
	}
	i := strings.LastIndex(p.s, Separator)
	if i == 0 {
		return Root
	}
	return Path{s: p.s[:i]}
}

// Child returns the direct child of p called name. name must be a
// single segment; use Join for multi segment names.
func (p Path) Child(name string) (Path, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return Path{}, errors.Wrapf(ErrMalformedPath, "%q is not a single path segment", name)
	}
	return Join(p, name)
}

// HasPrefix reports whether p equals prefix or lives below it.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.IsRoot() {
		return !p.IsZero()
	}
	return p.s == prefix.s || strings.HasPrefix(p.s, prefix.s+Separator)
}

// Rel returns p relative to base without a leading separator. ok is
// false when p is not below base.
func (p Path) Rel(base Path) (rel string, ok bool) {
	if !p.HasPrefix(base) {
		return "", false
	}
	if base.IsRoot() {
		return p.s[1:], true
	}
	return strings.TrimPrefix(p.s[len(base.s):], Separator), true
}

// Rebase moves p from below from to below to. It returns false when p
// is not below from.
func (p Path) Rebase(from, to Path) (Path, bool) {
	rel, ok := p.Rel(from)
	if !ok {
		return Path{}, false
	}
	// rel is already normalized, so this cannot fail.
	np, err := Join(to, rel)
	if err != nil {
		return Path{}, false
	}
	return np, true
}

// Depth returns the number of segments in the path.
func (p Path) Depth() int {
	return len(p.Segments())
}

// Compare orders paths segment by segment, so that a directory sorts
// immediately before its descendants. It returns -1, 0 or +1.
func Compare(a, b Path) int {
	as, bs := a.s, b.s
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		ca, cb := as[i], bs[i]
		if ca == cb {
			continue
		}
		// the separator sorts before every other byte
		switch {
		case ca == '/':
			return -1
		case cb == '/':
			return 1
		case ca < cb:
			return -1
		default:
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, normalizing the
// input.
func (p *Path) UnmarshalText(b []byte) error {
	np, err := Normalize(string(b))
	if err != nil {
		return err
	}
	*p = np
	return nil
}
