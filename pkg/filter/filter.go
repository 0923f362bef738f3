// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Composable path predicates used to select archive entries.

// Package filter implements predicates over archive paths. Filters are
// used to select a subset of entries during import, export and merge.
//
//	f := filter.And(filter.Prefix(vpath.Must("/WEB-INF")), filter.Not(filter.Regex(`\.class$`)))
package filter

import (
	"regexp"

	"github.com/getoutreach/archivebox/pkg/vpath"
)

// Filter reports whether a path should be included. Filters must be
// pure: the result may only depend on the path.
type Filter func(p vpath.Path) bool

// Include is a convenience for calling the filter, treating a nil
// filter as All.
func (f Filter) Include(p vpath.Path) bool {
	if f == nil {
		return true
	}
	return f(p)
}

// All includes every path.
func All() Filter {
	return func(vpath.Path) bool { return true }
}

// None excludes every path.
func None() Filter {
	return func(vpath.Path) bool { return false }
}

// And includes a path only when every filter includes it. And with no
// filters is All.
func And(fs ...Filter) Filter {
	return func(p vpath.Path) bool {
		for _, f := range fs {
			if !f.Include(p) {
				return false
			}
		}
		return true
	}
}

// Or includes a path when any filter includes it. Or with no filters
// is None.
func Or(fs ...Filter) Filter {
	return func(p vpath.Path) bool {
		for _, f := range fs {
			if f.Include(p) {
				return true
			}
		}
		return false
	}
}

// Not inverts f.
func Not(f Filter) Filter {
	return func(p vpath.Path) bool {
		return !f.Include(p)
	}
}

// Paths includes exactly the provided paths.
func Paths(ps ...vpath.Path) Filter {
	set := make(map[vpath.Path]struct{}, len(ps))
	for _, p := range ps {
		set[p] = struct{}{}
	}
	return func(p vpath.Path) bool {
		_, ok := set[p]
		return ok
	}
}

// Prefix includes base and everything below it.
func Prefix(base vpath.Path) Filter {
	return func(p vpath.Path) bool {
		return p.HasPrefix(base)
	}
}

// Regex includes paths whose normalized form matches any of the
// expressions. It panics if an expression does not compile, like
// regexp.MustCompile.
func Regex(exprs ...string) Filter {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(e))
	}
	return func(p vpath.Path) bool {
		for _, re := range res {
			if re.MatchString(p.String()) {
				return true
			}
		}
		return false
	}
}

// Exclude includes paths matching none of the expressions.
func Exclude(exprs ...string) Filter {
	return Not(Regex(exprs...))
}
