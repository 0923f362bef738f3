package filter_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/filter"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

func TestFilters(t *testing.T) {
	classFile := vpath.Must("/WEB-INF/classes/A.class")
	webXML := vpath.Must("/WEB-INF/web.xml")
	index := vpath.Must("/index.html")

	tests := []struct {
		name string
		f    filter.Filter
		want map[vpath.Path]bool
	}{
		{
			name: "all",
			f:    filter.All(),
			want: map[vpath.Path]bool{classFile: true, webXML: true, index: true},
		},
		{
			name: "nil behaves like all",
			f:    nil,
			want: map[vpath.Path]bool{classFile: true, webXML: true, index: true},
		},
		{
			name: "none",
			f:    filter.None(),
			want: map[vpath.Path]bool{classFile: false, webXML: false, index: false},
		},
		{
			name: "prefix",
			f:    filter.Prefix(vpath.Must("/WEB-INF")),
			want: map[vpath.Path]bool{classFile: true, webXML: true, index: false},
		},
		{
			name: "and not regex",
			f:    filter.And(filter.Prefix(vpath.Must("/WEB-INF")), filter.Not(filter.Regex(`\.class$`))),
			want: map[vpath.Path]bool{classFile: false, webXML: true, index: false},
		},
		{
			name: "or",
			f:    filter.Or(filter.Paths(index), filter.Regex(`\.xml$`)),
			want: map[vpath.Path]bool{classFile: false, webXML: true, index: true},
		},
		{
			name: "exclude",
			f:    filter.Exclude(`^/WEB-INF/`),
			want: map[vpath.Path]bool{classFile: false, webXML: false, index: true},
		},
		{
			name: "empty and is all, empty or is none",
			f:    filter.And(filter.And(), filter.Not(filter.Or())),
			want: map[vpath.Path]bool{classFile: true, webXML: true, index: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for p, want := range tt.want {
				assert.Equal(t, tt.f.Include(p), want, "path %s", p)
			}
		})
	}
}
