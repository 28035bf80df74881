package ui

import (
	"fmt"
	"path"
	"sort"
)

// Entry is one leaf of a tree: a path and, for symlinks, its target.
type Entry struct {
	Path   string
	Target string
}

// Tree writes name followed by its entries, grouped by directory and
// drawn with box characters:
//
//	claude:
//	    ├── CLAUDE.md
//	    └── .claude/commands/ai-rules/hello.md -> ../../../ai-rules/commands/hello.md
func (p *Printer) Tree(name string, entries []Entry) {
	if len(entries) == 0 {
		return
	}

	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := path.Dir(sorted[i].Path), path.Dir(sorted[j].Path)
		if di != dj {
			return di < dj
		}
		return sorted[i].Path < sorted[j].Path
	})

	fmt.Fprintf(p.w, "    %s:\n", p.render(p.agent, name))
	for i, e := range sorted {
		branch := "├── "
		if i == len(sorted)-1 {
			branch = "└── "
		}
		line := e.Path
		if e.Target != "" {
			line += p.render(p.dim, " -> "+e.Target)
		}
		fmt.Fprintf(p.w, "        %s%s\n", p.render(p.dim, branch), line)
	}
	fmt.Fprintln(p.w)
}
