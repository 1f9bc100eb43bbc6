package output

import (
	"fmt"
	"slices"
	"strings"
)

// Change is the kind of change of one IR element.
type Change string

const (
	ChangeAdded    Change = "added"
	ChangeRemoved  Change = "removed"
	ChangeModified Change = "modified"
)

func (c Change) marker() string {
	switch c {
	case ChangeAdded:
		return "+"
	case ChangeRemoved:
		return "-"
	default:
		return "~"
	}
}

func (c Change) style(styles *Styles) func(...string) string {
	switch c {
	case ChangeAdded:
		return styles.Success.Render
	case ChangeRemoved:
		return styles.Error.Render
	default:
		return styles.Warning.Render
	}
}

// DiffEntry is one changed IR element keyed as kind/name.
type DiffEntry struct {
	Key    string
	Change Change

	// Diff is the rendered content diff of a modified element.
	Diff string
}

// irSections orders diff entries the way the IR document lists them.
var irSections = []string{"module", "parameter", "port", "wire", "subblock", "snippet"}

func sectionRank(key string) int {
	kind, _, _ := strings.Cut(key, "/")
	if i := slices.Index(irSections, kind); i >= 0 {
		return i
	}
	return len(irSections)
}

// RenderIRDiff renders IR element changes in IR section order. Entries of
// the same section keep their relative order. Returns the empty string
// when there are no entries.
func RenderIRDiff(entries []DiffEntry, styles *Styles) string {
	if len(entries) == 0 {
		return ""
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b DiffEntry) int {
		return sectionRank(a.Key) - sectionRank(b.Key)
	})

	width := 0
	for _, e := range sorted {
		width = max(width, len(e.Key))
	}

	counts := map[Change]int{}
	var sb strings.Builder
	for _, e := range sorted {
		counts[e.Change]++
		render := e.Change.style(styles)
		fmt.Fprintf(&sb, "%s %s%s  %s\n",
			render(e.Change.marker()),
			styles.Noun.Render(e.Key),
			strings.Repeat(" ", width-len(e.Key)),
			render(string(e.Change)))
		if e.Change == ChangeModified {
			sb.WriteString(IndentDiff(e.Diff, "    "))
		}
	}

	var parts []string
	for _, c := range []Change{ChangeAdded, ChangeRemoved, ChangeModified} {
		if counts[c] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[c], c))
		}
	}
	noun := "changes"
	if len(sorted) == 1 {
		noun = "change"
	}
	fmt.Fprintf(&sb, "\n%s\n", styles.Bold.Render(fmt.Sprintf("%d %s: %s", len(sorted), noun, strings.Join(parts, ", "))))
	return sb.String()
}

// IndentDiff prefixes every non-blank line of diff with indent.
func IndentDiff(diff, indent string) string {
	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString(indent + line + "\n")
	}
	return sb.String()
}
