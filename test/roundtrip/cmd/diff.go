package cmd

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffLines compares two texts line by line and returns the differences in a
// unified style, or an empty string when the texts are the same. Line endings
// are dropped from the output.
func diffLines(want, got string) string {
	if want == got {
		return ""
	}

	dmp := diffmatchpatch.New()
	cw, cg, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(cw, cg, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(strings.TrimRight(line, "\r\n"))
			buf.WriteString("\n")
		}
	}

	return buf.String()
}
