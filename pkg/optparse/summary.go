// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	summaryIndent = "  "
	summaryGap    = "  "
)

// Summary formats one aligned line per spec:
//
//	-p, --port PORT  Port number      (default: 80)
//	    --verbose    Verbose output
//
// The result depends only on specs.
func Summary(specs []Spec) string {
	if len(specs) == 0 {
		return ""
	}
	flagCols := make([]string, len(specs))
	defaults := make([]string, len(specs))
	flagWidth, descWidth := 0, 0
	for i, s := range specs {
		flagCols[i] = flagColumn(s)
		defaults[i] = defaultColumn(s)
		flagWidth = max(flagWidth, utf8.RuneCountInString(flagCols[i]))
		descWidth = max(descWidth, utf8.RuneCountInString(s.Desc))
	}

	var b strings.Builder
	for i, s := range specs {
		var line strings.Builder
		line.WriteString(summaryIndent)
		line.WriteString(pad(flagCols[i], flagWidth))
		if descWidth > 0 {
			line.WriteString(summaryGap)
			line.WriteString(pad(s.Desc, descWidth))
		}
		if defaults[i] != "" {
			line.WriteString(summaryGap)
			line.WriteString(defaults[i])
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if i < len(specs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func flagColumn(s Spec) string {
	var b strings.Builder
	if s.Short != "" {
		b.WriteString(s.Short + ", ")
	} else {
		b.WriteString("    ")
	}
	b.WriteString(s.Long)
	if s.Negatable {
		b.WriteString(", " + s.negation())
	}
	if s.takesArg() {
		b.WriteString(" " + s.Arg)
	}
	return b.String()
}

func defaultColumn(s Spec) string {
	switch {
	case s.DefaultDesc != "":
		return "(default: " + s.DefaultDesc + ")"
	case s.Default != nil:
		return fmt.Sprintf("(default: %v)", s.Default)
	}
	return ""
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
