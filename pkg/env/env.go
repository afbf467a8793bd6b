// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env renders parsed option values as shell environment
// assignments.
package env

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Key returns the variable name for an option id: prefix plus the id
// upper-cased, with dashes and dots replaced by underscores.
func Key(prefix, id string) string {
	r := strings.NewReplacer("-", "_", ".", "_")
	return prefix + strings.ToUpper(r.Replace(id))
}

// Write writes one KEY=VALUE line per option, sorted by key. Nil values are
// skipped; lists are joined with spaces.
func Write(w io.Writer, prefix string, opts map[string]any) error {
	keys := make([]string, 0, len(opts))
	for k, v := range opts {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", Key(prefix, k), Quote(Format(opts[k]))); err != nil {
			return fmt.Errorf("failed to write %s: %w", k, err)
		}
	}
	return nil
}

// Format renders a value the way it appears on the right of the '='.
func Format(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Format(e)
		}
		return strings.Join(parts, " ")
	case []string:
		return strings.Join(v, " ")
	}
	return fmt.Sprint(v)
}

// Quote single-quotes s unless it is made only of characters that need no
// quoting in a POSIX shell.
func Quote(s string) string {
	if s != "" && strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return false
	}
	return !strings.ContainsRune("_./:-@%+,=", r)
}
