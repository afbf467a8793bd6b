// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"strings"
)

// Spec declares one recognized option.
type Spec struct {
	// ID keys the option in Result.Options. Derived from Long when empty.
	ID string
	// Short is an optional single-dash flag such as "-p".
	Short string
	// Long is the required double-dash flag such as "--port".
	Long string
	// Arg is the placeholder for the option's value (e.g. "PORT"). An empty
	// Arg makes the option a boolean flag.
	Arg string
	// Desc is shown in the summary.
	Desc string

	// Default is the value used when the option is never supplied. Nil means
	// no default.
	Default any
	// DefaultDesc overrides how the default is rendered in the summary.
	DefaultDesc string
	// DefaultFn computes a default after the scan for options that are still
	// unset, from the options resolved so far.
	DefaultFn func(opts map[string]any) any

	// Parse converts the raw value. Defaults to returning the string as-is.
	Parse func(raw string) (any, error)
	// Assoc combines the current value (nil if none) with a newly parsed one.
	// Defaults to Last.
	Assoc func(prev, v any) any
	// Validate reports whether a candidate value is acceptable. A rejected
	// candidate is discarded and ValidateMsg recorded.
	Validate    func(v any) bool
	ValidateMsg string

	// Required, when non-empty, is recorded as an error if the option has no
	// value after parsing.
	Required string
	// Negatable boolean flags also accept "--no-<name>", resolving to false.
	Negatable bool
}

// SpecError reports a malformed or ambiguous spec list.
type SpecError struct {
	Index  int    // index of the offending spec
	Flag   string // offending flag or id
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid option spec #%d (%s): %s", e.Index, e.Flag, e.Reason)
}

func (s Spec) id() string {
	if s.ID != "" {
		return s.ID
	}
	return strings.TrimPrefix(s.Long, "--")
}

func (s Spec) takesArg() bool { return s.Arg != "" }

func (s Spec) negation() string {
	return "--no-" + strings.TrimPrefix(s.Long, "--")
}

// compile normalizes specs and checks them for uniqueness.
func compile(specs []Spec) ([]Spec, map[string]int, error) {
	out := make([]Spec, len(specs))
	flags := make(map[string]int, len(specs)*2)
	ids := make(map[string]bool, len(specs))

	claim := func(i int, flag string) error {
		if j, ok := flags[flag]; ok {
			return &SpecError{Index: i, Flag: flag, Reason: fmt.Sprintf("flag already declared by spec #%d", j)}
		}
		flags[flag] = i
		return nil
	}

	for i, s := range specs {
		if !isLongFlag(s.Long) {
			return nil, nil, &SpecError{Index: i, Flag: s.Long, Reason: "long flag must look like --name"}
		}
		if s.Short != "" && !isShortFlag(s.Short) {
			return nil, nil, &SpecError{Index: i, Flag: s.Short, Reason: "short flag must look like -x"}
		}
		if s.Negatable && s.takesArg() {
			return nil, nil, &SpecError{Index: i, Flag: s.Long, Reason: "only boolean flags can be negatable"}
		}
		s.ID = s.id()
		if ids[s.ID] {
			return nil, nil, &SpecError{Index: i, Flag: s.ID, Reason: "duplicate id"}
		}
		ids[s.ID] = true

		if err := claim(i, s.Long); err != nil {
			return nil, nil, err
		}
		if s.Short != "" {
			if err := claim(i, s.Short); err != nil {
				return nil, nil, err
			}
		}
		if s.Negatable {
			if err := claim(i, s.negation()); err != nil {
				return nil, nil, err
			}
		}
		out[i] = s
	}
	return out, flags, nil
}

func isLongFlag(f string) bool {
	name, ok := strings.CutPrefix(f, "--")
	if !ok || name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	for _, r := range name {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func isShortFlag(f string) bool {
	r := []rune(f)
	return len(r) == 2 && r[0] == '-' && r[1] != '-' && r[1] != '=' && isNameRune(r[1])
}

func isNameRune(r rune) bool {
	return r == '-' || r == '_' || r == '.' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r == '?'
}
