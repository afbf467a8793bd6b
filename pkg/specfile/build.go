// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"fmt"
	"math"
	"strings"

	"github.com/yeetrun/clopt/pkg/optparse"
)

var parsers = map[string]func(string) (any, error){
	"":         optparse.String,
	"string":   optparse.String,
	"int":      optparse.Int,
	"uint":     optparse.Uint,
	"float":    optparse.Float,
	"bool":     optparse.Bool,
	"duration": optparse.Duration,
	"url":      optparse.URL,
	"port":     optparse.Port(0, 0),
}

var accumulators = map[string]func(prev, v any) any{
	"":       nil,
	"last":   nil,
	"max":    optparse.Max,
	"min":    optparse.Min,
	"append": optparse.Append,
	"sum":    optparse.Sum,
}

func isNumeric(typ string) bool {
	switch typ {
	case "int", "uint", "float", "port":
		return true
	}
	return false
}

// Specs converts the declarations into optparse specs.
func (f *File) Specs() ([]optparse.Spec, error) {
	specs := make([]optparse.Spec, 0, len(f.Options))
	for i, o := range f.Options {
		s, err := o.spec()
		if err != nil {
			name := o.Long
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("%s: option %s: %w", f.displayName(), name, err)
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func (o Option) spec() (optparse.Spec, error) {
	s := optparse.Spec{
		ID:          o.ID,
		Short:       normalizeFlag(o.Short, "-"),
		Long:        normalizeFlag(o.Long, "--"),
		Arg:         o.Arg,
		Desc:        o.Desc,
		DefaultDesc: o.DefaultDesc,
		Negatable:   o.Negatable,
	}
	if o.Long == "" {
		return s, fmt.Errorf("long flag is required")
	}
	if o.Required {
		s.Required = "Missing required option " + s.Long
	}
	if o.Arg == "" {
		return s, o.boolSpec(&s)
	}

	parse, ok := parsers[o.Type]
	if !ok {
		return s, fmt.Errorf("unknown type %q", o.Type)
	}
	assoc, ok := accumulators[o.Accumulate]
	if !ok {
		return s, fmt.Errorf("unknown accumulate mode %q", o.Accumulate)
	}
	if o.Type == "port" && (o.Min != nil || o.Max != nil) {
		lo, hi := o.bounds(0, math.MaxUint16)
		if lo < 0 || hi > math.MaxUint16 {
			return s, fmt.Errorf("port range %v-%v out of bounds", lo, hi)
		}
		parse = optparse.Port(uint16(lo), uint16(hi))
	}
	s.Parse = parse
	s.Assoc = assoc

	validate, msg, err := o.validator()
	if err != nil {
		return s, err
	}
	if validate != nil {
		if o.Accumulate == "append" {
			validate = lastElement(validate)
		}
		s.Validate = validate
		s.ValidateMsg = msg
		if o.ValidateMsg != "" {
			s.ValidateMsg = o.ValidateMsg
		}
	}

	if o.Default != nil {
		raw := defaultString(o.Default)
		v, err := parse(raw)
		if err != nil {
			return s, fmt.Errorf("invalid default %q: %w", raw, err)
		}
		if o.Accumulate == "append" {
			v = []any{v}
		}
		s.Default = v
	}
	return s, nil
}

// boolSpec fills in a flag that takes no value.
func (o Option) boolSpec(s *optparse.Spec) error {
	if o.Type != "" && o.Type != "bool" {
		return fmt.Errorf("type %q needs an arg placeholder", o.Type)
	}
	if o.Min != nil || o.Max != nil || len(o.Choices) > 0 {
		return fmt.Errorf("boolean flags cannot be range or choice validated")
	}
	switch o.Accumulate {
	case "", "last":
		if o.Default != nil {
			v, err := optparse.Bool(defaultString(o.Default))
			if err != nil {
				return fmt.Errorf("invalid default: %w", err)
			}
			s.Default = v
		}
	case "count":
		if o.Negatable {
			return fmt.Errorf("counting flags cannot be negatable")
		}
		s.Assoc = optparse.Count
		s.Default = 0
		if o.Default != nil {
			v, err := optparse.Int(defaultString(o.Default))
			if err != nil {
				return fmt.Errorf("invalid default: %w", err)
			}
			s.Default = v
		}
	default:
		return fmt.Errorf("accumulate mode %q needs an arg placeholder", o.Accumulate)
	}
	return nil
}

func (o Option) bounds(lo, hi float64) (float64, float64) {
	if o.Min != nil {
		lo = *o.Min
	}
	if o.Max != nil {
		hi = *o.Max
	}
	return lo, hi
}

func (o Option) validator() (func(any) bool, string, error) {
	var checks []func(any) bool
	var msgs []string

	if (o.Min != nil || o.Max != nil) && o.Type != "port" {
		if !isNumeric(o.Type) {
			return nil, "", fmt.Errorf("min/max need a numeric type, have %q", o.Type)
		}
		lo, hi := o.bounds(math.Inf(-1), math.Inf(1))
		checks = append(checks, optparse.FloatRange(lo, hi))
		switch {
		case o.Min != nil && o.Max != nil:
			msgs = append(msgs, fmt.Sprintf("Must be between %v and %v", lo, hi))
		case o.Min != nil:
			msgs = append(msgs, fmt.Sprintf("Must be at least %v", lo))
		default:
			msgs = append(msgs, fmt.Sprintf("Must be at most %v", hi))
		}
	}
	if len(o.Choices) > 0 {
		checks = append(checks, optparse.OneOf(o.Choices...))
		msgs = append(msgs, "Must be one of "+strings.Join(o.Choices, ", "))
	}

	switch len(checks) {
	case 0:
		return nil, "", nil
	case 1:
		return checks[0], msgs[0], nil
	}
	return func(v any) bool {
		for _, c := range checks {
			if !c(v) {
				return false
			}
		}
		return true
	}, strings.Join(msgs, "; "), nil
}

// lastElement applies validate to the value most recently appended.
func lastElement(validate func(any) bool) func(any) bool {
	return func(v any) bool {
		list, ok := v.([]any)
		if !ok || len(list) == 0 {
			return validate(v)
		}
		return validate(list[len(list)-1])
	}
}

func normalizeFlag(flag, prefix string) string {
	if flag == "" || strings.HasPrefix(flag, "-") {
		return flag
	}
	return prefix + flag
}

func defaultString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
