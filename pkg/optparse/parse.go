// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"strings"
)

const literalSeparator = "--"

// Option configures a Parser.
type Option func(*config)

type config struct {
	inOrder bool
	strict  bool
}

// InOrder stops option processing at the first positional argument; it and
// every token after it are returned as arguments.
func InOrder() Option {
	return func(c *config) { c.inOrder = true }
}

// Strict refuses to consume a known flag (or "--") as the value of an option
// that takes an argument, recording a missing-argument error instead.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// Parser holds a validated spec list. It is immutable and safe for
// concurrent use.
type Parser struct {
	specs   []Spec
	flags   map[string]int
	cfg     config
	summary string
}

// New validates specs and returns a Parser for them. It returns a
// *SpecError if an id or flag is declared twice or a flag is malformed.
func New(specs []Spec, opts ...Option) (*Parser, error) {
	compiled, flags, err := compile(specs)
	if err != nil {
		return nil, err
	}
	p := &Parser{specs: compiled, flags: flags, summary: Summary(compiled)}
	for _, o := range opts {
		o(&p.cfg)
	}
	return p, nil
}

// MustNew is like New but panics on an invalid spec list.
func MustNew(specs []Spec, opts ...Option) *Parser {
	p, err := New(specs, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse validates specs and parses args against them. The error is non-nil
// only when specs are invalid; problems with args are reported in
// Result.Errors.
func Parse(args []string, specs []Spec, opts ...Option) (*Result, error) {
	p, err := New(specs, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse(args), nil
}

// Specs returns a copy of the normalized specs.
func (p *Parser) Specs() []Spec {
	return append([]Spec(nil), p.specs...)
}

// Summary returns the formatted option table.
func (p *Parser) Summary() string { return p.summary }

// Result is the outcome of one Parse call.
type Result struct {
	// Options maps spec ids to resolved values.
	Options map[string]any
	// Args holds the positional arguments in order.
	Args []string
	// Errors holds one message per problem, in encounter order.
	Errors []string
	// Summary is the formatted option table.
	Summary string

	errs []error
}

// Err returns the recorded errors joined together, or nil.
func (r *Result) Err() error {
	return errors.Join(r.errs...)
}

func (r *Result) fail(err error) {
	r.errs = append(r.errs, err)
	r.Errors = append(r.Errors, err.Error())
}

// Parse scans args left to right. It never fails; see Result.Errors.
func (p *Parser) Parse(args []string) *Result {
	res := &Result{
		Options: make(map[string]any, len(p.specs)),
		Args:    []string{},
		Errors:  []string{},
		Summary: p.summary,
	}
	for _, s := range p.specs {
		if s.Default != nil {
			res.Options[s.ID] = s.Default
		}
	}

	literal := false
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if literal {
			res.Args = append(res.Args, tok)
			continue
		}
		if tok == literalSeparator {
			literal = true
			continue
		}
		if !strings.HasPrefix(tok, "-") || tok == "-" {
			res.Args = append(res.Args, tok)
			if p.cfg.inOrder {
				literal = true
			}
			continue
		}

		flag, inline, hasInline := tok, "", false
		idx, ok := p.flags[flag]
		if !ok && strings.HasPrefix(tok, "--") {
			if name, value, found := strings.Cut(tok, "="); found {
				if j, known := p.flags[name]; known {
					flag, inline, hasInline, idx, ok = name, value, true, j, true
				}
			}
		}
		if !ok {
			res.fail(&UnknownOptionError{Token: tok})
			continue
		}
		s := p.specs[idx]

		if !s.takesArg() {
			if hasInline {
				res.fail(&UnexpectedArgumentError{Flag: flag})
				continue
			}
			val := flag != s.negation() || !s.Negatable
			p.commit(res, s, flag, "", val)
			continue
		}

		raw := inline
		if !hasInline {
			if i+1 >= len(args) || (p.cfg.strict && p.stops(args[i+1])) {
				res.fail(&MissingArgumentError{Flag: flag})
				continue
			}
			i++
			raw = args[i]
		}

		var parsed any = raw
		if s.Parse != nil {
			v, err := s.Parse(raw)
			if err != nil {
				res.fail(&ParseError{Flag: flag, Value: raw, Err: err})
				continue
			}
			parsed = v
		}
		p.commit(res, s, flag, raw, parsed)
	}

	p.finish(res)
	return res
}

// commit accumulates v into the option and validates the candidate. A
// rejected candidate leaves the previous value in place.
func (p *Parser) commit(res *Result, s Spec, flag, raw string, v any) {
	prev := res.Options[s.ID]
	candidate := v
	if s.Assoc != nil {
		candidate = s.Assoc(prev, v)
	}
	if s.Validate != nil && !s.Validate(candidate) {
		res.fail(&ValidationError{Flag: flag, Value: raw, Message: s.ValidateMsg})
		return
	}
	res.Options[s.ID] = candidate
}

func (p *Parser) stops(tok string) bool {
	if tok == literalSeparator {
		return true
	}
	if _, ok := p.flags[tok]; ok {
		return true
	}
	name, _, _ := strings.Cut(tok, "=")
	_, ok := p.flags[name]
	return ok && strings.HasPrefix(tok, "--")
}

// finish applies computed defaults and required checks in spec order.
func (p *Parser) finish(res *Result) {
	for _, s := range p.specs {
		if s.DefaultFn == nil {
			continue
		}
		if _, ok := res.Options[s.ID]; ok {
			continue
		}
		if v := s.DefaultFn(res.Options); v != nil {
			res.Options[s.ID] = v
		}
	}
	for _, s := range p.specs {
		if s.Required == "" {
			continue
		}
		if _, ok := res.Options[s.ID]; !ok {
			res.fail(&MissingRequiredError{ID: s.ID, Message: s.Required})
		}
	}
}
