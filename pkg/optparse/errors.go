// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import "fmt"

// UnknownOptionError is recorded for a flag-like token that matches no spec.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("Unknown option: %q", e.Token)
}

// MissingArgumentError is recorded when an option that takes a value has
// none to consume.
type MissingArgumentError struct {
	Flag string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Missing argument for %s", e.Flag)
}

// UnexpectedArgumentError is recorded for "--flag=value" on a boolean flag.
type UnexpectedArgumentError struct {
	Flag string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("Option %s does not take an argument", e.Flag)
}

// ParseError is recorded when a Spec's Parse function rejects a raw value.
type ParseError struct {
	Flag  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error while parsing option %q: %v", e.Flag+" "+e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is recorded when a Spec's Validate function rejects a
// candidate value.
type ValidationError struct {
	Flag    string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invalid value"
	}
	tok := e.Flag
	if e.Value != "" {
		tok += " " + e.Value
	}
	return fmt.Sprintf("Failed to validate %q: %s", tok, msg)
}

// MissingRequiredError is recorded after the scan for a Required option that
// has no value.
type MissingRequiredError struct {
	ID      string
	Message string
}

func (e *MissingRequiredError) Error() string {
	return e.Message
}
