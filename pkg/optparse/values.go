// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// String returns the raw value unchanged.
func String(raw string) (any, error) { return raw, nil }

// Int parses a base-10 int.
func Int(raw string) (any, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid int value %q", raw)
	}
	return i, nil
}

// Uint parses a base-10 uint.
func Uint(raw string) (any, error) {
	u, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid uint value %q", raw)
	}
	return uint(u), nil
}

// Float parses a float64.
func Float(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid float value %q", raw)
	}
	return f, nil
}

// Bool parses the forms accepted by strconv.ParseBool.
func Bool(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid bool value %q", raw)
	}
	return b, nil
}

// Duration parses a time.Duration such as "1m30s".
func Duration(raw string) (any, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}

// URL parses an absolute URL into a *url.URL.
func URL(raw string) (any, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q", raw)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("invalid URL %q: missing scheme", raw)
	}
	return u, nil
}

// Port returns a parser for uint16 ports. When min and max are both zero any
// port is accepted; otherwise the port must lie in [min, max].
func Port(min, max uint16) func(string) (any, error) {
	return func(raw string) (any, error) {
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
				return nil, fmt.Errorf("port must be between 0 and 65535, got %q", raw)
			}
			return nil, fmt.Errorf("invalid port value %q", raw)
		}
		port := uint16(v)
		if (min != 0 || max != 0) && (port < min || port > max) {
			return nil, fmt.Errorf("port must be between %d-%d, got %d", min, max, port)
		}
		return port, nil
	}
}

// Enum returns a parser accepting only the given strings.
func Enum(choices ...string) func(string) (any, error) {
	return func(raw string) (any, error) {
		if slices.Contains(choices, raw) {
			return raw, nil
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(choices, "|"))
	}
}
