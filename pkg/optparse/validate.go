// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import (
	"fmt"
	"slices"
)

// IntRange accepts integers (of any width) in [min, max].
func IntRange(min, max int64) func(any) bool {
	return func(v any) bool {
		switch v.(type) {
		case float32, float64:
			return false
		}
		f, ok := toFloat(v)
		return ok && f >= float64(min) && f <= float64(max)
	}
}

// FloatRange accepts any number in [min, max].
func FloatRange(min, max float64) func(any) bool {
	return func(v any) bool {
		f, ok := toFloat(v)
		return ok && f >= min && f <= max
	}
}

// OneOf accepts values whose string form is one of values.
func OneOf(values ...string) func(any) bool {
	return func(v any) bool {
		return slices.Contains(values, fmt.Sprint(v))
	}
}

// NotEmpty rejects the empty string.
func NotEmpty(v any) bool {
	s, ok := v.(string)
	return !ok || s != ""
}
