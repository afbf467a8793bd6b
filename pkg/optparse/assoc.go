// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optparse

import "time"

// Last keeps the newest value. It is the default Assoc.
func Last(_, v any) any { return v }

// Count ignores the value and counts occurrences. Use with a boolean flag and
// an int Default (typically 0).
func Count(prev, _ any) any {
	n, _ := prev.(int)
	return n + 1
}

// Append collects every value into a []any.
func Append(prev, v any) any {
	list, _ := prev.([]any)
	out := make([]any, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

type combineOp int

const (
	opMax combineOp = iota
	opMin
	opSum
)

// Max keeps the largest numeric value seen. Non-numeric values replace prev.
func Max(prev, v any) any {
	return combine(prev, v, opMax)
}

// Min keeps the smallest numeric value seen. Non-numeric values replace prev.
func Min(prev, v any) any {
	return combine(prev, v, opMin)
}

// Sum adds numeric values. The result has the type of v.
func Sum(prev, v any) any {
	return combine(prev, v, opSum)
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// combine applies op in v's own type when prev has that type too, and
// through float64 otherwise.
func combine(prev, v any, op combineOp) any {
	if out, ok := combineSame(prev, v, op); ok {
		return out
	}
	a, okA := toFloat(prev)
	b, okB := toFloat(v)
	if !okA || !okB {
		return v
	}
	switch op {
	case opMax:
		if b > a {
			return v
		}
		return fromFloat(a, v)
	case opMin:
		if b < a {
			return v
		}
		return fromFloat(a, v)
	}
	return fromFloat(a+b, v)
}

func combineSame(prev, v any, op combineOp) (any, bool) {
	switch n := v.(type) {
	case int:
		return apply(prev, n, op)
	case int8:
		return apply(prev, n, op)
	case int16:
		return apply(prev, n, op)
	case int32:
		return apply(prev, n, op)
	case int64:
		return apply(prev, n, op)
	case uint:
		return apply(prev, n, op)
	case uint8:
		return apply(prev, n, op)
	case uint16:
		return apply(prev, n, op)
	case uint32:
		return apply(prev, n, op)
	case uint64:
		return apply(prev, n, op)
	case float32:
		return apply(prev, n, op)
	case float64:
		return apply(prev, n, op)
	case time.Duration:
		return apply(prev, n, op)
	}
	return nil, false
}

func apply[T number](prev any, v T, op combineOp) (any, bool) {
	a, ok := prev.(T)
	if !ok {
		return nil, false
	}
	switch op {
	case opMax:
		return max(a, v), true
	case opMin:
		return min(a, v), true
	}
	return a + v, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case time.Duration:
		return float64(n), true
	}
	return 0, false
}

// fromFloat converts f to the numeric type of like.
func fromFloat(f float64, like any) any {
	switch like.(type) {
	case int:
		return int(f)
	case int8:
		return int8(f)
	case int16:
		return int16(f)
	case int32:
		return int32(f)
	case int64:
		return int64(f)
	case uint:
		return uint(f)
	case uint8:
		return uint8(f)
	case uint16:
		return uint16(f)
	case uint32:
		return uint32(f)
	case uint64:
		return uint64(f)
	case float32:
		return float32(f)
	case time.Duration:
		return time.Duration(f)
	}
	return f
}
