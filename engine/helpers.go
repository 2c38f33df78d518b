package engine

import (
	"math"
	"strconv"
	"strings"
)

// coerceNumber is the number-coercion rule used by binary arithmetic
// (spec.md §4.5/§4.8): numbers pass through, non-empty numeric strings are
// parsed, empty cells (nil) coerce to 0, and booleans are deliberately NOT
// coerced — per spec.md §9's open question, arithmetic on a logical value
// must yield #VALUE!, not treat TRUE/FALSE as 1/0.
func coerceNumber(v Value) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		if x == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case nil:
		return 0, true
	default:
		return 0, false
	}
}

// flattenArgs performs spec.md §4.8's one-level flattening: Range_ values
// are spliced in, scalars are kept as-is. This mirrors how the evaluator
// hands a range to a function as a single sequence argument — functions
// never see nested sequences beyond one level.
func flattenArgs(args []Value) []Value {
	out := make([]Value, 0, len(args))
	for _, a := range args {
		if r, ok := a.(Range_); ok {
			out = append(out, r.Values...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// toNumberArray keeps finite numbers, parses non-empty strings via a
// permissive numeric parser and keeps the result when finite, and drops
// everything else silently — including logicals, per the same open
// question coerceNumber documents.
func toNumberArray(values []Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		switch x := v.(type) {
		case float64:
			if !math.IsNaN(x) && !math.IsInf(x, 0) {
				out = append(out, x)
			}
		case string:
			if x == "" {
				continue
			}
			if n, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				out = append(out, n)
			}
		}
	}
	return out
}

// truthy is the standard non-zero / non-empty / non-false interpretation.
func truthy(v Value) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case nil:
		return false
	default:
		return true
	}
}

// valueToString renders a value's text form; an absent (nil) value is the
// empty string.
func valueToString(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case *Error:
		return x.Code()
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// compareValues orders two already-evaluated scalars: numbers compare
// numerically, anything else compares by textual form lexicographically.
// Equal inputs compare equal. Returns -1, 0, or 1.
func compareValues(a, b Value) int {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	as, bs := valueToString(a), valueToString(b)
	return strings.Compare(as, bs)
}

// equalsValues is identity on equal numbers/strings/logicals, false
// otherwise (no cross-type coercion).
func equalsValues(a, b Value) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

// predicate is the callable shape criterion() produces.
type predicate func(candidate Value) bool

// criterion parses a leading comparison operator from `>=, <=, <>, =, >,
// <` (default `=` when none is present) and a trailing value, numbering
// the value when possible, and returns a predicate that applies the
// operator to candidates via compareValues/equalsValues.
func criterion(expr Value) predicate {
	text := valueToString(expr)

	ops := []string{">=", "<=", "<>", "=", ">", "<"}
	op := "="
	rest := text
	for _, candidate := range ops {
		if strings.HasPrefix(text, candidate) {
			op = candidate
			rest = text[len(candidate):]
			break
		}
	}

	var target Value = rest
	if n, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err == nil {
		target = n
	}

	return func(candidate Value) bool {
		switch op {
		case "=":
			return criterionEquals(candidate, target)
		case "<>":
			return !criterionEquals(candidate, target)
		case ">":
			return compareValues(candidate, target) > 0
		case ">=":
			return compareValues(candidate, target) >= 0
		case "<":
			return compareValues(candidate, target) < 0
		case "<=":
			return compareValues(candidate, target) <= 0
		default:
			return false
		}
	}
}

// criterionEquals coerces the candidate toward the target's type before
// comparing, so a numeric criterion ("=5") matches a cell holding the
// string "5" the way spreadsheet criteria conventionally do.
func criterionEquals(candidate, target Value) bool {
	if tn, ok := target.(float64); ok {
		if cn, ok := coerceNumber(candidate); ok {
			return cn == tn
		}
		return false
	}
	return valueToString(candidate) == valueToString(target)
}
