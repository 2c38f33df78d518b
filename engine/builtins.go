package engine

import (
	"math"
	"sort"
	"strings"
)

// RegisterBuiltins installs the default function library into r. Functions
// are grouped here by what spec.md §4.8 and its §4.9 supplement call out;
// the grouping is purely organizational, every name lands in the same flat
// registry.
func RegisterBuiltins(r *Registry) {
	registerAggregates(r)
	registerLogical(r)
	registerComparisons(r)
	registerText(r)
	registerMath(r)
	registerConditional(r)
	registerLookup(r)
	registerInfo(r)
}

func arg(args []Value, i int) Value {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

func firstError(values []Value) *Error {
	for _, v := range values {
		if e, ok := v.(*Error); ok {
			return e
		}
	}
	return nil
}

// registerAggregates wires SUM, AVERAGE, MIN, MAX, COUNT, COUNTA, MEDIAN,
// and MODE, all of which flatten their arguments (splicing in ranges) and
// then run over whatever numbers survive coercion.
func registerAggregates(r *Registry) {
	r.Register("SUM", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		sum := 0.0
		for _, n := range toNumberArray(flat) {
			sum += n
		}
		return sum
	})

	r.Register("AVERAGE", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		nums := toNumberArray(flat)
		if len(nums) == 0 {
			return 0.0
		}
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		return sum / float64(len(nums))
	})

	r.Register("MIN", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		nums := toNumberArray(flat)
		if len(nums) == 0 {
			return 0.0
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n < m {
				m = n
			}
		}
		return m
	})

	r.Register("MAX", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		nums := toNumberArray(flat)
		if len(nums) == 0 {
			return 0.0
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return m
	})

	r.Register("COUNT", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		n := 0
		for _, v := range flat {
			if f, ok := v.(float64); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
				n++
			}
		}
		return float64(n)
	})

	r.Register("COUNTA", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		n := 0
		for _, v := range flat {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			n++
		}
		return float64(n)
	})

	r.Register("MEDIAN", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		nums := toNumberArray(flat)
		if len(nums) == 0 {
			return NewError(ErrNum, "MEDIAN of zero numeric values")
		}
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	})

	r.Register("MODE", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		nums := toNumberArray(flat)
		counts := make(map[float64]int)
		order := make([]float64, 0)
		for _, n := range nums {
			if counts[n] == 0 {
				order = append(order, n)
			}
			counts[n]++
		}
		best, bestCount := 0.0, 0
		for _, n := range order {
			if counts[n] > bestCount {
				best, bestCount = n, counts[n]
			}
		}
		if bestCount < 2 {
			return NewError(ErrNA, "MODE found no repeated value")
		}
		return best
	})
}

// registerLogical wires IF, AND, OR, NOT.
func registerLogical(r *Registry) {
	r.Register("IF", func(args []Value, fctx FuncContext) Value {
		cond := arg(args, 0)
		if e, ok := cond.(*Error); ok {
			return e
		}
		if truthy(cond) {
			return arg(args, 1)
		}
		if len(args) < 3 {
			return false
		}
		return arg(args, 2)
	})

	r.Register("AND", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		for _, v := range flat {
			if !truthy(v) {
				return false
			}
		}
		return true
	})

	r.Register("OR", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		for _, v := range flat {
			if truthy(v) {
				return true
			}
		}
		return false
	})

	r.Register("NOT", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		return !truthy(v)
	})
}

// registerComparisons wires the six comparison functions. The grammar has
// no comparison operators of its own (spec.md §4.3 only defines the four
// arithmetic operators), so "A1 > B1"-style logic is expressed as
// GT(A1, B1) instead.
func registerComparisons(r *Registry) {
	register2 := func(name string, cmp func(a, b Value) bool) {
		r.Register(name, func(args []Value, fctx FuncContext) Value {
			a, b := arg(args, 0), arg(args, 1)
			if e, ok := a.(*Error); ok {
				return e
			}
			if e, ok := b.(*Error); ok {
				return e
			}
			return cmp(a, b)
		})
	}
	register2("EQ", func(a, b Value) bool { return equalsValues(a, b) })
	register2("NE", func(a, b Value) bool { return !equalsValues(a, b) })
	register2("GT", func(a, b Value) bool { return compareValues(a, b) > 0 })
	register2("GTE", func(a, b Value) bool { return compareValues(a, b) >= 0 })
	register2("LT", func(a, b Value) bool { return compareValues(a, b) < 0 })
	register2("LTE", func(a, b Value) bool { return compareValues(a, b) <= 0 })
}

// registerText wires CONCAT, LEN, UPPER, LOWER, TRIM.
func registerText(r *Registry) {
	r.Register("CONCAT", func(args []Value, fctx FuncContext) Value {
		flat := flattenArgs(args)
		if e := firstError(flat); e != nil {
			return e
		}
		var b strings.Builder
		for _, v := range flat {
			b.WriteString(valueToString(v))
		}
		return b.String()
	})

	r.Register("LEN", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		return float64(len(valueToString(v)))
	})

	r.Register("UPPER", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		return strings.ToUpper(valueToString(v))
	})

	r.Register("LOWER", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		return strings.ToLower(valueToString(v))
	})

	r.Register("TRIM", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		fields := strings.Fields(valueToString(v))
		return strings.Join(fields, " ")
	})
}

// registerMath wires ABS, ROUND, FLOOR, CEILING, SQRT, POWER, MOD, PI.
func registerMath(r *Registry) {
	unary := func(name string, f func(float64) Value) {
		r.Register(name, func(args []Value, fctx FuncContext) Value {
			v := arg(args, 0)
			if e, ok := v.(*Error); ok {
				return e
			}
			n, ok := coerceNumber(v)
			if !ok {
				return NewError(ErrValue, name+" requires a numeric argument")
			}
			return f(n)
		})
	}

	unary("ABS", func(n float64) Value { return math.Abs(n) })
	unary("SQRT", func(n float64) Value {
		if n < 0 {
			return NewError(ErrNum, "SQRT of a negative number")
		}
		return math.Sqrt(n)
	})

	r.Register("ROUND", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		n, ok := coerceNumber(v)
		if !ok {
			return NewError(ErrValue, "ROUND requires a numeric argument")
		}
		digits := 0.0
		if len(args) > 1 {
			d, ok := coerceNumber(arg(args, 1))
			if !ok {
				return NewError(ErrValue, "ROUND requires a numeric digit count")
			}
			digits = d
		}
		scale := math.Pow(10, digits)
		return math.Round(n*scale) / scale
	})

	r.Register("FLOOR", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		n, ok := coerceNumber(v)
		if !ok {
			return NewError(ErrValue, "FLOOR requires a numeric argument")
		}
		return math.Floor(n)
	})

	r.Register("CEILING", func(args []Value, fctx FuncContext) Value {
		v := arg(args, 0)
		if e, ok := v.(*Error); ok {
			return e
		}
		n, ok := coerceNumber(v)
		if !ok {
			return NewError(ErrValue, "CEILING requires a numeric argument")
		}
		return math.Ceil(n)
	})

	r.Register("POWER", func(args []Value, fctx FuncContext) Value {
		base, exp := arg(args, 0), arg(args, 1)
		if e, ok := base.(*Error); ok {
			return e
		}
		if e, ok := exp.(*Error); ok {
			return e
		}
		bn, ok1 := coerceNumber(base)
		en, ok2 := coerceNumber(exp)
		if !ok1 || !ok2 {
			return NewError(ErrValue, "POWER requires two numeric arguments")
		}
		return math.Pow(bn, en)
	})

	r.Register("MOD", func(args []Value, fctx FuncContext) Value {
		a, b := arg(args, 0), arg(args, 1)
		if e, ok := a.(*Error); ok {
			return e
		}
		if e, ok := b.(*Error); ok {
			return e
		}
		an, ok1 := coerceNumber(a)
		bn, ok2 := coerceNumber(b)
		if !ok1 || !ok2 {
			return NewError(ErrValue, "MOD requires two numeric arguments")
		}
		if bn == 0 {
			return NewError(ErrDiv0, "MOD by zero")
		}
		return math.Mod(an, bn)
	})

	r.Register("PI", func(args []Value, fctx FuncContext) Value {
		return math.Pi
	})
}

// asSequence treats a Range_ as its flat Values, and lifts any scalar into
// a one-element sequence, per spec.md §4.8's "first arg treated as
// sequence (scalar lifted)" contract for COUNTIF/SUMIF.
func asSequence(v Value) []Value {
	if r, ok := v.(Range_); ok {
		return r.Values
	}
	return []Value{v}
}

// registerConditional wires COUNTIF and SUMIF, which pair a range with a
// criterion expression parsed by criterion().
func registerConditional(r *Registry) {
	r.Register("COUNTIF", func(args []Value, fctx FuncContext) Value {
		seq := asSequence(arg(args, 0))
		pred := criterion(arg(args, 1))
		n := 0
		for _, v := range seq {
			if pred(v) {
				n++
			}
		}
		return float64(n)
	})

	r.Register("SUMIF", func(args []Value, fctx FuncContext) Value {
		seq := asSequence(arg(args, 0))
		pred := criterion(arg(args, 1))
		sumSeq := seq
		if len(args) > 2 {
			sumSeq = asSequence(arg(args, 2))
		}
		if len(sumSeq) != len(seq) {
			return NewError(ErrValue, "SUMIF's sum range must match the criteria range's shape")
		}
		sum := 0.0
		for i, v := range seq {
			if !pred(v) {
				continue
			}
			if n, ok := coerceNumber(sumSeq[i]); ok {
				sum += n
			}
		}
		return sum
	})
}

// tableRows normalizes a lookup target into row-major [][]Value: a Range_
// (from a cell-range reference) is reshaped using its column width; a
// [][]Value is an opaque value a host wrote directly into a single cell
// (spec.md §9: "a cell may contain a nested sequence written directly by a
// host... the evaluator must pass such a value through unchanged") and
// needs no reshaping.
func tableRows(v Value) ([][]Value, bool) {
	switch t := v.(type) {
	case [][]Value:
		return t, true
	case Range_:
		cols := t.Cols
		if cols < 1 {
			cols = 1
		}
		rows := make([][]Value, 0, len(t.Values)/cols)
		for i := 0; i < len(t.Values); i += cols {
			end := i + cols
			if end > len(t.Values) {
				end = len(t.Values)
			}
			rows = append(rows, t.Values[i:end])
		}
		return rows, true
	default:
		return nil, false
	}
}

// registerLookup wires MATCH, INDEX, VLOOKUP.
func registerLookup(r *Registry) {
	r.Register("MATCH", func(args []Value, fctx FuncContext) Value {
		target := arg(args, 0)
		rng, ok := arg(args, 1).(Range_)
		if !ok {
			return NewError(ErrValue, "MATCH requires a range as its second argument")
		}
		matchType := 1.0
		if len(args) > 2 {
			mt, ok := coerceNumber(arg(args, 2))
			if !ok {
				return NewError(ErrValue, "MATCH requires a numeric match type")
			}
			matchType = mt
		}

		switch matchType {
		case 0:
			for i, v := range rng.Values {
				if equalsValues(v, target) {
					return float64(i + 1)
				}
			}
			return NewError(ErrNA, "MATCH found no matching value")

		case 1:
			// Assumes ascending-sorted input (spec.md §9: behavior on
			// unsorted input is caller-responsibility) and returns the
			// position of the largest value not exceeding target.
			best := -1
			for i, v := range rng.Values {
				if compareValues(v, target) <= 0 {
					best = i
				} else {
					break
				}
			}
			if best < 0 {
				return NewError(ErrNA, "MATCH found no value at or below target")
			}
			return float64(best + 1)

		case -1:
			// Assumes descending-sorted input; returns the position of the
			// smallest value not below target.
			best := -1
			for i, v := range rng.Values {
				if compareValues(v, target) >= 0 {
					best = i
				} else {
					break
				}
			}
			if best < 0 {
				return NewError(ErrNA, "MATCH found no value at or above target")
			}
			return float64(best + 1)

		default:
			return NewError(ErrValue, "MATCH match type must be -1, 0, or 1")
		}
	})

	r.Register("INDEX", func(args []Value, fctx FuncContext) Value {
		if len(args) > 2 {
			rows, ok := tableRows(arg(args, 0))
			if !ok {
				return NewError(ErrValue, "INDEX requires an array as its first argument")
			}
			row, ok1 := coerceNumber(arg(args, 1))
			col, ok2 := coerceNumber(arg(args, 2))
			if !ok1 || !ok2 {
				return NewError(ErrValue, "INDEX requires numeric row and column positions")
			}
			r, c := int(row), int(col)
			if r < 1 || r > len(rows) || c < 1 || c > len(rows[r-1]) {
				return NewError(ErrRef, "INDEX position out of range")
			}
			return rows[r-1][c-1]
		}

		rng, ok := arg(args, 0).(Range_)
		if !ok {
			return NewError(ErrValue, "INDEX requires an array as its first argument")
		}
		idx, ok := coerceNumber(arg(args, 1))
		if !ok {
			return NewError(ErrValue, "INDEX requires a numeric position")
		}
		i := int(idx)
		if i < 1 || i > len(rng.Values) {
			return NewError(ErrRef, "INDEX position out of range")
		}
		return rng.Values[i-1]
	})

	r.Register("VLOOKUP", func(args []Value, fctx FuncContext) Value {
		target := arg(args, 0)
		rows, ok := tableRows(arg(args, 1))
		if !ok {
			return NewError(ErrValue, "VLOOKUP requires a range or a table value as its second argument")
		}
		colIdx, ok := coerceNumber(arg(args, 2))
		if !ok {
			return NewError(ErrValue, "VLOOKUP requires a numeric column index")
		}
		col := int(colIdx)

		exact := false
		if len(args) > 3 {
			exact = !truthy(arg(args, 3))
		}

		if exact {
			for _, row := range rows {
				if len(row) == 0 {
					continue
				}
				if equalsValues(row[0], target) {
					if col < 1 || col > len(row) {
						return NewError(ErrRef, "VLOOKUP column index out of range")
					}
					return row[col-1]
				}
			}
			return NewError(ErrNA, "VLOOKUP found no matching row")
		}

		// Approximate lookup assumes the key column is sorted ascending and
		// returns the row with the largest key not exceeding target.
		bestRow := -1
		for i, row := range rows {
			if len(row) == 0 {
				continue
			}
			if compareValues(row[0], target) <= 0 {
				bestRow = i
			} else {
				break
			}
		}
		if bestRow < 0 {
			return NewError(ErrNA, "VLOOKUP found no row at or below target")
		}
		row := rows[bestRow]
		if col < 1 || col > len(row) {
			return NewError(ErrRef, "VLOOKUP column index out of range")
		}
		return row[col-1]
	})
}

// registerInfo wires IFERROR, ISERROR, ISBLANK, ISNUMBER, ISTEXT. The four
// ISxxx functions are single-argument predicates and IFERROR takes a value
// and a fallback, all over already-evaluated values; they're installed in
// one batch through RegisterFunctions rather than one Register call apiece.
func registerInfo(r *Registry) {
	r.RegisterFunctions(map[string]Function{
		"IFERROR": func(args []Value, fctx FuncContext) Value {
			v := arg(args, 0)
			if _, ok := v.(*Error); ok {
				return arg(args, 1)
			}
			return v
		},
		"ISERROR": func(args []Value, fctx FuncContext) Value {
			_, ok := arg(args, 0).(*Error)
			return ok
		},
		"ISBLANK": func(args []Value, fctx FuncContext) Value {
			return arg(args, 0) == nil
		},
		"ISNUMBER": func(args []Value, fctx FuncContext) Value {
			_, ok := arg(args, 0).(float64)
			return ok
		},
		"ISTEXT": func(args []Value, fctx FuncContext) Value {
			_, ok := arg(args, 0).(string)
			return ok
		},
	})
}
