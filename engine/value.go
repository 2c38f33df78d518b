package engine

// Value is the sum type every evaluation produces and every cell holds:
// one of float64 (number), string (text), bool (logical), *Error (an
// in-cell error value), or an opaque value written verbatim by a host
// (e.g. a [][]any table used by VLOOKUP/INDEX tests). nil represents an
// empty cell. Go has no closed union, so this is `any` by convention —
// every switch over it in this package is expected to be exhaustive over
// the cases documented here.
type Value = any

// CellKind tags the kind of content a occupied cell holds, for callers
// that want to branch without a type switch (e.g. a UI layer rendering
// cells differently by kind).
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindNumber
	KindText
	KindBool
	KindError
	KindFormula
	KindOpaque
)

// CellContent is exactly one of: a number, a logical value, a text
// string, a tagged error value, an opaque host value, or a formula string
// beginning with '='. Raw holds whichever of these was written; FormulaText
// is a convenience accessor that strips the leading '=' when Raw is a
// formula string.
type CellContent struct {
	Raw Value
}

// IsFormula reports whether this cell's raw content is a formula string.
func (c CellContent) IsFormula() bool {
	s, ok := c.Raw.(string)
	return ok && len(s) > 0 && s[0] == '='
}

// FormulaText returns the formula source with the leading '=' stripped.
// Only meaningful when IsFormula() is true.
func (c CellContent) FormulaText() string {
	s, _ := c.Raw.(string)
	if len(s) > 0 && s[0] == '=' {
		return s[1:]
	}
	return s
}

// Kind classifies Raw for display purposes.
func (c CellContent) Kind() CellKind {
	switch v := c.Raw.(type) {
	case nil:
		return KindEmpty
	case float64:
		return KindNumber
	case bool:
		return KindBool
	case *Error:
		return KindError
	case string:
		if len(v) > 0 && v[0] == '=' {
			return KindFormula
		}
		return KindText
	default:
		return KindOpaque
	}
}
