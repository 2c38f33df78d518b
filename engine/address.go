package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a normalized cell address: a 1-based column and row index,
// plus the canonical upper-case textual form. Absolute markers ($) are
// accepted on parse and stripped here — they are a parser-only concept,
// never stored (spec.md §3: "these markers are preserved only during
// parsing and do not affect semantics").
type Address struct {
	Col int // 1-based, A=1
	Row int // 1-based
}

// String renders the canonical "A1"-form address.
func (a Address) String() string {
	return ColumnLetters(a.Col) + strconv.Itoa(a.Row)
}

// Range is an inclusive rectangle on a single sheet, canonicalized so
// Min <= Max on each axis.
type Range struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

func (r Range) String() string {
	return Address{Col: r.MinCol, Row: r.MinRow}.String() + ":" + Address{Col: r.MaxCol, Row: r.MaxRow}.String()
}

// ColumnLetters converts a 1-based column index to upper-case letters
// (1->A, 26->Z, 27->AA). This is the exact inverse of ColumnIndex.
func ColumnLetters(n int) string {
	if n < 1 {
		return ""
	}
	var buf []byte
	for n > 0 {
		n-- // off-by-one: base-26 digits here run 0..25, not 1..26
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}

// ColumnIndex converts column letters (any case) to a 1-based index.
// Returns ok=false if letters is empty or contains a non-letter.
func ColumnIndex(letters string) (int, bool) {
	if letters == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c >= 'A' && c <= 'Z':
			n = n*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			n = n*26 + int(c-'a'+1)
		default:
			return 0, false
		}
	}
	return n, true
}

// parsedAddress is the raw shape produced by ParseAddress, before the
// absolute markers are discarded by the caller.
type parsedAddress struct {
	AbsCol  bool
	Letters string
	AbsRow  bool
	Digits  string
}

// parseAddress accepts the grammar `$?[A-Za-z]+$?[0-9]+` and returns the
// parsed pieces, or ok=false if text doesn't match end to end.
func parseAddress(text string) (parsedAddress, bool) {
	i := 0
	var p parsedAddress
	if i < len(text) && text[i] == '$' {
		p.AbsCol = true
		i++
	}
	start := i
	for i < len(text) && isAlpha(text[i]) {
		i++
	}
	if i == start {
		return parsedAddress{}, false
	}
	p.Letters = text[start:i]
	if i < len(text) && text[i] == '$' {
		p.AbsRow = true
		i++
	}
	start = i
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == start {
		return parsedAddress{}, false
	}
	p.Digits = text[start:i]
	if i != len(text) {
		return parsedAddress{}, false
	}
	return p, true
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// ParseAddress parses a bare (unqualified) A1-style cell reference such as
// "A1", "$A$1", "a$1" into a canonical Address.
func ParseAddress(text string) (Address, error) {
	p, ok := parseAddress(text)
	if !ok {
		return Address{}, fmt.Errorf("invalid cell address %q", text)
	}
	col, ok := ColumnIndex(p.Letters)
	if !ok {
		return Address{}, fmt.Errorf("invalid column letters %q", p.Letters)
	}
	row, err := strconv.Atoi(p.Digits)
	if err != nil || row < 1 {
		return Address{}, fmt.Errorf("invalid row number %q", p.Digits)
	}
	return Address{Col: col, Row: row}, nil
}

// NormalizeAddress accepts "Sheet!A1", "A1", "$A$1", case-insensitive
// column letters, and resolves the sheet name (defaultSheet when the text
// carries no "!" qualifier). Returns the resolved sheet and the canonical
// "A1"-form address text.
func NormalizeAddress(text, defaultSheet string) (sheet string, canonical string, err error) {
	sheet = defaultSheet
	rest := text
	if idx := strings.LastIndex(text, "!"); idx >= 0 {
		sheet = text[:idx]
		rest = text[idx+1:]
	}
	addr, err := ParseAddress(rest)
	if err != nil {
		return "", "", err
	}
	return sheet, addr.String(), nil
}

// ExpandRange returns the canonical addresses covering the inclusive
// rectangle between start and end, row-major, with the two endpoints
// reordered so Min <= Max on each axis.
func ExpandRange(start, end Address) []Address {
	minCol, maxCol := start.Col, end.Col
	if minCol > maxCol {
		minCol, maxCol = maxCol, minCol
	}
	minRow, maxRow := start.Row, end.Row
	if minRow > maxRow {
		minRow, maxRow = maxRow, minRow
	}
	addrs := make([]Address, 0, (maxRow-minRow+1)*(maxCol-minCol+1))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			addrs = append(addrs, Address{Col: col, Row: row})
		}
	}
	return addrs
}

// ParseRange accepts "A1:B2" or "Sheet!A1:B2" and returns the resolved
// sheet plus the canonical (min, max) rectangle. A sheet qualifier on only
// one endpoint applies to both (spec.md §4.1 edge case); qualifying both
// endpoints with different sheets is a malformed range, not a cross-sheet
// one — cross-sheet rejection itself is the evaluator's job (spec.md §4.5),
// not the address layer's.
func ParseRange(text, defaultSheet string) (sheet string, rect Range, err error) {
	parts := strings.SplitN(text, ":", 2)
	if len(parts) != 2 {
		return "", Range{}, fmt.Errorf("invalid range %q: expected A1:B2 form", text)
	}
	leftSheet, leftAddr, err := splitQualified(parts[0])
	if err != nil {
		return "", Range{}, err
	}
	rightSheet, rightAddr, err := splitQualified(parts[1])
	if err != nil {
		return "", Range{}, err
	}

	sheet = defaultSheet
	switch {
	case leftSheet != "" && rightSheet != "":
		if leftSheet != rightSheet {
			return "", Range{}, fmt.Errorf("invalid range %q: endpoints qualify different sheets (%s, %s)", text, leftSheet, rightSheet)
		}
		sheet = leftSheet
	case leftSheet != "":
		sheet = leftSheet
	case rightSheet != "":
		sheet = rightSheet
	}

	start, err := ParseAddress(leftAddr)
	if err != nil {
		return "", Range{}, err
	}
	end, err := ParseAddress(rightAddr)
	if err != nil {
		return "", Range{}, err
	}

	rect = Range{MinCol: start.Col, MinRow: start.Row, MaxCol: end.Col, MaxRow: end.Row}
	if rect.MinCol > rect.MaxCol {
		rect.MinCol, rect.MaxCol = rect.MaxCol, rect.MinCol
	}
	if rect.MinRow > rect.MaxRow {
		rect.MinRow, rect.MaxRow = rect.MaxRow, rect.MinRow
	}
	return sheet, rect, nil
}

// splitQualified splits "Sheet!A1" into ("Sheet", "A1"), or returns ("",
// "A1") when text carries no qualifier.
func splitQualified(text string) (sheetName string, addr string, err error) {
	if idx := strings.LastIndex(text, "!"); idx >= 0 {
		return text[:idx], text[idx+1:], nil
	}
	return "", text, nil
}
