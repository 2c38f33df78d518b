package engine

import "sort"

// Workbook is the store of record: a set of named sheets, each a sparse
// map from canonical address to cell content. There is no dependency
// graph and no cached computed values — every read that needs a formula's
// result re-evaluates it on demand (spec.md §4.5/§4.6).
type Workbook struct {
	sheets map[string]map[string]CellContent
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]map[string]CellContent)}
}

// AddSheet creates an empty sheet named name if it doesn't already exist,
// and returns name. Adding a sheet that already exists is a no-op, not an
// error.
func (wb *Workbook) AddSheet(name string) string {
	if _, ok := wb.sheets[name]; !ok {
		wb.sheets[name] = make(map[string]CellContent)
	}
	return name
}

// HasSheet reports whether a sheet named name exists.
func (wb *Workbook) HasSheet(name string) bool {
	_, ok := wb.sheets[name]
	return ok
}

// SheetNames returns every sheet name, sorted.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, 0, len(wb.sheets))
	for name := range wb.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCell writes raw (a number, string, bool, or formula string beginning
// with '=') to sheet!address, creating the sheet first if it doesn't yet
// exist — the convenience write path auto-vivifies its target sheet, unlike
// the range API's SetRange, which rejects a missing sheet outright (an
// intentional asymmetry: SetCell is for incrementally building a workbook
// one cell at a time, SetRange is for writing into an already-provisioned
// sheet).
func (wb *Workbook) SetCell(sheet, address string, raw Value) error {
	_, canonical, err := NormalizeAddress(address, sheet)
	if err != nil {
		return NewAPIError(CodeInvalidArgument, "invalid cell address %q: %v", address, err)
	}
	wb.AddSheet(sheet)
	wb.sheets[sheet][canonical] = CellContent{Raw: raw}
	return nil
}

// GetCell returns the raw content written at sheet!address. A missing
// sheet is a CodeNotFound APIError; a missing cell within an existing
// sheet is simply an empty value (nil, nil).
func (wb *Workbook) GetCell(sheet, address string) (Value, error) {
	_, canonical, err := NormalizeAddress(address, sheet)
	if err != nil {
		return nil, NewAPIError(CodeInvalidArgument, "invalid cell address %q: %v", address, err)
	}
	cells, ok := wb.sheets[sheet]
	if !ok {
		return nil, NewAPIError(CodeNotFound, "no such sheet: %s", sheet)
	}
	content, ok := cells[canonical]
	if !ok {
		return nil, nil
	}
	return content.Raw, nil
}

// rawCell is the evaluator's internal accessor: it never distinguishes a
// missing sheet from a missing cell, since both simply mean "empty" to a
// formula referencing that address.
func (wb *Workbook) rawCell(sheet, canonicalAddress string) (CellContent, bool) {
	cells, ok := wb.sheets[sheet]
	if !ok {
		return CellContent{}, false
	}
	content, ok := cells[canonicalAddress]
	return content, ok
}
