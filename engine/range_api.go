package engine

// RangeMode selects what GetRange returns for each cell in the requested
// rectangle: the raw stored content, the computed (evaluated) result, or
// both side by side.
type RangeMode int

const (
	ModeRaw RangeMode = iota
	ModeComputed
	ModeBoth
)

// RangeCell is one cell's result from GetRange or SetRange: Address is
// always populated; under ModeBoth both Raw and Computed are populated,
// under ModeRaw or ModeComputed only the corresponding field is.
type RangeCell struct {
	Address  string
	Raw      Value
	Computed Value
}

// RangeResult is the record both GetRange and SetRange return: the sheet
// operated on, the canonical (min, max) form of the requested range, and
// the row-major matrix of cell descriptors (spec.md §6: `{sheet,
// canonical_range, rows[][] of {address, raw?, computed?}}`).
type RangeResult struct {
	Sheet string
	Range string
	Rows  [][]RangeCell
}

// GetRangeRequest describes a rectangular read, validated via
// go-playground/validator tags so a malformed request from an outer layer
// (an HTTP handler, say) fails fast with a structured message.
type GetRangeRequest struct {
	Sheet string `validate:"required"`
	Range string `validate:"required"`
	Mode  RangeMode
}

// GetRange reads a rectangular block of cells and returns it as a
// RangeResult, rows ordered the way ExpandRange produces them. The target
// sheet must already exist; unlike SetCell's auto-creation, a missing
// sheet here is a CodeNotFound APIError (spec.md §4.7: the range API
// operates on a provisioned workbook, it does not build one).
func (ev *Evaluator) GetRange(req GetRangeRequest) (RangeResult, error) {
	if err := Validate(req); err != nil {
		return RangeResult{}, err
	}
	if !ev.workbook.HasSheet(req.Sheet) {
		return RangeResult{}, NewAPIError(CodeNotFound, "no such sheet: %s", req.Sheet)
	}

	rangeSheet, rect, err := ParseRange(req.Range, req.Sheet)
	if err != nil {
		return RangeResult{}, NewAPIError(CodeInvalidArgument, "invalid range %q: %v", req.Range, err)
	}
	if rangeSheet != req.Sheet {
		return RangeResult{}, NewAPIError(CodeInvalidArgument, "range %q does not belong to sheet %s", req.Range, req.Sheet)
	}

	rows := ev.readRect(req.Sheet, rect, req.Mode)
	return RangeResult{Sheet: req.Sheet, Range: rect.String(), Rows: rows}, nil
}

// SetRangeRequest describes a rectangular write: Values is row-major and
// must exactly match the shape of Range (spec.md §4.7's shape invariant).
type SetRangeRequest struct {
	Sheet  string `validate:"required"`
	Range  string `validate:"required"`
	Values [][]Value
}

// SetRange writes a row-major matrix of raw values into a rectangle,
// requiring the sheet to already exist and the matrix's dimensions to
// match the range exactly, then returns the same RangeResult shape as
// GetRange would in ModeBoth (spec.md §6: "returns the same record shape
// as get_range in both mode").
func (ev *Evaluator) SetRange(req SetRangeRequest) (RangeResult, error) {
	if err := Validate(req); err != nil {
		return RangeResult{}, err
	}
	if !ev.workbook.HasSheet(req.Sheet) {
		return RangeResult{}, NewAPIError(CodeNotFound, "no such sheet: %s", req.Sheet)
	}

	rangeSheet, rect, err := ParseRange(req.Range, req.Sheet)
	if err != nil {
		return RangeResult{}, NewAPIError(CodeInvalidArgument, "invalid range %q: %v", req.Range, err)
	}
	if rangeSheet != req.Sheet {
		return RangeResult{}, NewAPIError(CodeInvalidArgument, "range %q does not belong to sheet %s", req.Range, req.Sheet)
	}

	wantRows := rect.MaxRow - rect.MinRow + 1
	wantCols := rect.MaxCol - rect.MinCol + 1
	if len(req.Values) != wantRows {
		return RangeResult{}, NewAPIError(CodeInvalidArgument, "value matrix has %d rows, range %q expects %d", len(req.Values), req.Range, wantRows)
	}
	for i, rowValues := range req.Values {
		if len(rowValues) != wantCols {
			return RangeResult{}, NewAPIError(CodeInvalidArgument, "value matrix row %d has %d columns, range %q expects %d", i, len(rowValues), req.Range, wantCols)
		}
	}

	for i, row := 0, rect.MinRow; row <= rect.MaxRow; i, row = i+1, row+1 {
		for j, col := 0, rect.MinCol; col <= rect.MaxCol; j, col = j+1, col+1 {
			addr := Address{Col: col, Row: row}.String()
			if err := ev.workbook.SetCell(req.Sheet, addr, req.Values[i][j]); err != nil {
				return RangeResult{}, err
			}
		}
	}

	rows := ev.readRect(req.Sheet, rect, ModeBoth)
	return RangeResult{Sheet: req.Sheet, Range: rect.String(), Rows: rows}, nil
}

// readRect materializes rect as a row-major matrix of RangeCell under mode.
func (ev *Evaluator) readRect(sheet string, rect Range, mode RangeMode) [][]RangeCell {
	rows := make([][]RangeCell, 0, rect.MaxRow-rect.MinRow+1)
	for row := rect.MinRow; row <= rect.MaxRow; row++ {
		cols := make([]RangeCell, 0, rect.MaxCol-rect.MinCol+1)
		for col := rect.MinCol; col <= rect.MaxCol; col++ {
			addr := Address{Col: col, Row: row}.String()
			cell := RangeCell{Address: addr}
			if mode == ModeRaw || mode == ModeBoth {
				raw, _ := ev.workbook.GetCell(sheet, addr)
				cell.Raw = raw
			}
			if mode == ModeComputed || mode == ModeBoth {
				cell.Computed = ev.EvaluateCell(sheet, addr)
			}
			cols = append(cols, cell)
		}
		rows = append(rows, cols)
	}
	return rows
}
