package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluatorBasicReferenceChain(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", 10.0))
	require.NoError(t, wb.SetCell("Sheet1", "A2", "=A1*2"))
	require.NoError(t, wb.SetCell("Sheet1", "A3", "=A2+A1"))

	ev := NewEvaluator(wb)
	require.Equal(t, 30.0, ev.EvaluateCell("Sheet1", "A3"))
}

func TestEvaluatorEmptyCellIsNil(t *testing.T) {
	wb := NewWorkbook()
	wb.AddSheet("Sheet1")
	ev := NewEvaluator(wb)
	require.Nil(t, ev.EvaluateCell("Sheet1", "Z99"))
}

func TestEvaluatorDirectCycleIsCycleError(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", "=A2"))
	require.NoError(t, wb.SetCell("Sheet1", "A2", "=A1"))

	ev := NewEvaluator(wb)
	result := ev.EvaluateCell("Sheet1", "A1")
	errVal, ok := result.(*Error)
	require.True(t, ok, "expected an *Error, got %#v", result)
	require.Equal(t, ErrCycle, errVal.Kind)
}

func TestEvaluatorSelfReferenceIsCycleError(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", "=A1+1"))

	ev := NewEvaluator(wb)
	result := ev.EvaluateCell("Sheet1", "A1")
	errVal, ok := result.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrCycle, errVal.Kind)
}

func TestEvaluatorCrossSheetReference(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Data", "A1", 5.0))
	require.NoError(t, wb.SetCell("Sheet1", "A1", "=Data!A1+1"))

	ev := NewEvaluator(wb)
	require.Equal(t, 6.0, ev.EvaluateCell("Sheet1", "A1"))
}

func TestEvaluatorCrossSheetRangeIsRefError(t *testing.T) {
	node := &RangeNode{StartSheet: "Sheet1", Start: Address{Col: 1, Row: 1}, EndSheet: "Sheet2", End: Address{Col: 2, Row: 2}}
	ev := NewEvaluator(NewWorkbook())
	result := node.Eval(&evalContext{ev: ev, sheet: "Sheet1"})
	errVal, ok := result.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrRef, errVal.Kind)
}

func TestEvaluatorDivisionByZero(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", "=1/0"))
	ev := NewEvaluator(wb)
	errVal, ok := ev.EvaluateCell("Sheet1", "A1").(*Error)
	require.True(t, ok)
	require.Equal(t, ErrDiv0, errVal.Kind)
	require.Equal(t, "#DIV/0!", errVal.Code())
}

func TestEvaluatorUnknownFunctionIsNameError(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", "=NOPE(1)"))
	ev := NewEvaluator(wb)
	errVal, ok := ev.EvaluateCell("Sheet1", "A1").(*Error)
	require.True(t, ok)
	require.Equal(t, ErrName, errVal.Kind)
}

func TestEvaluatorMalformedFormulaIsValueError(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", "=1+"))
	ev := NewEvaluator(wb)
	errVal, ok := ev.EvaluateCell("Sheet1", "A1").(*Error)
	require.True(t, ok)
	require.Equal(t, ErrValue, errVal.Kind)
}

func TestEvaluatorEvaluateASTRunsAParsedTreeRepeatedly(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", 4.0))
	ev := NewEvaluator(wb)

	ast, err := ParseFormula("A1*2+1")
	require.NoError(t, err)

	require.Equal(t, 9.0, ev.EvaluateAST(ast, "Sheet1"))

	require.NoError(t, wb.SetCell("Sheet1", "A1", 10.0))
	require.Equal(t, 21.0, ev.EvaluateAST(ast, "Sheet1"))
}

func TestEvaluatorRevisitingSameCellTwiceIsNotACycle(t *testing.T) {
	wb := NewWorkbook()
	require.NoError(t, wb.SetCell("Sheet1", "A1", 3.0))
	require.NoError(t, wb.SetCell("Sheet1", "A2", "=A1+A1"))
	ev := NewEvaluator(wb)
	require.Equal(t, 6.0, ev.EvaluateCell("Sheet1", "A2"))
}
