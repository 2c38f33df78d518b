package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetCellAutoCreatesSheet(t *testing.T) {
	wb := NewWorkbook()
	require.False(t, wb.HasSheet("Sheet1"))
	require.NoError(t, wb.SetCell("Sheet1", "A1", 42.0))
	require.True(t, wb.HasSheet("Sheet1"))

	v, err := wb.GetCell("Sheet1", "A1")
	require.NoError(t, err)
	require.Equal(t, 42.0, v)
}

func TestGetCellOnMissingSheetIsNotFound(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.GetCell("Nope", "A1")
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, CodeNotFound, apiErr.Code)
}

func TestGetCellOnMissingCellInExistingSheetIsEmptyNotError(t *testing.T) {
	wb := NewWorkbook()
	wb.AddSheet("Sheet1")
	v, err := wb.GetCell("Sheet1", "Z99")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetCellInvalidAddressIsAPIError(t *testing.T) {
	wb := NewWorkbook()
	err := wb.SetCell("Sheet1", "1A", 1.0)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, CodeInvalidArgument, apiErr.Code)
}

func TestAddSheetReturnsName(t *testing.T) {
	wb := NewWorkbook()
	require.Equal(t, "Sheet1", wb.AddSheet("Sheet1"))
	require.Equal(t, "Sheet1", wb.AddSheet("Sheet1"))
}

func TestSheetNamesSorted(t *testing.T) {
	wb := NewWorkbook()
	wb.AddSheet("Zeta")
	wb.AddSheet("Alpha")
	require.Equal(t, []string{"Alpha", "Zeta"}, wb.SheetNames())
}
