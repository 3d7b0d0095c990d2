package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteDayXLSX(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	rows := []DayRow{
		{PaidAt: time.Date(2026, 3, 1, 3, 15, 0, 0, time.UTC), TableName: "T1", Method: "cash", Amount: decimal.RequireFromString("20000")},
		{PaidAt: time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC), TableName: "T2", Method: "transfer", Amount: decimal.RequireFromString("45000.50")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDayXLSX(&buf, day, loc, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sales 2026-03-01", title)

	got, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, got, 6)

	assert.Equal(t, []string{"Time", "Table", "Method", "Amount"}, got[2])
	assert.Equal(t, "10:15:00", got[3][0], "times are local")
	assert.Equal(t, "T1", got[3][1])
	assert.Equal(t, "cash", got[3][2])
	assert.Equal(t, "transfer", got[4][2])
	assert.Equal(t, "Total", got[5][0])

	raw, err := f.GetCellValue(sheet, "D6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "65000.5", raw)
}

func TestWriteDayXLSX_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDayXLSX(&buf, time.Now(), time.UTC, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}
