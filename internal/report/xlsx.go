// Package report renders sales history as spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// DayRow is one payment in a day's history.
type DayRow struct {
	PaidAt    time.Time
	TableName string
	Method    string
	Amount    decimal.Decimal
}

var dayHeader = []interface{}{"Time", "Table", "Method", "Amount"}

// WriteDayXLSX writes a workbook listing rows for day followed by a total
// line. Times are rendered in loc.
func WriteDayXLSX(w io.Writer, day time.Time, loc *time.Location, rows []DayRow) error {
	f := excelize.NewFile()
	defer f.Close()

	title := fmt.Sprintf("Sales %s", day.Format("2006-01-02"))
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A3", &dayHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", "D3", bold); err != nil {
		return err
	}

	total := decimal.Zero
	r := 4
	for _, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.PaidAt.In(loc).Format("15:04:05"),
			row.TableName,
			row.Method,
			row.Amount.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		total = total.Add(row.Amount)
		r++
	}

	totalRow := []interface{}{"Total", "", "", total.InexactFloat64()}
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &totalRow); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(4, r)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "D4", last, money); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "D", 16); err != nil {
		return err
	}

	return f.Write(w)
}
