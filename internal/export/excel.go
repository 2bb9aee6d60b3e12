// Package export renders a baby's logs as an Excel workbook for the
// settings screen's data-export action.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/wilding96/baby-tracker/internal/models"
)

const sheetName = "Logs"

var logExportHeader = []string{
	"Type",
	"Sub Type",
	"Start Time",
	"End Time",
	"Amount (ml)",
	"Duration (min)",
	"Created At",
}

const timeFormat = "2006-01-02 15:04"

// Workbook builds an xlsx file with one row per log record. Records are
// written in the order given; callers pass them newest first.
func Workbook(babyName string, logs []models.LogRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range logExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, rec := range logs {
		row := strconv.Itoa(i + 2)
		values := logRow(rec)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates for row %s: %w", row, err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "G", 18)
	if babyName != "" {
		props, _ := f.GetDocProps()
		if props != nil {
			props.Title = babyName + " logs"
			_ = f.SetDocProps(props)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func logRow(rec models.LogRecord) []any {
	values := make([]any, len(logExportHeader))
	values[0] = string(rec.Type)
	values[2] = rec.StartTime.Format(timeFormat)
	values[6] = rec.CreatedAt.Format(timeFormat)

	if rec.EndTime != nil {
		values[3] = rec.EndTime.Format(timeFormat)
	}
	if rec.Details != nil {
		if rec.Details.SubType != "" {
			values[1] = rec.Details.SubType
		}
		if rec.Details.Amount != nil {
			values[4] = *rec.Details.Amount
		}
		if rec.Details.DurationMinutes != nil {
			values[5] = *rec.Details.DurationMinutes
		}
	}

	return values
}
