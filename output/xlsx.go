package output

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mrsingh-rishi/transcript-sheet/types"
)

const (
	SheetName = "results"
	MIMEType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	textColumnWidth = 100
)

var header = []interface{}{"normalized_text", "start", "end", "positive", "neutral", "negative"}

// Filename follows output_YYYYMMDD_HHMMSS.xlsx.
func Filename(t time.Time) string {
	return "output_" + t.Format("20060102_150405") + ".xlsx"
}

// WriteXLSX renders the table into a single-sheet workbook. The text column is
// wide and wrapped; missing scores stay blank.
func WriteXLSX(table types.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("wrap style: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "A", textColumnWidth); err != nil {
		return nil, err
	}
	if err := f.SetColStyle(SheetName, "A", wrap); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	for i, seg := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{seg.Text, seg.Start, seg.End, score(seg.Positive), score(seg.Neutral), score(seg.Negative)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func score(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
