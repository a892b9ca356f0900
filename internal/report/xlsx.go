package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet the report is written to.
const SheetName = "Factures"

// WriteWorkbook serializes the rows into an XLSX workbook and returns its
// bytes. Column order is the fixed schema from Columns(); cells for columns a
// row does not populate stay blank. Styling is limited to the header row and
// column widths.
func WriteWorkbook(rows []Row, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	cols := Columns()

	f := excelize.NewFile()
	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	// widths[i] tracks the widest cell text in column i, header included.
	widths := make([]int, len(cols))
	for i, name := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return nil, fmt.Errorf("write header %q: %w", name, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %q: %w", name, err)
		}
		widths[i] = len([]rune(name))
	}

	for r, row := range rows {
		for c, name := range cols {
			v, ok := row[name]
			if !ok || v == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
			if n := len([]rune(fmt.Sprintf("%v", v))); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for i := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, name, name, float64(widths[i]+2))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	logger.Info("report.xlsx.ok",
		"rows", len(rows),
		"columns", len(cols),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ArtifactName builds the timestamped download filename for a generated
// workbook.
func ArtifactName(now time.Time) string {
	return fmt.Sprintf("factures_auto_%s.xlsx", now.Format("060102150405"))
}
