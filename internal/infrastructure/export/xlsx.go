package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
)

const sheetName = "Items"

// ContentType is the MIME type of the workbook written by XLSXWriter.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Item Name", "Category", "Weight (kg)", "Status",
	"Lookup Code", "Reported By", "Created At", "Updated At", "Description",
}

// XLSXWriter renders items as a single-sheet workbook.
type XLSXWriter struct{}

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (XLSXWriter) ContentType() string { return ContentType }

// WriteItems writes a header row followed by one row per item.
func (XLSXWriter) WriteItems(w io.Writer, items []*domain.EwasteItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for r, it := range items {
		row := []any{
			it.ID,
			it.ItemName,
			string(it.Category),
			"",
			string(it.Status),
			it.LookupCode,
			it.ReportedBy,
			it.CreatedAt.UTC().Format(time.RFC3339),
			it.UpdatedAt.UTC().Format(time.RFC3339),
			it.Description,
		}
		if it.WeightKg != nil {
			row[3] = *it.WeightKg
		}

		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 26)
	_ = f.SetColWidth(sheetName, "B", "B", 24)
	_ = f.SetColWidth(sheetName, "F", "G", 38)
	_ = f.SetColWidth(sheetName, "H", "I", 22)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
