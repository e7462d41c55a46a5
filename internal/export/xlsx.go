package export

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of the spreadsheet export.
const SheetName = "Inventory Report"

// WriteXLSX writes rows as a one-sheet workbook. Quantities are stored as
// numbers, everything else as text; no styling is applied.
func WriteXLSX(w io.Writer, rows []core.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.AircraftID, r.Description, r.Required, r.Available, string(r.Result)}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
