package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/skous2/nails-by-brooke/internal/model"
)

const detailedSheet = "Detailed Report"

// DetailedXLSX writes the CSV columns to a single sheet with money as numeric
// cells, followed by a totals row.
func (r *Renderer) DetailedXLSX(w io.Writer, report *model.DetailedReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailedSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "bottom", Color: "#CCCCCC", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 2,
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	header := make([]interface{}, len(detailedHeader))
	for i, h := range detailedHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(detailedSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(detailedSheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	rowNum := 2
	for _, row := range report.Appointments {
		values := []interface{}{
			row.AppointmentDate.String(),
			row.ClientName,
			row.Service,
			row.Price.InexactFloat64(),
			row.Tip.InexactFloat64(),
			row.Total.InexactFloat64(),
			yesNo(row.Paid),
			notes(row.Notes),
		}
		if err := f.SetSheetRow(detailedSheet, fmt.Sprintf("A%d", rowNum), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		if err := f.SetCellStyle(detailedSheet, fmt.Sprintf("D%d", rowNum), fmt.Sprintf("F%d", rowNum), moneyStyle); err != nil {
			return err
		}
		rowNum++
	}

	totals := []interface{}{
		"Totals",
		fmt.Sprintf("%d appointments", report.Totals.Count),
		"",
		report.Totals.ServiceTotal.InexactFloat64(),
		report.Totals.TipTotal.InexactFloat64(),
		report.Totals.GrandTotal.InexactFloat64(),
	}
	if err := f.SetSheetRow(detailedSheet, fmt.Sprintf("A%d", rowNum), &totals); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}
	if err := f.SetCellStyle(detailedSheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("F%d", rowNum), totalStyle); err != nil {
		return err
	}

	for col, width := range map[string]float64{"A": 12, "B": 24, "C": 28, "D": 10, "E": 10, "F": 10, "G": 6, "H": 40} {
		if err := f.SetColWidth(detailedSheet, col, col, width); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
