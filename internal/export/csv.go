package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/skous2/nails-by-brooke/internal/model"
)

var detailedHeader = []string{"Date", "Client", "Service", "Price", "Tip", "Total", "Paid", "Notes"}

// DetailedCSV writes one line per appointment under a fixed header. Fields
// holding commas, quotes or newlines are quoted by encoding/csv.
func (r *Renderer) DetailedCSV(w io.Writer, report *model.DetailedReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailedHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range report.Appointments {
		record := []string{
			row.AppointmentDate.String(),
			row.ClientName,
			row.Service,
			row.Price.String(),
			row.Tip.String(),
			row.Total.String(),
			yesNo(row.Paid),
			notes(row.Notes),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
