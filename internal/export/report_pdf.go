package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/skous2/nails-by-brooke/internal/model"
)

var (
	summaryColumns = []column{
		{title: "", x: 40, width: 160},
		{title: "Service", x: 210, width: 80, right: true},
		{title: "Tips", x: 320, width: 80, right: true},
		{title: "Total", x: 430, width: 80, right: true},
	}

	detailedColumns = []column{
		{title: "Date", x: 40, width: 75},
		{title: "Client", x: 120, width: 125},
		{title: "Service", x: 250, width: 165},
		{title: "Price", x: 420, width: 55, right: true},
		{title: "Tip", x: 480, width: 45, right: true},
		{title: "Total", x: 530, width: 42, right: true},
	}
)

// SummaryPDF renders the monthly and annual income tables.
func (r *Renderer) SummaryPDF(w io.Writer, report *model.SummaryReport) error {
	d, err := newDocument()
	if err != nil {
		return err
	}

	r.title(d, "Income Summary", fmt.Sprintf("Year: %d", report.Year))

	monthly := make([][]string, 0, len(report.Monthly))
	for _, m := range report.Monthly {
		monthly = append(monthly, []string{
			m.Label(report.Year),
			m.ServiceTotal.Dollars(),
			m.TipTotal.Dollars(),
			m.GrandTotal.Dollars(),
		})
	}
	summarySection(d, "Monthly Summary (Paid Appointments)", "Month", monthly)

	annual := make([][]string, 0, len(report.Annual))
	for _, a := range report.Annual {
		annual = append(annual, []string{
			strconv.Itoa(a.Year),
			a.ServiceTotal.Dollars(),
			a.TipTotal.Dollars(),
			a.GrandTotal.Dollars(),
		})
	}
	summarySection(d, "Annual Summary (All Years, Paid Appointments)", "Year", annual)

	if !d.fits(rowHeight) {
		d.newPage()
	}
	d.font(fontRegular, 9)
	d.gray(true)
	d.text(margin, "Note: This summary includes only appointments marked as paid.")
	d.gray(false)

	return d.write(w)
}

// DetailedPDF renders every paid appointment followed by the totals block.
func (r *Renderer) DetailedPDF(w io.Writer, report *model.DetailedReport) error {
	d, err := newDocument()
	if err != nil {
		return err
	}

	client := "All Clients"
	if report.ClientName != nil {
		client = *report.ClientName
	}
	r.title(d, "Detailed Income Report", fmt.Sprintf("Year: %d", report.Year), "Client: "+client)

	if len(report.Appointments) == 0 {
		d.font(fontRegular, 11)
		d.text(margin, "No data for appointments.")
		d.advance(rowHeight * 2)
	} else {
		t := &table{doc: d, cols: detailedColumns, noteX: 60}
		t.header()
		for _, row := range report.Appointments {
			t.row([]string{
				row.AppointmentDate.Format("Jan 2, 2006"),
				row.ClientName,
				row.Service,
				row.Price.Dollars(),
				row.Tip.Dollars(),
				row.Total.Dollars(),
			}, notes(row.Notes))
		}
		d.advance(rowHeight)
	}

	// Summary heading, four lines and the footnote stay on one page.
	if !d.fits(rowHeight * 8) {
		d.newPage()
	}
	d.font(fontBold, 13)
	d.text(margin, "Summary Totals")
	d.advance(20)

	d.font(fontRegular, 11)
	for _, line := range []string{
		fmt.Sprintf("Appointments: %d", report.Totals.Count),
		"Service Income: " + report.Totals.ServiceTotal.Dollars(),
		"Tips: " + report.Totals.TipTotal.Dollars(),
		"Total: " + report.Totals.GrandTotal.Dollars(),
	} {
		d.text(margin, line)
		d.advance(rowHeight)
	}
	d.advance(8)

	d.font(fontRegular, 9)
	d.gray(true)
	d.text(margin, "Only appointments marked as PAID are included.")
	d.gray(false)

	return d.write(w)
}

func (r *Renderer) title(d *document, heading string, lines ...string) {
	d.font(fontBold, 18)
	d.centered(fmt.Sprintf("%s - %s", r.brand.BusinessName, heading))
	d.advance(26)

	d.font(fontRegular, 12)
	for _, line := range lines {
		d.centered(line)
		d.advance(rowHeight)
	}

	d.font(fontRegular, 9)
	d.gray(true)
	d.centered("Generated " + r.now().Format("January 2, 2006"))
	d.gray(false)
	d.advance(rowHeight * 2)
}

// summarySection draws a heading and a four column table, or a one line
// placeholder when there are no rows.
func summarySection(d *document, heading, label string, rows [][]string) {
	if !d.fits(22 + rowHeight*3) {
		d.newPage()
	}

	if len(rows) == 0 {
		d.font(fontRegular, 11)
		d.text(margin, fmt.Sprintf("No data for %s.", heading))
		d.advance(rowHeight * 2)
		return
	}

	d.font(fontBold, 14)
	d.text(margin, heading)
	d.advance(22)

	cols := make([]column, len(summaryColumns))
	copy(cols, summaryColumns)
	cols[0].title = label

	t := &table{doc: d, cols: cols, noteX: margin}
	t.header()
	for _, row := range rows {
		t.row(row, "")
	}
	d.advance(rowHeight)
}
