// Package export renders report results as downloadable files. Every
// renderer consumes the typed results produced by the report service, so the
// totals printed in a PDF, CSV or XLSX always match the JSON response.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/skous2/nails-by-brooke/internal/model"
)

const (
	FormatPDF  = "pdf"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypePDF  = "application/pdf"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Branding is the business identity printed on documents and used in
// download filenames.
type Branding struct {
	BusinessName string
	FilePrefix   string
}

type Renderer struct {
	brand Branding
	now   func() time.Time
}

func NewRenderer(brand Branding) *Renderer {
	if brand.BusinessName == "" {
		brand.BusinessName = "Nails by Brooke"
	}
	if brand.FilePrefix == "" {
		brand.FilePrefix = "nails-by-brooke"
	}
	return &Renderer{brand: brand, now: time.Now}
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SummaryFilename returns e.g. "nails-by-brooke-income-summary-2025.pdf".
func (r *Renderer) SummaryFilename(year int) string {
	return fmt.Sprintf("%s-income-summary-%d.%s", r.brand.FilePrefix, year, FormatPDF)
}

// DetailedFilename returns e.g. "nails-by-brooke-detailed-report-2025-Jane_Doe.csv".
// The client suffix is present only for client-filtered reports.
func (r *Renderer) DetailedFilename(report *model.DetailedReport, format string) string {
	name := fmt.Sprintf("%s-detailed-report-%d", r.brand.FilePrefix, report.Year)
	if report.ClientName != nil {
		if suffix := strings.Trim(nonAlnum.ReplaceAllString(*report.ClientName, "_"), "_"); suffix != "" {
			name += "-" + suffix
		}
	}
	return name + "." + format
}

func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return ContentTypeCSV
	case FormatXLSX:
		return ContentTypeXLSX
	default:
		return ContentTypePDF
	}
}

func notes(n *string) string {
	if n == nil {
		return ""
	}
	return *n
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// File is a fully rendered download held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
