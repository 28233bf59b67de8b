package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// US Letter in points.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	margin       = 40.0
	contentWidth = pageWidth - 2*margin

	fontRegular = "regular"
	fontBold    = "bold"

	rowHeight    = 16.0
	headerHeight = rowHeight + 4
	noteHeight   = 11.0
	noteSize     = 8.0
	bodySize     = 10.0
)

// document wraps gopdf with a vertical cursor. The first drawing error is
// kept and every later call becomes a no-op, so callers check once at the end.
type document struct {
	pdf *gopdf.GoPdf
	y   float64
	err error
}

func newDocument() (*document, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeLetter})

	if err := pdf.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	if err := pdf.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}

	pdf.AddPage()
	return &document{pdf: pdf, y: margin}, nil
}

func (d *document) font(family string, size float64) {
	if d.err != nil {
		return
	}
	d.err = d.pdf.SetFont(family, "", size)
}

func (d *document) gray(on bool) {
	if on {
		d.pdf.SetTextColor(85, 85, 85)
	} else {
		d.pdf.SetTextColor(0, 0, 0)
	}
}

func (d *document) text(x float64, s string) {
	if d.err != nil {
		return
	}
	d.pdf.SetXY(x, d.y)
	d.err = d.pdf.Cell(nil, s)
}

func (d *document) aligned(x, width float64, align int, s string) {
	if d.err != nil {
		return
	}
	d.pdf.SetXY(x, d.y)
	d.err = d.pdf.CellWithOption(&gopdf.Rect{W: width, H: rowHeight}, s, gopdf.CellOption{Align: align | gopdf.Top})
}

func (d *document) centered(s string) {
	d.aligned(margin, contentWidth, gopdf.Center, s)
}

func (d *document) advance(h float64) {
	d.y += h
}

func (d *document) fits(h float64) bool {
	return d.y+h <= pageHeight-margin
}

func (d *document) newPage() {
	d.pdf.AddPage()
	d.y = margin
}

func (d *document) rule() {
	d.pdf.SetStrokeColor(204, 204, 204)
	d.pdf.SetLineWidth(0.5)
	d.pdf.Line(margin, d.y, pageWidth-margin, d.y)
}

// fit shortens s with an ellipsis until it fits width in the current font.
func (d *document) fit(s string, width float64) string {
	if w, err := d.pdf.MeasureTextWidth(s); err != nil || w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + "..."
		if w, err := d.pdf.MeasureTextWidth(candidate); err == nil && w <= width {
			return candidate
		}
	}
	return ""
}

// wrap splits s into lines no wider than width in the current font.
func (d *document) wrap(s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		split, err := d.pdf.SplitText(para, width)
		if err != nil {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, split...)
	}
	return lines
}

func (d *document) write(w io.Writer) error {
	if d.err != nil {
		return fmt.Errorf("failed to draw pdf: %w", d.err)
	}
	if err := d.pdf.Write(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

type column struct {
	title string
	x     float64
	width float64
	right bool
}

// table draws rows against fixed columns, starting a new page and repeating
// the header row whenever the next row would cross the bottom margin.
type table struct {
	doc   *document
	cols  []column
	noteX float64
}

func (t *table) header() {
	d := t.doc
	d.font(fontBold, bodySize)
	for _, c := range t.cols {
		t.cell(c, c.title)
	}
	d.advance(rowHeight)
	d.rule()
	d.advance(headerHeight - rowHeight)
}

func (t *table) cell(c column, s string) {
	if c.right {
		t.doc.aligned(c.x, c.width, gopdf.Right, s)
		return
	}
	t.doc.text(c.x, t.doc.fit(s, c.width))
}

// row draws one line of cells and, when note is set, the note wrapped
// underneath in a smaller gray font. A row whose notes fit on one page is
// never split. Longer notes start under their row and carry on over as many
// pages as they need, each with the header repeated.
func (t *table) row(cells []string, note string) {
	d := t.doc

	var lines []string
	if note != "" {
		d.font(fontRegular, noteSize)
		lines = d.wrap("Notes: "+note, pageWidth-margin-t.noteX)
	}

	whole := rowHeight + float64(len(lines))*noteHeight
	if !d.fits(whole) && (whole <= t.pageRoom() || !d.fits(rowHeight+noteHeight)) {
		t.continuePage()
	}

	d.font(fontRegular, bodySize)
	for i, c := range t.cols {
		if i < len(cells) {
			t.cell(c, cells[i])
		}
	}
	d.advance(rowHeight)

	if len(lines) > 0 {
		d.font(fontRegular, noteSize)
		d.gray(true)
		for _, line := range lines {
			if !d.fits(noteHeight) {
				d.gray(false)
				t.continuePage()
				d.font(fontRegular, noteSize)
				d.gray(true)
			}
			d.text(t.noteX, line)
			d.advance(noteHeight)
		}
		d.gray(false)
		d.advance(2)
	}
}

// pageRoom is the height left for rows on a page that starts with the header.
func (t *table) pageRoom() float64 {
	return pageHeight - 2*margin - headerHeight
}

func (t *table) continuePage() {
	t.doc.newPage()
	t.header()
}
