package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
)

type pdfColumn struct {
	title string
	width float64
	align string
}

// Landscape A4 leaves 277mm between 10mm margins
var pdfColumns = []pdfColumn{
	{"Component", 26, "L"},
	{"Failure Mode", 38, "L"},
	{"Causes", 44, "L"},
	{"Effects", 44, "L"},
	{"Controls", 40, "L"},
	{"S", 8, "C"},
	{"O", 8, "C"},
	{"D", 8, "C"},
	{"RPN", 12, "C"},
	{"Band", 17, "C"},
	{"Post", 10, "C"},
	{"Status", 22, "C"},
}

const pdfLineHeight = 4.5

// RenderPDF writes r as a landscape A4 table followed by a risk summary page
func RenderPDF(r *Report) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(r.Project.Name, true)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 4, fmt.Sprintf("Report %s - page %d/{nb}", r.ID, pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("FMEA: "+r.Project.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	if r.Project.Description != "" {
		pdf.MultiCell(0, 4, tr(r.Project.Description), "", "L", false)
	}
	pdf.Ln(3)

	writePDFHeader(pdf)
	for _, c := range r.Components {
		for _, fm := range c.FailureModes {
			ch := children(fm)
			cells := []string{
				c.Component.Name,
				fm.FailureMode.Description,
				joinCauses(ch.Causes),
				joinEffects(ch.Effects),
				joinControls(ch.Controls),
				strconv.Itoa(fm.Score.Severity),
				strconv.Itoa(fm.Score.Occurrence),
				strconv.Itoa(fm.Score.Detection),
				strconv.Itoa(fm.Score.RPN),
				fm.Band.Label,
				strconv.Itoa(fm.PostRPN),
				string(fm.FailureMode.Status),
			}
			writePDFRow(pdf, tr, cells, fm.Band.Color)
		}
	}

	pdf.AddPage()
	writePDFSummary(pdf, tr, r)

	if err := pdf.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to render PDF")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to write PDF")
	}
	return buf.Bytes(), nil
}

func writePDFHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(45, 55, 72)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func writePDFRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, bandColor string) {
	pdf.SetFont("Helvetica", "", 7)

	lines := make([][]string, len(cells))
	height := 1
	for i, col := range pdfColumns {
		lines[i] = splitPDFText(pdf, tr(cells[i]), col.width-2)
		height = max(height, len(lines[i]))
	}
	rowHeight := float64(height) * pdfLineHeight

	_, pageHeight := pdf.GetPageSize()
	left, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+rowHeight > pageHeight-bottom-12 {
		pdf.AddPage()
		writePDFHeader(pdf)
		pdf.SetFont("Helvetica", "", 7)
	}

	x, y := pdf.GetXY()
	for i, col := range pdfColumns {
		fill := false
		if (col.title == "RPN" || col.title == "Band") && bandColor != "" {
			if r, g, b, ok := parseHexColor(bandColor); ok {
				pdf.SetFillColor(r, g, b)
				pdf.SetTextColor(255, 255, 255)
				fill = true
			}
		}
		style := "D"
		if fill {
			style = "FD"
		}
		pdf.Rect(x, y, col.width, rowHeight, style)
		for j, line := range lines[i] {
			pdf.SetXY(x+1, y+float64(j)*pdfLineHeight)
			pdf.CellFormat(col.width-2, pdfLineHeight, line, "", 0, col.align, false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		x += col.width
	}
	pdf.SetXY(left, y+rowHeight)
}

func splitPDFText(pdf *fpdf.Fpdf, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			continue
		}
		out = append(out, pdf.SplitText(para, width)...)
	}
	return out
}

func writePDFSummary(pdf *fpdf.Fpdf, tr func(string) string, r *Report) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Risk summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	metrics := [][2]string{
		{"Total failure modes", strconv.Itoa(r.Dashboard.TotalFailureModes)},
		{"High risk modes", strconv.Itoa(r.Dashboard.HighRiskModes)},
		{"Critical modes", strconv.Itoa(r.Dashboard.CriticalModes)},
		{"Average RPN", strconv.Itoa(r.Dashboard.AverageRPN)},
		{"Open actions", strconv.Itoa(r.Dashboard.OpenActions)},
		{"Completed actions", strconv.Itoa(r.Dashboard.CompletedActions)},
		{"Unscored failure modes", strconv.Itoa(r.Summary.Unscored)},
	}
	for _, m := range metrics {
		pdf.CellFormat(60, 6, m[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, m[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(60, 6, "Band", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Count", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, "%", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, b := range r.Summary.Distribution {
		fill := false
		if red, green, blue, ok := parseHexColor(b.Color); ok {
			pdf.SetFillColor(red, green, blue)
			fill = true
		}
		pdf.CellFormat(60, 6, tr(b.Label), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(b.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(b.Percentage), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if len(r.Summary.TopRisks) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 6, "Top risks", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, e := range r.Summary.TopRisks {
		component := ""
		if e.Component != nil {
			component = e.Component.Name
		}
		line := fmt.Sprintf("%d. %s / %s (RPN %d)", i+1, component, e.FailureMode.Description, e.Score.RPN)
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
}

// parseHexColor parses "#RRGGBB"
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
