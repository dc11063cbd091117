package export

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

const (
	sheetWorksheet = "Worksheet"
	sheetSummary   = "Summary"
)

var worksheetHeader = []any{
	"Component", "Function", "Failure Mode", "Process Step", "Status",
	"Causes", "Effects", "Controls", "S", "O", "D", "RPN", "Band", "Post RPN", "Actions",
}

var worksheetWidths = []float64{18, 24, 30, 16, 10, 36, 36, 36, 5, 5, 5, 7, 11, 9, 36}

type xlsxStyles struct {
	file   *excelize.File
	header int
	wrap   int
	bold   int
	bands  map[string]int
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	s := &xlsxStyles{file: f, bands: map[string]int{}}
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2D3748"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create header style")
	}
	if s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create cell style")
	}
	if s.bold, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to create bold style")
	}
	return s, nil
}

// band returns a style filled with color, creating it on first use
func (s *xlsxStyles) band(color string) (int, error) {
	color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	if color == "" {
		return s.wrap, nil
	}
	if id, ok := s.bands[color]; ok {
		return id, nil
	}
	id, err := s.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create band style", goerr.V("color", color))
	}
	s.bands[color] = id
	return id, nil
}

// RenderXLSX writes the worksheet and summary of r as an Excel workbook
func RenderXLSX(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetWorksheet); err != nil {
		return nil, goerr.Wrap(err, "failed to rename sheet")
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, goerr.Wrap(err, "failed to create summary sheet")
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeWorksheet(f, styles, r); err != nil {
		return nil, err
	}
	if err := writeSummary(f, styles, r); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write workbook")
	}
	return buf.Bytes(), nil
}

func writeWorksheet(f *excelize.File, styles *xlsxStyles, r *Report) error {
	header := worksheetHeader
	if err := f.SetSheetRow(sheetWorksheet, "A1", &header); err != nil {
		return goerr.Wrap(err, "failed to write header")
	}
	last, err := excelize.CoordinatesToCellName(len(worksheetHeader), 1)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve header range")
	}
	if err := f.SetCellStyle(sheetWorksheet, "A1", last, styles.header); err != nil {
		return goerr.Wrap(err, "failed to style header")
	}
	for i, w := range worksheetWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve column")
		}
		if err := f.SetColWidth(sheetWorksheet, col, col, w); err != nil {
			return goerr.Wrap(err, "failed to set column width", goerr.V("column", col))
		}
	}

	row := 2
	for _, c := range r.Components {
		for _, fm := range c.FailureModes {
			ch := children(fm)
			values := []any{
				c.Component.Name,
				c.Component.Function,
				fm.FailureMode.Description,
				fm.FailureMode.ProcessStep,
				string(fm.FailureMode.Status),
				joinCauses(ch.Causes),
				joinEffects(ch.Effects),
				joinControls(ch.Controls),
				fm.Score.Severity,
				fm.Score.Occurrence,
				fm.Score.Detection,
				fm.Score.RPN,
				fm.Band.Label,
				fm.PostRPN,
				joinActions(ch.Actions),
			}
			start, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve row", goerr.V("row", row))
			}
			if err := f.SetSheetRow(sheetWorksheet, start, &values); err != nil {
				return goerr.Wrap(err, "failed to write row", goerr.V("row", row))
			}
			end, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(sheetWorksheet, start, end, styles.wrap); err != nil {
				return goerr.Wrap(err, "failed to style row", goerr.V("row", row))
			}

			// RPN and Band columns carry the band color
			bandStyle, err := styles.band(fm.Band.Color)
			if err != nil {
				return err
			}
			rpnCell, _ := excelize.CoordinatesToCellName(12, row)
			bandCell, _ := excelize.CoordinatesToCellName(13, row)
			if err := f.SetCellStyle(sheetWorksheet, rpnCell, bandCell, bandStyle); err != nil {
				return goerr.Wrap(err, "failed to style band cells", goerr.V("row", row))
			}
			row++
		}
	}

	if err := f.SetPanes(sheetWorksheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return goerr.Wrap(err, "failed to freeze header")
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(worksheetHeader), max(row-1, 1))
	if err := f.AutoFilter(sheetWorksheet, "A1:"+lastCell, nil); err != nil {
		return goerr.Wrap(err, "failed to set auto filter")
	}
	return nil
}

func writeSummary(f *excelize.File, styles *xlsxStyles, r *Report) error {
	rows := [][]any{
		{"Project", r.Project.Name},
		{"Description", r.Project.Description},
		{"Report ID", r.ID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{},
		{"Total failure modes", r.Dashboard.TotalFailureModes},
		{"High risk modes", r.Dashboard.HighRiskModes},
		{"Critical modes", r.Dashboard.CriticalModes},
		{"Average RPN", r.Dashboard.AverageRPN},
		{"Open actions", r.Dashboard.OpenActions},
		{"Completed actions", r.Dashboard.CompletedActions},
		{"Unscored failure modes", r.Summary.Unscored},
		{},
		{"Band", "Count", "Percentage"},
	}
	for _, b := range r.Summary.Distribution {
		rows = append(rows, []any{b.Label, b.Count, b.Percentage})
	}
	rows = append(rows, []any{}, []any{"Top risks", "Component", "RPN", "Band"})
	for _, e := range r.Summary.TopRisks {
		band := ""
		for _, c := range r.Components {
			for _, fm := range c.FailureModes {
				if fm.FailureMode.ID == e.FailureMode.ID {
					band = fm.Band.Label
				}
			}
		}
		component := ""
		if e.Component != nil {
			component = e.Component.Name
		}
		rows = append(rows, []any{e.FailureMode.Description, component, e.Score.RPN, band})
	}

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve summary row")
		}
		if len(values) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheetSummary, cell, &values); err != nil {
			return goerr.Wrap(err, "failed to write summary row", goerr.V("row", i+1))
		}
		if err := f.SetCellStyle(sheetSummary, cell, cell, styles.bold); err != nil {
			return goerr.Wrap(err, "failed to style summary row", goerr.V("row", i+1))
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 36); err != nil {
		return goerr.Wrap(err, "failed to set summary width")
	}
	if err := f.SetColWidth(sheetSummary, "B", "D", 18); err != nil {
		return goerr.Wrap(err, "failed to set summary width")
	}
	return nil
}
