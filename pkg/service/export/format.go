package export

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Format is an export file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = goerr.New("unsupported export format")

// ParseFormat parses a format name; "yml" and "excel" are accepted as aliases
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", goerr.Wrap(ErrUnsupportedFormat, "unknown format", goerr.V("format", s))
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatYAML:
		return "application/yaml"
	}
	return "application/octet-stream"
}

func (f Format) Extension() string {
	return "." + string(f)
}
