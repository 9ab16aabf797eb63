package export

import "strings"

// Format identifies a rendered export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat normalises raw input into a known Format.
func ParseFormat(raw string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatCSV:
		return FormatCSV, true
	case FormatPDF:
		return FormatPDF, true
	}
	return "", false
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv"
	}
	return "application/octet-stream"
}

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Notes   []string
	Headers []string
	Rows    []map[string]string
}
