package tabular

import "strings"

// Format enumerates the supported source kinds.
type Format string

const (
	// FormatUnknown represents an unsupported extension.
	FormatUnknown Format = ""
	// FormatSpreadsheet represents xlsx/xls workbooks.
	FormatSpreadsheet Format = "spreadsheet"
	// FormatDelimited represents comma- or tab-separated text.
	FormatDelimited Format = "delimited"
)

// Extension returns the lower-cased substring after the last "." of name.
// A name without a dot is returned whole, lower-cased.
func Extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// DetectFormat infers the source kind from the file name's extension.
func DetectFormat(name string) (Format, string) {
	ext := Extension(name)
	switch ext {
	case "xlsx", "xls":
		return FormatSpreadsheet, ext
	case "csv", "txt":
		return FormatDelimited, ext
	default:
		return FormatUnknown, ext
	}
}

// MimeType returns the content type used when forwarding a file with this
// extension.
func MimeType(ext string) string {
	switch ext {
	case "csv":
		return "text/csv"
	case "txt":
		return "text/plain"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "xls":
		return "application/vnd.ms-excel"
	}
	return "application/octet-stream"
}
