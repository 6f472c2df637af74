// Package sniffer turns an uploaded dataset file into a tabular.ParsedTable.
//
// Dispatch is by file extension only: xlsx/xls go through the spreadsheet
// decoders, csv/txt through the delimited-text splitter. Parsing is pure over
// the input buffer; the sniffer keeps no state between calls and never logs.
package sniffer

import (
	"fmt"

	"modelbench/domain/tabular"
)

// Options tunes the delimited-text path.
type Options struct {
	// PadShortRows fills keys missing from short delimited lines with empty
	// cells. Off by default: short lines simply lack trailing keys.
	PadShortRows bool
}

// Sniffer parses dataset files. The zero value is ready to use.
type Sniffer struct {
	opts Options
}

// New creates a sniffer with the given options
func New(opts Options) *Sniffer {
	return &Sniffer{opts: opts}
}

// Parse decodes data according to the extension of name.
func (s *Sniffer) Parse(name string, data []byte) (*tabular.ParsedTable, error) {
	format, ext := tabular.DetectFormat(name)
	switch format {
	case tabular.FormatSpreadsheet:
		return s.parseSpreadsheet(data)
	case tabular.FormatDelimited:
		return s.parseDelimited(data)
	default:
		return nil, &tabular.UnsupportedFormatError{Extension: ext}
	}
}

func decodeError(format tabular.Format, err error) error {
	return &tabular.DecodeError{Format: format, Err: err}
}

// guard converts a decoder panic into a DecodeError. Third-party workbook
// readers are not hardened against arbitrary input.
func guard(format tabular.Format, err *error) {
	if r := recover(); r != nil {
		*err = decodeError(format, fmt.Errorf("decoder panic: %v", r))
	}
}
