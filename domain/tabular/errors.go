package tabular

import (
	"fmt"

	"modelbench/domain/core"
)

// UnsupportedFormatError is returned when the file extension is not one of
// xlsx, xls, csv or txt.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: upload CSV, TXT, or Excel", e.Extension)
}

// Is matches core.ErrUnsupportedFormat
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == core.ErrUnsupportedFormat
}

// DecodeError is returned when the content does not parse as the format its
// extension claims.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches core.ErrDecode
func (e *DecodeError) Is(target error) bool {
	return target == core.ErrDecode
}
