package ports

import (
	"modelbench/domain/tabular"
)

// TableParser turns an uploaded file into a parsed table. Implementations
// must be safe for concurrent use and hold no per-call state.
type TableParser interface {
	Parse(name string, data []byte) (*tabular.ParsedTable, error)
}
