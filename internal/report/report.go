// Package report renders parsed datasets for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"modelbench/domain/tabular"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Format selects how reports are written
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, markdown or html)", s)
}

// FileReport is the outcome of parsing one file
type FileReport struct {
	File  string
	Table *tabular.ParsedTable
	Err   error
}

type jsonReport struct {
	File    string        `json:"file"`
	Columns []string      `json:"columns,omitempty"`
	Rows    []tabular.Row `json:"rows,omitempty"`
	Total   int           `json:"total_rows"`
	Error   string        `json:"error,omitempty"`
}

// Write renders reports in the given format. rowLimit caps the rows shown per
// file; zero or less shows all.
func Write(w io.Writer, format Format, reports []FileReport, rowLimit int) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, reports, rowLimit)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(reports, rowLimit))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(Markdown(reports, rowLimit)))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeJSON(w io.Writer, reports []FileReport, rowLimit int) error {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		jr := jsonReport{File: r.File}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		} else {
			jr.Columns = r.Table.Columns
			jr.Rows = r.Table.Head(rowLimit).Rows
			jr.Total = len(r.Table.Rows)
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Markdown renders each file as a heading followed by a pipe table
func Markdown(reports []FileReport, rowLimit int) string {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", escape(r.File))
		if r.Err != nil {
			fmt.Fprintf(&b, "**error:** %s\n", escape(r.Err.Error()))
			continue
		}
		writeTable(&b, r.Table, rowLimit)
	}
	return b.String()
}

func writeTable(b *strings.Builder, table *tabular.ParsedTable, rowLimit int) {
	head := table.Head(rowLimit)
	fmt.Fprintf(b, "%d columns, %d rows", len(table.Columns), len(table.Rows))
	if len(head.Rows) < len(table.Rows) {
		fmt.Fprintf(b, " (showing %d)", len(head.Rows))
	}
	b.WriteString("\n\n")

	if len(table.Columns) == 0 {
		b.WriteString("_no columns_\n")
		return
	}

	b.WriteString("|")
	for _, c := range table.Columns {
		fmt.Fprintf(b, " %s |", escape(c))
	}
	b.WriteString("\n|")
	for range table.Columns {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range head.Rows {
		b.WriteString("|")
		for _, c := range table.Columns {
			fmt.Fprintf(b, " %s |", escape(row.Text(c)))
		}
		b.WriteString("\n")
	}
}

var escaper = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ")

func escape(s string) string {
	return escaper.Replace(s)
}

// HTML converts the markdown report to an HTML fragment
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
