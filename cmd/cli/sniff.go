package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"modelbench/adapters/sniffer"
	"modelbench/internal/report"
	"modelbench/ports"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newSniffCmd() *cobra.Command {
	var format string
	var rows int
	var pad bool

	cmd := &cobra.Command{
		Use:   "sniff FILE...",
		Short: "Parse dataset files and print their columns and leading rows",
		Long: `Parse one or more CSV, TXT, XLSX or XLS files the same way uploads are
parsed and print the result. Files are parsed concurrently and independently;
a file that fails to parse is reported without stopping the others.

Example: modelbench sniff sales.csv survey.xlsx --format markdown --rows 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			parser := sniffer.New(sniffer.Options{PadShortRows: pad})
			reports, err := sniffFiles(cmd.Context(), parser, args)
			if err != nil {
				return err
			}
			if err := report.Write(cmd.OutOrStdout(), f, reports, rows); err != nil {
				return err
			}
			for _, r := range reports {
				if r.Err != nil {
					return fmt.Errorf("%d of %d files could not be parsed", countFailed(reports), len(reports))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, markdown or html")
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "Rows to show per file (0 for all)")
	cmd.Flags().BoolVar(&pad, "pad-short-rows", false, "Fill keys missing from short delimited lines with empty cells")

	return cmd
}

// sniffFiles parses each path in its own goroutine. Per-file failures are
// kept in the report; only a cancelled context aborts the batch.
func sniffFiles(ctx context.Context, parser ports.TableParser, paths []string) ([]report.FileReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([]report.FileReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = sniffFile(parser, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func sniffFile(parser ports.TableParser, path string) report.FileReport {
	r := report.FileReport{File: filepath.Base(path)}
	data, err := readFile(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.Table, r.Err = parser.Parse(r.File, data)
	return r
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func countFailed(reports []report.FileReport) int {
	n := 0
	for _, r := range reports {
		if r.Err != nil {
			n++
		}
	}
	return n
}
