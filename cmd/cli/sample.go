package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"modelbench/internal/testkit"

	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	cfg := testkit.DefaultHousingConfig()
	var format, output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic housing dataset for trying out models",
		Long: `Generate a deterministic housing dataset with a regression target (price)
and a classification target (sold).

Example: modelbench sample --rows 500 --format xlsx -o homes.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Rows < 1 {
				return fmt.Errorf("--rows must be positive")
			}
			records := testkit.NewHousingDataGenerator(cfg).Generate()

			var buf bytes.Buffer
			switch format {
			case "csv":
				if err := testkit.WriteDelimited(&buf, records, ','); err != nil {
					return err
				}
			case "tsv", "txt":
				if err := testkit.WriteDelimited(&buf, records, '\t'); err != nil {
					return err
				}
			case "xlsx":
				data, err := testkit.WriteWorkbook(records)
				if err != nil {
					return err
				}
				buf.Write(data)
			default:
				return fmt.Errorf("unknown sample format %q (want csv, tsv or xlsx)", format)
			}

			if output == "" || output == "-" {
				if format == "xlsx" {
					return fmt.Errorf("xlsx output needs --output")
				}
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			return os.WriteFile(output, buf.Bytes(), 0o644)
		},
	}

	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "number of rows to generate")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	cmd.Flags().Float64Var(&cfg.Noise, "noise", cfg.Noise, "price noise standard deviation, in thousands")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv, tsv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
