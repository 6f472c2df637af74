package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"modelbench/app"
	"modelbench/domain/catalog"
	"modelbench/internal"
	"modelbench/internal/config"
	"modelbench/internal/container"

	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models the training API can run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSLUG\tTASK")
			for _, m := range catalog.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Slug, m.Task)
			}
			return w.Flush()
		},
	}
}

func newTrainCmd() *cobra.Command {
	var model, target, username, networkFile string

	cmd := &cobra.Command{
		Use:   "train FILE",
		Short: "Train a model on a dataset file through the training API",
		Long: `Validate a dataset locally, submit it to the training API and save the run
for later comparison.

Example: modelbench train homes.csv --model "Random Forest" --target price --user ada`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			data, err := readFile(args[0])
			if err != nil {
				return err
			}

			req := app.TrainRequest{
				Username:     username,
				Model:        model,
				TargetColumn: target,
				Upload:       app.Upload{FileName: filepath.Base(args[0]), Data: data},
			}
			if networkFile != "" {
				raw, err := readFile(networkFile)
				if err != nil {
					return err
				}
				var cfg catalog.NetworkConfig
				if err := json.Unmarshal(raw, &cfg); err != nil {
					return fmt.Errorf("parse %s: %w", networkFile, err)
				}
				req.Network = &cfg
			}

			run, err := c.Training.Train(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, run)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model display name or slug (see 'modelbench models')")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target column")
	cmd.Flags().StringVarP(&username, "user", "u", "", "User to save the run under (default guest)")
	cmd.Flags().StringVar(&networkFile, "network-config", "", "JSON file with the neural network configuration")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("target")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history USER",
		Short: "Show a user's saved runs grouped by dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			if clearAll {
				if err := c.History.Clear(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "All model history cleared for %s\n", args[0])
				return nil
			}
			cmp, err := c.History.Comparisons(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, cmp)
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all saved runs instead of listing them")
	return cmd
}

func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, _ := internal.ParseLogLevel(cfg.Log.Level)
	return container.New(cfg, internal.NewLogger(level, cfg.Log.Format, os.Stderr))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
