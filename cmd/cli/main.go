package main

import (
	"fmt"
	"os"

	apperrors "modelbench/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "modelbench",
		Short:         "Inspect datasets and train models against the training API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSniffCmd(),
		newModelsCmd(),
		newTrainCmd(),
		newHistoryCmd(),
		newSampleCmd(),
		newLoginCmd(),
		newSignupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if apperrors.IsAppError(err) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", apperrors.GetCode(err), err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
