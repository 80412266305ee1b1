package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/microdca/dcasim/internal/config"
)

var examplePath string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example scenario file",
	RunE:  runExample,
}

func init() {
	exampleCmd.Flags().StringVarP(&examplePath, "output", "o", "dcasim.yaml", "destination file, or - for stdout")
}

func runExample(cmd *cobra.Command, args []string) error {
	data, err := config.Marshal(config.NewInputParser().CreateExampleConfiguration())
	if err != nil {
		return err
	}
	if examplePath == "-" {
		fmt.Fprint(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(examplePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", examplePath, err)
	}
	log.Info().Str("file", examplePath).Msg("example scenario written")
	return nil
}
