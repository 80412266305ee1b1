package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/microdca/dcasim/internal/calculation"
	"github.com/microdca/dcasim/internal/config"
	"github.com/microdca/dcasim/internal/output"
)

var (
	projConfigPath string
	projFormat     string
	projOutputDir  string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the long-horizon cash-only compounding projection",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&projConfigPath, "config", "c", "", "scenario file (required)")
	projectCmd.Flags().StringVarP(&projFormat, "format", "f", "console", "output format: console, json, or csv-projection")
	projectCmd.Flags().StringVarP(&projOutputDir, "output", "o", "", "also write csv and json reports into this directory")
	_ = projectCmd.MarkFlagRequired("config")
}

func runProject(cmd *cobra.Command, args []string) error {
	f, err := config.NewInputParser().LoadFromFile(projConfigPath)
	if err != nil {
		return err
	}
	if f.Projection == nil {
		return fmt.Errorf("%s has no projection section", projConfigPath)
	}

	engine := calculation.NewEngine()
	res, err := engine.RunProjection(f.Projection)
	if err != nil {
		return err
	}

	rep := &output.Report{Name: "Cash-Only Projection", Projection: res}

	formatter := output.GetFormatterByName(projFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %v)", projFormat, output.AvailableFormatterNames())
	}
	data, err := formatter.Format(rep)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))

	if projOutputDir != "" {
		return writeReports(rep, projOutputDir, "csv-projection", "json")
	}
	return nil
}
