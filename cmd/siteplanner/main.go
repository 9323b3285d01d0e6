package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/siteplanner/pkg/cost"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "siteplanner",
		Short: "Procedural site-layout generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(validateZoneCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(metricsCmd())
	rootCmd.AddCommand(costCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [request.yaml|project-path]",
		Short: "Run the layout pipeline and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "geojson", "output format: geojson or json")
	cmd.Flags().BoolVar(&opts.check, "check", false, "verify layout invariants and fail on any error")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "seed string, overriding the request")
	cmd.Flags().StringVar(&opts.store, "store", "", "sqlite database to record the layout in")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request.yaml|project-path]",
		Short: "Validate a site request without running the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func validateZoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-zone [placement.yaml]",
		Short: "Check whether a building footprint may be placed among zones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateZone(cmd.OutOrStdout(), args[0])
		},
	}
}

func renderCmd() *cobra.Command {
	var out string
	var ppm float64

	cmd := &cobra.Command{
		Use:   "render [request.yaml|project-path]",
		Short: "Render a top-down SVG of the generated layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), args[0], out, ppm)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "SVG file to write (default stdout)")
	cmd.Flags().Float64Var(&ppm, "scale", 0, "pixels per meter (default fits 1200 px)")
	return cmd
}

func metricsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics [request.yaml|project-path]",
		Short: "Compute and display layout metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")
	return cmd
}

func costCmd() *cobra.Command {
	fin := cost.DefaultFinancing()

	cmd := &cobra.Command{
		Use:   "cost [request.yaml|project-path]",
		Short: "Compute and display a construction cost estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCost(cmd.OutOrStdout(), args[0], fin)
		},
	}

	cmd.Flags().Float64Var(&fin.InterestRate, "interest", fin.InterestRate, "annual interest rate")
	cmd.Flags().IntVar(&fin.DebtTermYears, "term", fin.DebtTermYears, "debt term in years")
	return cmd
}

func serveCmd() *cobra.Command {
	var port, db string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, port, db)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (default $SITEPLANNER_PORT or 8080)")
	cmd.Flags().StringVar(&db, "db", "", "sqlite database for stored layouts (default $SITEPLANNER_DB)")
	return cmd
}
