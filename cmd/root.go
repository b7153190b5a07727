package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/evanmarlow/givesite/internal/build"
	"github.com/evanmarlow/givesite/internal/config"
)

const toolVersion = "1.0.0"

var (
	flagConfig  string
	flagData    string
	flagOut     string
	flagClean   bool
	flagRefetch bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "givesite",
	Short: "Static giving-portfolio site builder",
	Long: `givesite reads an organization roster from CSV and assembles a static
portfolio site, resolving a favicon for every organization along the way.

Favicons are resolved through an ordered chain of strategies, stopping at
the first one that produces a usable artifact:
  • Cached artifact   — a previously fetched icon under the favicon dir
  • HTML discovery    — <link rel="...icon..."> tags on the site's root page
  • Well-known paths  — /favicon.ico, /apple-touch-icon.png and friends
  • Icon service      — a remote favicon-resolution service, keyed by domain`,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the dist directory",
	Long: `Build the site: load the organization CSV, fetch favicons, render the
portfolio table, and assemble the final pages under the dist directory.

Examples:
  givesite build
  givesite build --data data/organizations.csv --out dist
  givesite build --clean --refetch --verbose`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to a givesite.toml config file")
	buildCmd.Flags().StringVarP(&flagData, "data", "d", "", "Path to the organization CSV (overrides config)")
	buildCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output directory for the built site (overrides config)")
	buildCmd.Flags().BoolVar(&flagClean, "clean", false, "Remove the output directory before building")
	buildCmd.Flags().BoolVar(&flagRefetch, "refetch", false,
		"Bypass the favicon cache and re-run the full strategy chain for every\n"+
			"organization, overwriting cached artifacts.")
	buildCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(buildCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagData != "" {
		cfg.Paths.CSVPath = flagData
	}
	if flagOut != "" {
		cfg.Paths.DistDir = flagOut
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "givesite v%s\n", toolVersion)

	return build.Run(ctx, build.Options{
		Config:      cfg,
		Clean:       flagClean,
		Refetch:     flagRefetch,
		Logger:      logger,
		Stdout:      os.Stdout,
		PrettyTable: isatty.IsTerminal(os.Stdout.Fd()),
	})
}
