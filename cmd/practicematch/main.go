package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/practicematch/internal/config"
	"github.com/crimson-sun/practicematch/internal/engine"
	"github.com/crimson-sun/practicematch/internal/engine/catalog"
	"github.com/crimson-sun/practicematch/internal/engine/classifier"
	"github.com/crimson-sun/practicematch/internal/logging"
	"github.com/crimson-sun/practicematch/internal/model"

	// Register source implementations.
	_ "github.com/crimson-sun/practicematch/internal/source/file"
	_ "github.com/crimson-sun/practicematch/internal/source/payload"
	_ "github.com/crimson-sun/practicematch/internal/source/postgres"
)

// app carries state shared by every subcommand.
type app struct {
	configPath  string
	catalogPath string
	logLevel    string
	threshold   int

	cfg config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "practicematch",
		Short: "Select an attorney's primary practice area from free-text labels",
		Long: `practicematch maps the practice-area labels attached to an attorney profile
to one canonical practice area, used to pick the profile's hero image.

Labels are normalized, scored against weighted whole-word patterns, ranked by
score then priority, and rejected when the best score is below the
confidence threshold.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $PRACTICEMATCH_CONFIG)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "YAML file replacing the built-in practice-area catalog")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().IntVar(&a.threshold, "threshold", -1, "minimum winning score (default from config)")

	root.AddCommand(
		a.matchCmd(),
		a.batchCmd(),
		a.tagCmd(),
		a.catalogCmd(),
		a.serveCmd(),
	)
	return root
}

// setup loads configuration and installs the logger before any subcommand
// runs. Flags override config values.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.threshold >= 0 {
		cfg.Engine.Threshold = a.threshold
	}
	a.cfg = cfg

	logging.Init(jsonLogs(cmd, cfg), logging.ParseLevel(cfg.LogLevel))
	return nil
}

// jsonLogs reports whether cmd writes NDJSON results to stdout, in which case
// log lines are JSON too. A --output flag on the command wins over config.
func jsonLogs(cmd *cobra.Command, cfg config.Config) bool {
	if cmd.Name() != "batch" {
		return false
	}
	kind := cfg.Output.Kind
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		kind = f.Value.String()
	}
	return kind != "file"
}

// engine builds the matcher from the configured catalog and threshold.
func (a *app) engine() (*engine.Engine, error) {
	if a.cfg.Engine.Threshold < 0 {
		return nil, fmt.Errorf("threshold must not be negative, got %d", a.cfg.Engine.Threshold)
	}
	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}
	return engine.New(cat, classifier.New(a.cfg.Engine.Threshold)), nil
}

func (a *app) catalog() (*catalog.Catalog, error) {
	if a.catalogPath == "" {
		return catalog.Default(), nil
	}
	data, err := os.ReadFile(a.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var areas []model.Area
	if err := yaml.Unmarshal(data, &areas); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", a.catalogPath, err)
	}
	cat, err := catalog.New(areas)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", a.catalogPath, err)
	}
	slog.Debug("custom catalog loaded", "path", a.catalogPath, "areas", cat.Len())
	return cat, nil
}
