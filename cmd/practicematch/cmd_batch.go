package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/practicematch/internal/output"
	"github.com/crimson-sun/practicematch/internal/output/file"
	"github.com/crimson-sun/practicematch/internal/output/multi"
	"github.com/crimson-sun/practicematch/internal/output/stdout"
	"github.com/crimson-sun/practicematch/internal/pipeline"
	"github.com/crimson-sun/practicematch/internal/source"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		provider   string
		sourcePath string
		outKind    string
		outPath    string
		truncate   bool
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Select primary practice areas for every attorney in a source",
		Long: `Loads attorney profiles from the configured source (file, payload or
postgres), selects a primary practice area for each and writes one JSON
selection per line.

Example:
  practicematch batch --source file --source-path attorneys.json
  PRACTICEMATCH_ENDPOINT=https://cms.example.com practicematch batch --source payload --output file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if provider != "" {
				cfg.Source.Provider = provider
			}
			if sourcePath != "" {
				cfg.Source.Path = sourcePath
			}
			if outKind != "" {
				cfg.Output.Kind = outKind
			}
			if outPath != "" {
				cfg.Output.Path = outPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			eng, err := a.engine()
			if err != nil {
				return err
			}
			ctor, err := source.Get(cfg.Source.Provider)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, source.Providers())
			}
			out, err := a.outputs(cmd, cfg.Output.Kind, cfg.Output.Path, truncate)
			if err != nil {
				return err
			}

			p := pipeline.New(ctor(), eng, out)
			_, runErr := p.Run(cmd.Context(), cfg.SourceConfig())
			if err := p.Close(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&provider, "source", "", "profile source: file, payload or postgres")
	cmd.Flags().StringVar(&sourcePath, "source-path", "", "roster file for the file source")
	cmd.Flags().StringVar(&outKind, "output", "", "stdout, file or both")
	cmd.Flags().StringVar(&outPath, "output-path", "", "NDJSON file for the file output")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "replace the output file instead of appending")
	return cmd
}

func (a *app) outputs(cmd *cobra.Command, kind, path string, truncate bool) (output.Output, error) {
	verbosity, err := output.ParseVerbosity(a.cfg.Output.Verbosity)
	if err != nil {
		return nil, err
	}
	var outs []output.Output
	if kind == "stdout" || kind == "both" {
		outs = append(outs, stdout.NewWriter(cmd.OutOrStdout(), verbosity, a.cfg.Output.Pretty))
	}
	if kind == "file" || kind == "both" {
		var opts []file.Option
		if truncate {
			opts = append(opts, file.WithTruncate())
		}
		f, err := file.New(path, verbosity, opts...)
		if err != nil {
			return nil, err
		}
		outs = append(outs, f)
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}
