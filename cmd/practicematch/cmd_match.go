package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/practicematch/internal/engine/catalog"
)

func (a *app) matchCmd() *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "match [label...]",
		Short: "Select the primary practice area for a list of labels",
		Long: `Prints the selected practice-area identifier, or "none" when no area
reaches the threshold.

Example:
  practicematch match "Labor" "Employment Law"
  practicematch match --explain "Construction Law" "Mechanic's Liens"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			if explain {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(eng.Explain(args))
			}
			area, ok := eng.Select(args)
			if !ok {
				area = "none"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), area)
			return err
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "print the full ranking as JSON")
	return cmd
}

func (a *app) catalogCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the practice-area catalog",
		Long: `Prints the catalog in use. The YAML form can be edited and passed back
with --catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				fmt.Fprintf(out, "# catalog %s, threshold %d\n", catalog.Version, a.cfg.Engine.Threshold)
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(cat.Areas()); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Areas())
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "yaml or json")
	return cmd
}
