package main

import (
	"github.com/spf13/cobra"

	"github.com/crimson-sun/practicematch/internal/engine/tagger"
	"github.com/crimson-sun/practicematch/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Long: `Serves:
  POST /api/match        {"labels": [...]}; add ?explain=1 for the ranking
  GET  /api/areas        the catalog with hero images
  GET  /api/areas/{id}   one area with every image variant
  POST /api/posts/tags   {"posts": [...]}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			return server.New(eng, tagger.New(eng.Catalog()), addr).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
