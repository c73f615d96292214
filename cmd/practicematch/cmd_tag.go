package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/practicematch/internal/engine/tagger"
)

func (a *app) tagCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "tag <posts.json>",
		Short: "Derive newsroom categories and tags for blog posts",
		Long: `Reads a JSON array of posts ({title, excerpt, author, categories, tags,
body}) and prints one JSON object per post with its category, practice-area
tags and topical tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var posts []tagger.Post
			if err := json.Unmarshal(data, &posts); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			tg := tagger.New(cat)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			for _, p := range posts {
				if err := enc.Encode(tg.Tag(p)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
