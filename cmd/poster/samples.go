package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesprial/go-reddit-poster/internal/input"
)

func newSamplesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Write sample post files to get started",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := input.WriteSamples(dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Printf("%s %s\n", green("Created:"), p)
			}
			fmt.Println("Edit these files and run: poster run --file sample_posts.json")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	return cmd
}
