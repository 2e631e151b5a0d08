package main

import (
	"fmt"

	"github.com/spf13/cobra"

	poster "github.com/jamesprial/go-reddit-poster"
	"github.com/jamesprial/go-reddit-poster/internal/web"
)

func newServeCmd(verbose *bool) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbose)

			cfg, err := poster.ConfigFromEnv()
			if err != nil {
				return err
			}
			cfg.Logger = logger

			fmt.Printf("%s http://%s\n", bold("Web interface:"), displayAddr(addr))
			return web.NewServer(cfg, logger).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":7860", "listen address")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
