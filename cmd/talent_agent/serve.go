package main

import (
	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the dashboard, candidate and search views as REST endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			cfg := server.Config{
				Port:       a.cfg.Port,
				CORSOrigin: a.cfg.CORSOrigin,
				RateLimit:  a.cfg.RateLimit,
				RateBurst:  a.cfg.RateBurst,
				URLOptions: a.urlOptions(ingestion.TargetResume, false),
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			return server.New(cfg, a.ctrl, a.log).Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	return cmd
}
