package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/promptdeck/internal/app"
	"github.com/MrSnakeDoc/promptdeck/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the promptdeck server",
		Long: `Start the promptdeck HTTP server.

Configuration is read from PROMPTDECK_* environment variables, after
loading .env.local and .env when present.

The server provides:
  - /api/prompts, /api/custom, /api/tags - catalog API
  - /healthz - liveness
  - /readyz  - readiness (catalog loaded)
  - /infra, /metrics, /reload - admin endpoints`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := app.New(ctx, config.Load())
			if err != nil {
				return err
			}
			return a.Run(ctx)
		},
	}
}
