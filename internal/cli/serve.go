package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/internal/server"
	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/pipeline"
)

// redisPrefix scopes server keys inside a shared Redis database.
const redisPrefix = "timeline:"

// serveCommand starts the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve timeline rendering over HTTP",
		Long: `Serve exposes POST /v1/render, GET /v1/scale and GET /healthz.

Rendered output is cached on disk, or in Redis when --redis (or
TIMELINE_REDIS_URL) is set, for server.cache_ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if redisURL != "" {
				cfg.Server.Redis = redisURL
			}

			var store cache.Cache
			if cfg.Server.Redis != "" {
				rc, err := cache.NewRedisCache(ctx, cfg.Server.Redis, redisPrefix)
				if err != nil {
					return err
				}
				store = rc
				logger.Info("using redis cache")
			} else if store, err = newCache(cfg, false); err != nil {
				return err
			}
			runner := pipeline.NewRunner(cache.WithMaxTTL(store, cfg.Server.TTL()), nil, logger)
			defer runner.Close()

			hooks := observability.NewLogHooks(logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			return server.New(runner, cfg, logger).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis:// URL for a shared artifact cache")

	return cmd
}
