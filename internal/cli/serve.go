package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramlayout/internal/server"
	"github.com/matzehuels/diagramlayout/pkg/cache"
	"github.com/matzehuels/diagramlayout/pkg/pipeline"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	addr        string
	redisURL    string
	redisPrefix string
	cacheTTL    time.Duration
	noCache     bool
	maxBody     int64
	timeout     time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOptions{
		addr:        ":8080",
		redisPrefix: appName + ":",
		cacheTTL:    cache.TTLLayout,
		maxBody:     server.DefaultMaxBodyBytes,
		timeout:     30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

  POST /v1/layout?theme=dark   diagram document in, layout document out
  GET  /v1/config/{preset}     preset configuration
  GET  /healthz                liveness check

Layouts are cached in Redis when --redis-url is set, otherwise in the local
cache directory. Stop the server with Ctrl-C; in-flight requests finish first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return c.runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for a shared cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", opts.redisPrefix, "key prefix in Redis")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", opts.cacheTTL, "how long layouts stay cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum request body in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout (0 disables)")

	return cmd
}

// runServe opens the cache and serves until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	store, desc, err := c.openServeCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TTL = opts.cacheTTL
	defer runner.Close()

	srv := server.New(runner, c.Logger, server.Options{
		MaxBodyBytes: opts.maxBody,
		Timeout:      opts.timeout,
	})

	printSuccess("Serving layouts")
	printKeyValue("address", opts.addr)
	printKeyValue("cache", desc)
	printNewline()

	return srv.ListenAndServe(ctx, opts.addr)
}

// openServeCache picks the cache backend and describes it for display.
func (c *CLI) openServeCache(ctx context.Context, opts serveOptions) (cache.Cache, string, error) {
	switch {
	case opts.noCache:
		printWarning("Caching disabled")
		return cache.NewNullCache(), "disabled", nil

	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(opts.redisURL, opts.redisPrefix)
		if err != nil {
			return nil, "", err
		}
		spinner := newSpinnerWithContext(ctx, "Connecting to Redis...")
		spinner.Start()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			spinner.StopWithError("Redis unreachable")
			rc.Close()
			return nil, "", err
		}
		spinner.Stop()
		return rc, "redis (" + opts.redisPrefix + "*)", nil

	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), "disabled", nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, "", err
		}
		return fc, dir, nil
	}
}
