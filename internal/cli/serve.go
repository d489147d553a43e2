package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/labelsheet/pkg/server"
)

type serveOpts struct {
	addr        string
	redisURL    string
	presetsFile string
	workers     int
	maxCount    int
	noCache     bool
}

// serveCommand creates the serve command, which runs the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: server.DefaultAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve label sheets over HTTP",
		Long: `Serve runs an HTTP service:

  GET  /healthz   liveness probe
  GET  /version   build information
  GET  /presets   label stocks as JSON
  GET  /preview   one label as PNG
  POST /labels    label sheet download (JSON or form body)

The service stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			reg, err := loadRegistry(opts.presetsFile)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:     opts.addr,
				Runner:   runner,
				Registry: reg,
				Logger:   logger,
				Workers:  opts.workers,
				MaxCount: opts.maxCount,
			})
			cacheKind := "file"
			switch {
			case opts.noCache:
				cacheKind = "none"
			case opts.redisURL != "" || os.Getenv(envRedisURL) != "":
				cacheKind = "redis"
			}
			printInfo("Listening on %s", StyleHighlight.Render(opts.addr))
			printKeyValue("Presets", fmt.Sprintf("%d", len(reg.Names())))
			printKeyValue("Cache", cacheKind)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis cache URL (default: $"+envRedisURL+")")
	cmd.Flags().StringVar(&opts.presetsFile, "presets-file", "", "TOML file with additional presets")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel label renderers per request (default: one per CPU)")
	cmd.Flags().IntVar(&opts.maxCount, "max-count", 0, "largest accepted count (default 5000)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
