package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word-cloud pipeline over HTTP",
		Long: `Serve the word-cloud pipeline over HTTP.

Endpoints:
  POST /v1/layout     words or text to layout JSON
  POST /v1/render     words or text to SVG, PNG or JSON (?format=)
  POST /v1/visualize  layout JSON to SVG, PNG or JSON
  GET  /v1/shapes     available shapes and palettes
  GET  /healthz       liveness

The cache backend comes from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, timeout, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "per-request pipeline timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, timeout time.Duration, noCache bool) error {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	srv := server.New(server.Config{
		Addr:           addr,
		Cache:          cc,
		Logger:         c.Logger,
		RequestTimeout: timeout,
	})
	defer srv.Close()

	printInfo("Serving on %s", StyleLink.Render(displayAddr(addr)))
	cacheDesc := c.cacheLocation()
	if noCache {
		cacheDesc = "none"
	}
	printKeyValue("cache", cacheDesc)
	printKeyValue("timeout", timeout.String())
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	return nil
}

// displayAddr turns ":8080" into a clickable local URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
