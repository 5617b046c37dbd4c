package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layouts and renders",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and render",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.clearCache(cmd.Context())
		},
	}
}

// clearCache empties the configured backend.
func (c *CLI) clearCache(ctx context.Context) error {
	cc, err := c.openCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer cc.Close()

	clearer, ok := cc.(cache.Clearer)
	if !ok {
		printInfo("Nothing to clear")
		return nil
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cache cleared")
	printDetail("Backend: %s", c.cacheLocation())
	return nil
}

// cacheLocation describes where the configured backend keeps its entries.
func (c *CLI) cacheLocation() string {
	cfg := c.Config.Cache
	switch cfg.Backend {
	case cache.BackendRedis:
		return "redis " + redactURL(cfg.RedisURL)
	case cache.BackendMongo:
		db := cfg.MongoDatabase
		if db == "" {
			db = cache.DefaultMongoDatabase
		}
		coll := cfg.MongoCollection
		if coll == "" {
			coll = cache.DefaultMongoCollection
		}
		return "mongo " + db + "." + coll
	case cache.BackendNone:
		return "none"
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return "file"
	}
	return dir
}

// redactURL hides the password in a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	return u.Redacted()
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.cacheLocation())
			return nil
		},
	}
}
