package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/onepercent/pkg/cache"
	"github.com/matzehuels/onepercent/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.RedisAddr != "" {
				return errors.New(errors.ErrCodeUnsupported, "cache clear only works on the file cache; expire Redis keys with TTL or FLUSHDB")
			}
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo(c.out, "Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(c.out, "Cleared %d cached entries", count)
			printDetail(c.out, "Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr := c.Config.Cache.RedisAddr; addr != "" {
				fmt.Fprintf(c.out, "redis://%s/%d\n", addr, c.Config.Cache.RedisDB)
				return nil
			}
			dir, err := c.fileCacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, dir)
			return nil
		},
	}
}

// fileCacheDir returns the configured cache directory or the XDG default.
func (c *CLI) fileCacheDir() (string, error) {
	if dir := c.Config.Cache.Dir; dir != "" {
		return dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}
