package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gen-epub-book/internal/cache"
)

func newCacheCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache of fetched network resources",
		Long: `Network-Cover, Network-Include and the other network elements are
downloaded at pack time. With --cache (or cache.enabled in the config) each
download is kept on disk and reused by later builds.`,
	}
	cmd.AddCommand(newCacheClearCmd(s), newCachePathCmd(s))
	return cmd
}

func newCacheClearCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached resource",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cache.New(s.cfg.Cache.Dir).Clear()
			if err != nil {
				return err
			}
			ok(cmd.OutOrStdout(), "Removed %d cached resource(s) from %s", n, s.cfg.Cache.Dir)
			return nil
		},
	}
}

func newCachePathCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), cache.New(s.cfg.Cache.Dir).Dir())
		},
	}
}
