package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markuplint/internal/configloader"
	"github.com/yaklabco/markuplint/pkg/cache"
)

func newCacheCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lint result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir(cmd.Context(), global)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir(cmd.Context(), global)
			if err != nil {
				return err
			}
			store, err := cache.Open(dir)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", dir)
			return nil
		},
	})

	return cmd
}

// cacheDir resolves the cache directory from configuration.
func cacheDir(ctx context.Context, global *globalOptions) (string, error) {
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: global.configPath,
		NoConfig:     global.noConfig,
	})
	if err != nil {
		return "", fmt.Errorf("load configuration: %w", err)
	}

	if dir := loadResult.Config.Cache.Dir; dir != "" {
		return dir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	return dir, nil
}
