package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths holds the configuration files found for one run. Empty
// fields mean no file was found or given.
type ConfigPaths struct {
	User     string
	Project  string
	Explicit string
}

// ProjectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".markuplint.yml",
	".markuplint.yaml",
	".markuplint.toml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var userConfigFiles = []string{"config.yml", "config.yaml", "config.toml"}

// A .git entry may be a file in worktrees and submodules.
//
//nolint:gochecknoglobals // Read-only lookup table.
var repositoryMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the user config under UserConfigDir and the
// nearest project config at or above workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		User:    firstFile(UserConfigDir(), userConfigFiles),
		Project: project,
	}, nil
}

// UserConfigDir is $XDG_CONFIG_HOME/markuplint, falling back to
// ~/.config/markuplint. It is empty when no home directory is known.
func UserConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "markuplint")
}

// FindProjectConfig walks upward from startDir and returns the first
// project config found. The search ends after the repository root, the
// home directory or the filesystem root; an empty result is not an error.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstFile(dir, ProjectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if isRepositoryRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a regular file
// in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range repositoryMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
