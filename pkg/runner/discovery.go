package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/markuplint/pkg/langdetect"
)

// File is a discovered file and the parser family that handles it.
type File struct {
	Path string
	Kind langdetect.Kind
}

// Discover expands opts.Paths into the files to lint, sorted by absolute
// path and without duplicates. Explicitly named files only need to match
// the extension and glob filters; directories are walked, skipping
// hidden entries and vendored trees.
func Discover(ctx context.Context, opts Options) ([]File, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		opts:       opts,
		workDir:    workDir,
		extensions: make(map[string]struct{}),
		seen:       make(map[string]struct{}),
	}
	for _, ext := range opts.effectiveExtensions() {
		d.extensions[strings.ToLower(ext)] = struct{}{}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(ctx, input); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(d.files, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type discoverer struct {
	opts       Options
	workDir    string
	extensions map[string]struct{}
	seen       map[string]struct{}
	files      []File
}

// add resolves one user-supplied path.
func (d *discoverer) add(ctx context.Context, input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(d.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return d.walk(ctx, abs)
	}
	d.consider(abs)
	return nil
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case walkErr != nil && os.IsPermission(walkErr):
			return nil
		case walkErr != nil:
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && d.skipDir(p)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(ctx, p)
		}

		d.consider(p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// skipDir reports whether a directory below a walk root is excluded.
func (d *discoverer) skipDir(dir string) bool {
	rel := d.rel(dir)
	if matchAny(rel, d.opts.ExcludeGlobs) {
		return true
	}
	return !d.opts.IncludeVendored && langdetect.IsVendored(rel+"/")
}

// symlink handles a link found during a walk. Broken links are ignored;
// directory links are walked at their target only with FollowSymlinks.
func (d *discoverer) symlink(ctx context.Context, link string) error {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		return nil //nolint:nilerr // broken links are not an error
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}
	if !info.IsDir() {
		d.consider(link)
		return nil
	}
	if !d.opts.FollowSymlinks {
		return nil
	}
	// Walking the target rather than the link keeps WalkDir from
	// treating the root as a symlink and stopping.
	return d.walk(ctx, target)
}

// consider records file when it passes the kind and glob filters.
func (d *discoverer) consider(file string) {
	if _, dup := d.seen[file]; dup {
		return
	}

	kind := d.classify(file)
	if kind == langdetect.KindUnknown {
		return
	}

	rel := d.rel(file)
	if matchAny(rel, d.opts.ExcludeGlobs) {
		return
	}
	if len(d.opts.IncludeGlobs) > 0 && !matchAny(rel, d.opts.IncludeGlobs) {
		return
	}

	d.seen[file] = struct{}{}
	d.files = append(d.files, File{Path: file, Kind: kind})
}

// classify picks the parser family. Markdown is only considered when
// enabled; any other file must carry a configured extension and is
// linted as HTML.
func (d *discoverer) classify(file string) langdetect.Kind {
	if d.opts.Markdown && langdetect.Classify(file, nil) == langdetect.KindMarkdown {
		return langdetect.KindMarkdown
	}
	if _, ok := d.extensions[strings.ToLower(filepath.Ext(file))]; ok {
		return langdetect.KindHTML
	}
	return langdetect.KindUnknown
}

func (d *discoverer) rel(p string) string {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return p
	}
	return rel
}

func matchAny(rel string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(rel, pattern)
	})
}

// matchGlob matches a slash-separated path against pattern. "**" spans
// any number of segments, and a pattern without a slash also matches
// the base name alone.
func matchGlob(name, pattern string) bool {
	name = filepath.ToSlash(name)
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")

	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, err := path.Match(pattern, path.Base(name)); err == nil && ok {
			return true
		}
	}

	return matchSegments(strings.Split(name, "/"), strings.Split(pattern, "/"))
}

func matchSegments(segments, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := range len(segments) + 1 {
				if matchSegments(segments[i:], rest) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segments[0]); err != nil || !ok {
			return false
		}
		segments, pattern = segments[1:], pattern[1:]
	}

	return len(segments) == 0
}
