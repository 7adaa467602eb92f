package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/markuplint/internal/logging"
	"github.com/yaklabco/markuplint/pkg/cache"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fsutil"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/langdetect"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/parser/markdown"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

// Runner orchestrates multi-file linting using lint pipelines.
type Runner struct {
	// Pipeline handles HTML files.
	Pipeline *lint.Pipeline

	// Markdown handles Markdown files. When nil, Markdown files go through
	// Pipeline.
	Markdown *lint.Pipeline

	// Cache stores results of lint-only runs. Nil disables caching.
	Cache *cache.Cache

	// Version is mixed into cache keys so upgrades invalidate entries.
	Version string
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// NewForRegistry creates a Runner whose HTML and Markdown pipelines
// share registry.
func NewForRegistry(registry *lint.Registry) *Runner {
	return &Runner{
		Pipeline: lint.NewPipeline(lint.NewEngine(markup.New(), registry)),
		Markdown: lint.NewPipeline(lint.NewEngine(markdown.New(markdown.FlavorGFM), registry)),
	}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are ordered by path regardless of completion order. Per-file
// failures are recorded on the outcome; only discovery and cancellation
// fail the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.Discovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger.Debug("linting files",
		logging.FieldFiles, len(files),
		logging.FieldWorkers, jobs,
	)

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = r.processFile(ctx, file, opts.Config, pipelineOpts)
			done[i] = true
			return nil
		})
	}

	// Workers record failures on the outcome and never return an error.
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesLinted, result.Stats.Linted,
		logging.FieldDiagnostics, result.Stats.Diagnostics,
		logging.FieldDuration, time.Since(started),
	)

	return result, nil
}

// pipelineFor returns the pipeline that handles kind.
func (r *Runner) pipelineFor(kind langdetect.Kind) *lint.Pipeline {
	if kind == langdetect.KindMarkdown && r.Markdown != nil {
		return r.Markdown
	}
	return r.Pipeline
}

// processFile lints one file, consulting the cache when the run does
// not modify files.
func (r *Runner) processFile(
	ctx context.Context,
	file File,
	cfg *config.Config,
	opts lint.PipelineOptions,
) FileOutcome {
	outcome := FileOutcome{Path: file.Path, Kind: file.Kind}
	pipeline := r.pipelineFor(file.Kind)

	if r.Cache == nil || opts.Fix || opts.DryRun {
		outcome.Result, outcome.Error = pipeline.ProcessFile(ctx, file.Path, cfg, opts)
		return outcome
	}

	content, info, err := fsutil.ReadFile(ctx, file.Path)
	if err != nil {
		outcome.Error = lint.ClassifyReadError(err)
		return outcome
	}

	if cfg == nil {
		cfg = config.NewConfig()
	}
	key := cache.NewKey(r.Version, cfg.Fingerprint(), file.Path, content)
	logger := logging.FromContext(ctx).With(logging.FieldFile, file.Path)

	entry, err := r.Cache.Get(key)
	if err == nil {
		logger.Debug("cached result", logging.FieldCacheHit, true)
		outcome.Cached = true
		outcome.Result = &lint.PipelineResult{
			Path:    file.Path,
			Info:    info,
			Outcome: lint.OutcomeClean,
			FileResult: &lint.FileResult{
				Document:    htmlast.NewDocument(file.Path, content),
				Diagnostics: entry.Diagnostics,
			},
		}
		if len(entry.Diagnostics) > 0 {
			outcome.Result.Outcome = lint.OutcomeIssues
		}
		return outcome
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("cache read failed", logging.FieldError, err)
	}

	pr, err := pipeline.ProcessContent(ctx, file.Path, content, cfg, opts)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	pr.Info = info
	outcome.Result = pr

	// Results with rule panics are not reproducible from the cache.
	if len(pr.RuleErrors) > 0 {
		return outcome
	}

	if err := r.Cache.Put(key, &cache.Entry{Path: file.Path, Diagnostics: pr.Diagnostics}); err != nil {
		logger.Warn("cache write failed", logging.FieldError, err)
	}

	return outcome
}
