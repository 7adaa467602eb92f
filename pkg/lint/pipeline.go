package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/markuplint/internal/logging"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/fsutil"
	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// DefaultMaxFixPasses bounds the fix loop. Fixes rejected for overlapping
// an accepted fix get another chance on the next pass.
const DefaultMaxFixPasses = 10

// File-level failures. Rule violations are never errors.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")

	// ErrFileModified means the file changed on disk between reading and
	// writing fixes. The file is left untouched.
	ErrFileModified = errors.New("file modified during processing")

	// ErrVerifyFailed means the fixed text no longer parses into a
	// well-formed tree. The fixes are discarded.
	ErrVerifyFailed = errors.New("fixed content failed verification")
)

// Outcome classifies what the pipeline did with a file.
type Outcome int

const (
	OutcomeClean Outcome = iota
	OutcomeIssues
	// OutcomePending holds fixed content that was not written (dry run).
	OutcomePending
	OutcomeFixed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClean:
		return "clean"
	case OutcomeIssues:
		return "issues"
	case OutcomePending:
		return "pending"
	case OutcomeFixed:
		return "fixed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// PipelineResult is the result of running one file through the pipeline.
// The embedded FileResult is from the last lint pass, so after a
// successful fix it holds only what the fixes could not resolve.
type PipelineResult struct {
	*FileResult

	Path    string
	Info    *fsutil.FileInfo
	Outcome Outcome

	// Reason explains OutcomeSkipped.
	Reason string

	// Fixed is the content after all passes; nil when nothing changed.
	Fixed []byte

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	// BackupPath names the backup written before the file was replaced.
	BackupPath string

	Passes  int
	Applied int
}

// Changed reports whether fixes altered the content.
func (pr *PipelineResult) Changed() bool {
	return pr.Fixed != nil
}

// Summary describes the result in a few words.
func (pr *PipelineResult) Summary() string {
	switch pr.Outcome {
	case OutcomeSkipped:
		return "skipped: " + pr.Reason
	case OutcomeFixed:
		if pr.BackupPath != "" {
			return "fixed, backup at " + pr.BackupPath
		}
		return "fixed"
	case OutcomePending:
		return countNoun(pr.Applied, "edit") + " pending"
	case OutcomeIssues:
		return countNoun(pr.IssueCount(), "issue")
	default:
		return "clean"
	}
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// PipelineOptions controls fixing and writing.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// QuickModCheck compares only size and mtime before writing instead
	// of rehashing the file.
	QuickModCheck bool

	// Verify re-parses fixed content and checks the tree's structural
	// invariants before accepting it.
	Verify bool

	// MaxPasses limits lint-and-fix iterations; 0 means DefaultMaxFixPasses.
	MaxPasses int
}

// PipelineOptionsFromConfig derives pipeline options from cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := PipelineOptions{
		Backup: fsutil.DefaultBackupConfig(),
		Verify: true,
	}
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = BackupConfigFromConfig(cfg)
	return opts
}

// BackupConfigFromConfig derives backup settings; --no-backups wins.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Pipeline lints one file and, when asked, fixes it safely.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, lints it and writes fixes back. The write is
// abandoned if the file changed since it was read; a backup is taken
// first when configured, and the replacement is atomic.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, ClassifyReadError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Info = info

	if result.Outcome != OutcomePending || opts.DryRun {
		return result, nil
	}

	if err := p.commit(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessContent lints content held in memory and never touches disk.
// When fixing, accepted edits are applied and the text linted again until
// no fixes remain or MaxPasses is reached; the result is left pending.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	fixed, err := p.fixLoop(ctx, result, content, cfg, opts)
	if err != nil {
		return nil, err
	}

	if result.Applied == 0 {
		result.Outcome = OutcomeClean
		if result.HasIssues() {
			result.Outcome = OutcomeIssues
		}
		return result, nil
	}

	if opts.Verify {
		if err := p.verify(ctx, path, fixed); err != nil {
			result.Outcome = OutcomeSkipped
			result.Reason = err.Error()
			return result, nil
		}
	}

	result.Fixed = fixed
	result.Outcome = OutcomePending
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, content, fixed)
	}
	return result, nil
}

func (p *Pipeline) fixLoop(
	ctx context.Context,
	result *PipelineResult,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) ([]byte, error) {
	fixing := opts.Fix || opts.DryRun
	passes := opts.MaxPasses
	if passes <= 0 {
		passes = DefaultMaxFixPasses
	}
	cfg = lintConfig(cfg, opts)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fr, err := p.Engine.LintFile(ctx, result.Path, content, cfg)
		switch {
		case errors.Is(err, ErrUnknownRule), errors.Is(err, ErrInvalidSetting):
			return nil, err
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fr

		if !fixing || !fr.HasFixes() || result.Passes == passes {
			return content, nil
		}

		content = fix.ApplyEdits(content, fr.Edits)
		result.Passes++
		result.Applied += len(fr.Edits)
	}
}

// lintConfig returns cfg with its fix switches taken from opts, so the
// engine resolves edits exactly when the pipeline will apply them.
func lintConfig(cfg *config.Config, opts PipelineOptions) *config.Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cfg.Fix == opts.Fix && cfg.DryRun == opts.DryRun {
		return cfg
	}
	out := cfg.Clone()
	out.Fix = opts.Fix
	out.DryRun = opts.DryRun
	return out
}

// verify re-parses fixed content and checks the tree invariants. The
// parser is total, so a failure here means a fix produced text the
// parser cannot round-trip.
func (p *Pipeline) verify(ctx context.Context, path string, content []byte) error {
	doc, err := p.Engine.Parser.Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}
	if err := htmlast.Check(doc.Root, string(content)); err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}
	return nil
}

// commit writes pending fixed content to disk.
func (p *Pipeline) commit(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	check := fsutil.CheckModified
	if opts.QuickModCheck {
		check = fsutil.CheckModifiedQuick
	}

	changed, err := check(ctx, result.Info)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Outcome = OutcomeSkipped
		result.Reason = ErrFileModified.Error()
		return nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, result.Path, opts.Backup)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		if created {
			result.BackupPath = fsutil.BackupPath(result.Path, opts.Backup.Mode)
		}
	}

	if err := fsutil.WriteAtomic(ctx, result.Path, result.Fixed, result.Info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Outcome = OutcomeFixed

	logging.FromContext(ctx).Debug("wrote fixes",
		logging.FieldFile, result.Path,
		logging.FieldPasses, result.Passes,
		logging.FieldEdits, result.Applied,
	)
	return nil
}

// ClassifyReadError wraps a read failure with ErrFileNotFound or
// ErrPermissionDenied when it is one.
func ClassifyReadError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsFileError reports whether err is a per-file failure that should not
// abort a multi-file run.
func IsFileError(err error) bool {
	for _, target := range []error{
		ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrWriteFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
