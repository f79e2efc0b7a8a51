package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"webpify/internal/config"
	"webpify/internal/deps"
	"webpify/internal/discovery"
	"webpify/internal/history"
	"webpify/internal/logging"
	"webpify/internal/naming"
	"webpify/internal/preflight"
	"webpify/internal/services"
	"webpify/internal/services/cwebp"
	"webpify/internal/services/exiftool"
	"webpify/internal/services/sips"
)

// OutputExtension is the extension every converted file receives.
const OutputExtension = ".webp"

const lockFileName = ".webpify.lock"

// Option configures the runner.
type Option func(*runnerOptions)

type runnerOptions struct {
	executor services.Executor
	store    *history.Store
}

// WithExecutor injects a custom executor into every tool client (primarily
// for tests).
func WithExecutor(exec services.Executor) Option {
	return func(o *runnerOptions) {
		o.executor = exec
	}
}

// WithHistory attaches a run-history store. A nil store disables recording.
func WithHistory(store *history.Store) Option {
	return func(o *runnerOptions) {
		o.store = store
	}
}

// Runner drives one sequential conversion run: discovery, per-candidate
// routing and conversion, metadata propagation, and summary accumulation.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	metadata *exiftool.Client
	encoder  *cwebp.Client
	decoder  *sips.Client
	store    *history.Store

	// metadataAvailable caches the capability probe result for the run.
	metadataAvailable bool
}

// NewRunner wires the tool clients from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var settings runnerOptions
	for _, opt := range opts {
		opt(&settings)
	}

	var exifOpts []exiftool.Option
	var webpOpts []cwebp.Option
	var sipsOpts []sips.Option
	if settings.executor != nil {
		exifOpts = append(exifOpts, exiftool.WithExecutor(settings.executor))
		webpOpts = append(webpOpts, cwebp.WithExecutor(settings.executor))
		sipsOpts = append(sipsOpts, sips.WithExecutor(settings.executor))
	}

	metadata, err := exiftool.New(cfg.ExiftoolBinary(), exifOpts...)
	if err != nil {
		return nil, fmt.Errorf("exiftool client: %w", err)
	}
	encoder, err := cwebp.New(cfg.CwebpBinary(), cfg.Conversion.Quality, webpOpts...)
	if err != nil {
		return nil, fmt.Errorf("cwebp client: %w", err)
	}
	decoder, err := sips.New(cfg.SipsBinary(), sipsOpts...)
	if err != nil {
		return nil, fmt.Errorf("sips client: %w", err)
	}

	return &Runner{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "convert"),
		metadata: metadata,
		encoder:  encoder,
		decoder:  decoder,
		store:    settings.store,
	}, nil
}

// Run processes every candidate in the scan root, one at a time. Per-job
// failures are folded into the summary; only environment errors (preflight,
// directory creation, lock acquisition) are returned as errors.
func (r *Runner) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary
	started := time.Now()

	if err := r.preflight(); err != nil {
		return summary, err
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "convert", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return summary, fmt.Errorf("another webpify run is already writing to %s", r.cfg.Paths.OutputDir)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	r.probeMetadataCapability(ctx)
	summary.MetadataAttempted = r.metadataAvailable
	summary.MetadataDisabled = r.cfg.Conversion.SkipMetadata

	candidates, err := discovery.Discover(r.cfg.Paths.InputDir)
	if err != nil {
		return summary, err
	}
	r.logger.Info("found images to convert",
		logging.Int("count", len(candidates)),
		logging.String("input_dir", r.cfg.Paths.InputDir),
	)

	outcomes := make([]history.FileOutcome, 0, len(candidates))
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		result := r.processCandidate(ctx, candidate)
		summary.Record(result)
		outcomes = append(outcomes, fileOutcome(result))
	}

	r.recordHistory(ctx, started, summary, outcomes)

	r.logger.Info("run complete",
		logging.Int("total", summary.Total),
		logging.Int("converted", summary.Converted),
		logging.Int("metadata_preserved", summary.MetadataPreserved),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

func (r *Runner) preflight() error {
	results := []preflight.Result{
		preflight.CheckScanDirectory(r.cfg.Paths.InputDir),
		preflight.CheckOutputDirectory(r.cfg.Paths.OutputDir),
	}
	results = append(results, preflight.CheckDependencies(deps.CheckBinaries(deps.Requirements(r.cfg)))...)

	if failure, found := preflight.FirstFailure(results); found {
		return services.Wrap(services.ErrConfiguration, "convert", "preflight", fmt.Sprintf("%s: %s", failure.Name, failure.Detail), nil)
	}
	return nil
}

// probeMetadataCapability runs the exiftool version query once. A single
// failure means the whole run proceeds without metadata propagation.
func (r *Runner) probeMetadataCapability(ctx context.Context) {
	r.metadataAvailable = false
	if r.cfg.Conversion.SkipMetadata {
		r.logger.Info("metadata propagation disabled by configuration")
		return
	}
	if err := r.metadata.Probe(ctx); err != nil {
		r.logger.Warn("exiftool not found; metadata preservation cannot be verified",
			logging.String("install_hints", strings.Join(deps.InstallHints(), "; ")),
		)
		return
	}
	r.metadataAvailable = true
}

func (r *Runner) processCandidate(ctx context.Context, candidate discovery.Candidate) JobResult {
	result := JobResult{Source: candidate.Path}

	outputPath, err := naming.Reserve(r.cfg.Paths.OutputDir, candidate.Stem, OutputExtension)
	if err != nil {
		result.Failure = FailureUnexpected
		result.Err = err
		r.logger.Error("failed to reserve output path",
			logging.String(logging.FieldSource, candidate.Path),
			logging.Error(err),
		)
		return result
	}
	result.Output = outputPath

	var encodeErr error
	if candidate.IsHEIC() {
		encodeErr = r.convertHEIC(ctx, candidate, outputPath, &result)
	} else {
		r.logger.Info("converting image to WebP",
			logging.String(logging.FieldSource, candidate.Path),
			logging.String(logging.FieldOutput, outputPath),
		)
		if encodeErr = r.encoder.Encode(ctx, candidate.Path, outputPath); encodeErr != nil {
			result.Failure = FailureEncode
		}
	}
	if encodeErr != nil {
		r.logToolFailure("conversion failed", candidate.Path, encodeErr)
		if releaseErr := naming.Release(outputPath); releaseErr != nil {
			r.logger.Warn("failed to remove reserved output", logging.Error(releaseErr))
		}
		result.Output = ""
		result.Err = encodeErr
		return result
	}
	result.Converted = true

	if r.metadataAvailable {
		if err := r.propagateMetadata(ctx, candidate.Path, outputPath); err != nil {
			result.Failure = FailureMetadata
			result.Err = err
			r.logToolFailure("metadata propagation failed", candidate.Path, err)
		} else {
			result.MetadataPreserved = true
			r.logger.Info("metadata preserved",
				logging.String(logging.FieldSource, candidate.Path),
			)
			r.verifyPropagatedTags(ctx, outputPath)
		}
	}
	return result
}

// convertHEIC is the two-step path: decode to an intermediate JPEG, encode
// the intermediate, and delete the intermediate unconditionally. A deletion
// failure never masks the encode error.
func (r *Runner) convertHEIC(ctx context.Context, candidate discovery.Candidate, outputPath string, result *JobResult) error {
	intermediate := filepath.Join(r.cfg.Paths.OutputDir,
		fmt.Sprintf("%s_tmp_%s.jpg", candidate.Stem, shortID()))

	r.logger.Info("decoding HEIC to intermediate JPEG",
		logging.String(logging.FieldSource, candidate.Path),
		logging.String("intermediate", intermediate),
	)
	if err := r.decoder.DecodeJPEG(ctx, candidate.Path, intermediate); err != nil {
		result.Failure = FailureDecode
		r.removeIntermediate(intermediate)
		return err
	}

	if r.metadataAvailable {
		// Tags land on the intermediate so the encoder's metadata
		// carry-through has something to carry. The authoritative
		// propagation still runs from the original source afterwards.
		if err := r.propagateMetadata(ctx, candidate.Path, intermediate); err != nil {
			r.logger.Warn("failed to copy tags onto intermediate",
				logging.String(logging.FieldSource, candidate.Path),
				logging.Error(err),
			)
		}
	}

	r.logger.Info("converting intermediate JPEG to WebP",
		logging.String("intermediate", intermediate),
		logging.String(logging.FieldOutput, outputPath),
	)
	encodeErr := r.encoder.Encode(ctx, intermediate, outputPath)
	r.removeIntermediate(intermediate)
	if encodeErr != nil {
		result.Failure = FailureEncode
	}
	return encodeErr
}

// propagateMetadata copies all tags, then re-copies the date subset. Both
// passes must succeed for the job to count as metadata-preserved.
func (r *Runner) propagateMetadata(ctx context.Context, src, dst string) error {
	if err := r.metadata.CopyAllTags(ctx, src, dst); err != nil {
		return err
	}
	return r.metadata.CopyDateTags(ctx, src, dst)
}

func (r *Runner) verifyPropagatedTags(ctx context.Context, outputPath string) {
	tags, err := r.metadata.ReadTags(ctx, outputPath)
	if err != nil {
		r.logger.Debug("could not verify propagated tags",
			logging.String(logging.FieldOutput, outputPath),
			logging.Error(err),
		)
		return
	}
	r.logger.Debug("verified propagated tags",
		logging.String(logging.FieldOutput, outputPath),
		logging.Int("tag_count", len(tags)),
	)
}

func (r *Runner) removeIntermediate(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("failed to remove intermediate file",
			logging.String("intermediate", path),
			logging.Error(err),
		)
	}
}

func (r *Runner) logToolFailure(message, source string, err error) {
	attrs := []logging.Attr{
		logging.String(logging.FieldSource, source),
		logging.Error(err),
	}
	if cmdErr, ok := services.AsCommandError(err); ok {
		attrs = append(attrs,
			logging.String(logging.FieldCommand, cmdErr.Result.CommandLine()),
			logging.Int(logging.FieldExitCode, cmdErr.Result.ExitCode),
		)
		if cmdErr.Result.Stdout != "" {
			attrs = append(attrs, logging.String(logging.FieldStdout, cmdErr.Result.Stdout))
		}
		if cmdErr.Result.Stderr != "" {
			attrs = append(attrs, logging.String(logging.FieldStderr, cmdErr.Result.Stderr))
		}
	}
	r.logger.Error(message, logging.Args(attrs...)...)
}

func (r *Runner) recordHistory(ctx context.Context, started time.Time, summary RunSummary, outcomes []history.FileOutcome) {
	if r.store == nil {
		return
	}
	run := history.Run{
		ID:                uuid.NewString(),
		StartedAt:         started,
		FinishedAt:        time.Now(),
		InputDir:          r.cfg.Paths.InputDir,
		OutputDir:         r.cfg.Paths.OutputDir,
		Total:             summary.Total,
		Converted:         summary.Converted,
		MetadataPreserved: summary.MetadataPreserved,
	}
	if err := r.store.RecordRun(ctx, run, outcomes); err != nil {
		r.logger.Warn("failed to record run history", logging.Error(err))
	}
}

func fileOutcome(result JobResult) history.FileOutcome {
	outcome := history.FileOutcome{
		Source:            result.Source,
		Output:            result.Output,
		Converted:         result.Converted,
		MetadataPreserved: result.MetadataPreserved,
		Failure:           string(result.Failure),
	}
	if result.Err != nil {
		outcome.Detail = result.Err.Error()
	}
	return outcome
}

func shortID() string {
	return uuid.NewString()[:8]
}
