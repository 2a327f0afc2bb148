package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/logging"
	"github.com/devbush/vid2srt/internal/ports"
)

// Outcome classifies how a video left the pipeline
type Outcome int

const (
	// OutcomeGenerated means a subtitle now exists at the canonical path
	OutcomeGenerated Outcome = iota
	// OutcomeSkipped means the subtitle was already there
	OutcomeSkipped
	// OutcomeFailed means generation was attempted and did not produce one
	OutcomeFailed
	// OutcomePlanned means a dry run stopped before invoking the recognizer
	OutcomePlanned
)

// FileReport describes the handling of one video
type FileReport struct {
	Video    domain.VideoFile
	Outcome  Outcome
	Language string // detected language, empty when skipped
	Subtitle string // canonical subtitle path when one exists or would be written
	Err      string // failure description, empty otherwise
	Duration time.Duration
}

// RunSummary accumulates counters over a batch. Processed counts every
// video whose generation was attempted, successful or not.
type RunSummary struct {
	Total     int
	Processed int
	Generated int
	Skipped   int
	Failed    int
	Planned   int
	Elapsed   time.Duration
	Reports   []FileReport
}

func (s *RunSummary) add(report FileReport) {
	s.Reports = append(s.Reports, report)
	switch report.Outcome {
	case OutcomeGenerated:
		s.Processed++
		s.Generated++
	case OutcomeFailed:
		s.Processed++
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomePlanned:
		s.Planned++
	}
}

// SubtitleOptions configures a SubtitleService
type SubtitleOptions struct {
	Models     domain.ModelSet
	Threads    int
	ScratchDir string // where detection byproducts land
	DryRun     bool
}

// SubtitleService orchestrates the per-video subtitle pipeline:
// skip check, language detection, plan selection, generation and
// output resolution.
type SubtitleService struct {
	fs      afero.Fs
	rec     ports.Recognizer
	log     *slog.Logger
	models  domain.ModelSet
	threads int
	scratch string
	dryRun  bool
}

// NewSubtitleService creates a new subtitle service
func NewSubtitleService(fs afero.Fs, rec ports.Recognizer, log *slog.Logger, opts SubtitleOptions) *SubtitleService {
	if log == nil {
		log = logging.NewNop()
	}
	if opts.Models == (domain.ModelSet{}) {
		opts.Models = domain.DefaultModelSet()
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	if opts.ScratchDir == "" {
		opts.ScratchDir = os.TempDir()
	}
	return &SubtitleService{
		fs:      fs,
		rec:     rec,
		log:     log.With("component", "subtitles"),
		models:  opts.Models,
		threads: opts.Threads,
		scratch: opts.ScratchDir,
		dryRun:  opts.DryRun,
	}
}

// HasSubtitle reports whether the canonical subtitle already exists
func (s *SubtitleService) HasSubtitle(video domain.VideoFile) bool {
	ok, _ := afero.Exists(s.fs, video.SubtitlePath())
	return ok
}

// Run processes videos strictly in order, one at a time. notify, when
// non-nil, is called after each video with its report.
func (s *SubtitleService) Run(ctx context.Context, videos []domain.VideoFile, notify func(FileReport)) *RunSummary {
	start := time.Now()
	summary := &RunSummary{Total: len(videos)}

	for _, video := range videos {
		if ctx.Err() != nil {
			s.log.Warn("run interrupted", "remaining", summary.Total-len(summary.Reports))
			break
		}
		report := s.Process(ctx, video)
		summary.add(report)
		if notify != nil {
			notify(report)
		}
	}

	summary.Elapsed = time.Since(start)
	s.log.Info("run complete",
		"processed", summary.Processed,
		"generated", summary.Generated,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary
}

// Process runs the full pipeline for one video
func (s *SubtitleService) Process(ctx context.Context, video domain.VideoFile) FileReport {
	start := time.Now()

	if s.HasSubtitle(video) {
		s.log.Info("subtitle exists, skipping", "video", video.Name())
		return FileReport{
			Video:    video,
			Outcome:  OutcomeSkipped,
			Subtitle: video.SubtitlePath(),
			Duration: time.Since(start),
		}
	}

	if s.dryRun {
		s.log.Info("would generate subtitle", "video", video.Name(), "subtitle", video.SubtitlePath())
		return FileReport{
			Video:    video,
			Outcome:  OutcomePlanned,
			Subtitle: video.SubtitlePath(),
			Duration: time.Since(start),
		}
	}

	language := s.detectLanguage(ctx, video)
	plan := domain.ChoosePlan(language, s.models)
	s.log.Info("generation plan",
		"video", video.Name(),
		"language", language,
		"model", plan.Model,
		"task", plan.Task)

	report := s.generate(ctx, video, plan)
	report.Language = language
	report.Duration = time.Since(start)
	return report
}

// detectLanguage runs the cheap detection pass. Any failure falls back
// to english so the batch keeps moving; the generation pass is where
// failures count.
func (s *SubtitleService) detectLanguage(ctx context.Context, video domain.VideoFile) string {
	defer s.cleanScratch(video)

	result, err := s.rec.Run(ctx, ports.Invocation{
		Media:     video.Path,
		Model:     s.models.Detection,
		Task:      domain.TaskTranscribe,
		Threads:   s.threads,
		Format:    domain.FormatText,
		OutputDir: s.scratch,
	})
	if err != nil {
		s.log.Warn("language detection failed, assuming english",
			"video", video.Name(), "error", err)
		return domain.LanguageEnglish
	}
	if result.ExitCode != 0 {
		s.log.Warn("language detection exited non-zero, assuming english",
			"video", video.Name(),
			"exit_code", result.ExitCode,
			"output", strings.Join(result.Lines, "\n"))
		return domain.LanguageEnglish
	}

	language, found := domain.ParseDetectedLanguage(result.Lines)
	if !found {
		s.log.Warn("no detection line in recognizer output, assuming english",
			"video", video.Name())
		return language
	}

	s.log.Info("language detected", "video", video.Name(), "language", language)
	return language
}

// cleanScratch removes detection byproducts so a later pass cannot
// mistake them for real output. Runs after every detection attempt.
func (s *SubtitleService) cleanScratch(video domain.VideoFile) {
	for _, path := range video.ScratchArtifacts(s.scratch) {
		if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("could not remove detection byproduct", "path", path, "error", err)
		}
	}
}

// generate runs the full-quality pass and resolves whatever the
// recognizer wrote into the canonical subtitle path.
func (s *SubtitleService) generate(ctx context.Context, video domain.VideoFile, plan domain.GenerationPlan) FileReport {
	report := FileReport{Video: video}

	raw := video.RawSubtitlePath()
	final := video.SubtitlePath()

	// A stale raw file from an earlier run would be indistinguishable
	// from fresh output once the recognizer returns.
	if err := s.fs.Remove(raw); err != nil && !os.IsNotExist(err) {
		s.log.Warn("could not remove stale output", "path", raw, "error", err)
	}

	result, err := s.rec.Run(ctx, ports.Invocation{
		Media:     video.Path,
		Model:     plan.Model,
		Task:      plan.Task,
		Language:  plan.Language,
		Threads:   s.threads,
		Format:    domain.FormatSRT,
		OutputDir: video.Dir,
	})
	if err != nil {
		s.log.Error("subtitle generation failed", "video", video.Name(), "error", err)
		report.Outcome = OutcomeFailed
		report.Err = err.Error()
		return report
	}
	if result.ExitCode != 0 {
		s.log.Error("subtitle generation exited non-zero",
			"video", video.Name(),
			"exit_code", result.ExitCode,
			"output", strings.Join(result.Lines, "\n"))
		report.Outcome = OutcomeFailed
		report.Err = fmt.Sprintf("recognizer exited with code %d", result.ExitCode)
		return report
	}

	switch {
	case s.exists(raw) && raw != final:
		if err := s.replace(raw, final); err != nil {
			s.log.Error("could not move subtitle into place",
				"from", raw, "to", final, "error", err)
			report.Outcome = OutcomeFailed
			report.Err = err.Error()
			return report
		}
	case s.exists(raw):
		// Recognizer wrote the canonical name directly.
	case s.exists(final):
		// Nothing to move.
	default:
		s.log.Warn("no subtitle found after generation",
			"video", video.Name(),
			"raw", raw,
			"final", final,
			"output", strings.Join(result.Lines, "\n"))
		report.Outcome = OutcomeFailed
		report.Err = domain.ErrNoSubtitleProduced.Error()
		return report
	}

	s.log.Info("subtitle written", "video", video.Name(), "subtitle", final)
	report.Outcome = OutcomeGenerated
	report.Subtitle = final
	return report
}

func (s *SubtitleService) exists(path string) bool {
	ok, _ := afero.Exists(s.fs, path)
	return ok
}

// replace moves src over dst, clearing any previous dst first
func (s *SubtitleService) replace(src, dst string) error {
	if s.exists(dst) {
		if err := s.fs.Remove(dst); err != nil {
			return fmt.Errorf("clear %s: %w", dst, err)
		}
	}
	if err := s.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("rename %s: %w", src, err)
	}
	return nil
}
