package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

// Mock implementations for testing

// mockStep scripts one recognizer invocation: output lines, exit code,
// a launch error, and files to drop into the invocation's output dir.
type mockStep struct {
	lines    []string
	exitCode int
	err      error
	writes   map[string]string
}

type mockRecognizer struct {
	fs    afero.Fs
	steps []mockStep
	calls []ports.Invocation
}

func (m *mockRecognizer) Run(ctx context.Context, inv ports.Invocation) (ports.Result, error) {
	m.calls = append(m.calls, inv)
	if len(m.steps) == 0 {
		return ports.Result{}, nil
	}
	step := m.steps[0]
	m.steps = m.steps[1:]

	for name, content := range step.writes {
		path := filepath.Join(inv.OutputDir, name)
		if err := afero.WriteFile(m.fs, path, []byte(content), 0o644); err != nil {
			return ports.Result{}, err
		}
	}
	if step.err != nil {
		return ports.Result{ExitCode: -1, Lines: step.lines}, step.err
	}
	return ports.Result{ExitCode: step.exitCode, Lines: step.lines}, nil
}

func (m *mockRecognizer) Available() bool { return true }

func (m *mockRecognizer) Command() []string { return []string{"whisper"} }

func newPipelineFixture(t *testing.T, steps ...mockStep) (afero.Fs, *mockRecognizer, *SubtitleService) {
	t.Helper()
	fs := afero.NewMemMapFs()
	rec := &mockRecognizer{fs: fs, steps: steps}
	svc := NewSubtitleService(fs, rec, nil, SubtitleOptions{
		ScratchDir: "/scratch",
	})
	return fs, rec, svc
}

func mustExist(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("%s should exist", path)
	}
}

func mustNotExist(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fs, path); ok {
		t.Errorf("%s should not exist", path)
	}
}

func TestSubtitleService_EnglishVideo(t *testing.T) {
	fs, rec, svc := newPipelineFixture(t,
		mockStep{
			lines:  []string{"Detecting language using up to the first 30 seconds.", "Detected language: English"},
			writes: map[string]string{"demo.txt": "hello"},
		},
		mockStep{
			writes: map[string]string{"demo.srt": "1\n00:00:00,000 --> 00:00:01,000\nhello\n"},
		},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeGenerated {
		t.Fatalf("Outcome = %v, want OutcomeGenerated (err: %s)", report.Outcome, report.Err)
	}
	if report.Language != "english" {
		t.Errorf("Language = %s, want english", report.Language)
	}
	if report.Subtitle != "/library/demo.en.srt" {
		t.Errorf("Subtitle = %s, want /library/demo.en.srt", report.Subtitle)
	}
	mustExist(t, fs, "/library/demo.en.srt")
	mustNotExist(t, fs, "/library/demo.srt")
	mustNotExist(t, fs, "/scratch/demo.txt")

	if len(rec.calls) != 2 {
		t.Fatalf("recognizer called %d times, want 2", len(rec.calls))
	}

	detect := rec.calls[0]
	if detect.Model != "tiny" || detect.Task != domain.TaskTranscribe || detect.Language != "" {
		t.Errorf("detection call = %+v, want tiny/transcribe/auto", detect)
	}
	if detect.Format != domain.FormatText || detect.OutputDir != "/scratch" {
		t.Errorf("detection output = %s into %s, want txt into /scratch", detect.Format, detect.OutputDir)
	}

	generate := rec.calls[1]
	if generate.Model != "small" || generate.Task != domain.TaskTranscribe || generate.Language != "en" {
		t.Errorf("generation call = %+v, want small/transcribe/en", generate)
	}
	if generate.Format != domain.FormatSRT || generate.OutputDir != "/library" {
		t.Errorf("generation output = %s into %s, want srt into /library", generate.Format, generate.OutputDir)
	}
}

func TestSubtitleService_ForeignVideo(t *testing.T) {
	fs, rec, svc := newPipelineFixture(t,
		mockStep{
			lines:  []string{"Detected language: Spanish"},
			writes: map[string]string{"pelicula.txt": "hola"},
		},
		mockStep{
			writes: map[string]string{"pelicula.srt": "1\n00:00:00,000 --> 00:00:01,000\nhello\n"},
		},
	)
	writeFile(t, fs, "/library/pelicula.mkv", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/pelicula.mkv"))

	if report.Outcome != OutcomeGenerated {
		t.Fatalf("Outcome = %v, want OutcomeGenerated (err: %s)", report.Outcome, report.Err)
	}
	if report.Language != "spanish" {
		t.Errorf("Language = %s, want spanish", report.Language)
	}
	mustExist(t, fs, "/library/pelicula.en.srt")

	generate := rec.calls[1]
	if generate.Model != "large" {
		t.Errorf("generation model = %s, want large", generate.Model)
	}
	if generate.Task != domain.TaskTranslate {
		t.Errorf("generation task = %s, want translate", generate.Task)
	}
	if generate.Language != "spanish" {
		t.Errorf("generation language = %s, want spanish", generate.Language)
	}
}

func TestSubtitleService_DetectionFailureAssumesEnglish(t *testing.T) {
	fs, rec, svc := newPipelineFixture(t,
		mockStep{err: errors.New("model load failed")},
		mockStep{
			writes: map[string]string{"demo.srt": "subtitle"},
		},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeGenerated {
		t.Fatalf("Outcome = %v, want OutcomeGenerated (err: %s)", report.Outcome, report.Err)
	}
	if report.Language != domain.LanguageEnglish {
		t.Errorf("Language = %s, want english fallback", report.Language)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("recognizer called %d times, want 2", len(rec.calls))
	}
	if rec.calls[1].Model != "small" || rec.calls[1].Task != domain.TaskTranscribe {
		t.Errorf("generation call = %+v, want english plan", rec.calls[1])
	}
}

func TestSubtitleService_DetectionNonZeroExitAssumesEnglish(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{exitCode: 1, lines: []string{"CUDA out of memory"}},
		mockStep{
			writes: map[string]string{"demo.srt": "subtitle"},
		},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Language != domain.LanguageEnglish {
		t.Errorf("Language = %s, want english fallback", report.Language)
	}
	if report.Outcome != OutcomeGenerated {
		t.Errorf("Outcome = %v, want OutcomeGenerated", report.Outcome)
	}
}

func TestSubtitleService_NoDetectionLineAssumesEnglish(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"loading model", "done"}},
		mockStep{
			writes: map[string]string{"demo.srt": "subtitle"},
		},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Language != domain.LanguageEnglish {
		t.Errorf("Language = %s, want english fallback", report.Language)
	}
}

func TestSubtitleService_GenerationProducesNothing(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"Detected language: English"}},
		mockStep{lines: []string{"wrote output elsewhere"}},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want OutcomeFailed", report.Outcome)
	}
	if !strings.Contains(report.Err, "no subtitle") {
		t.Errorf("Err = %s, want a no-subtitle failure", report.Err)
	}
	mustNotExist(t, fs, "/library/demo.en.srt")
}

func TestSubtitleService_GenerationNonZeroExit(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"Detected language: English"}},
		mockStep{exitCode: 2, lines: []string{"ffmpeg not found"}},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want OutcomeFailed", report.Outcome)
	}
	if !strings.Contains(report.Err, "code 2") {
		t.Errorf("Err = %s, want the exit code surfaced", report.Err)
	}
}

func TestSubtitleService_GenerationLaunchError(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"Detected language: English"}},
		mockStep{err: domain.ErrRecognizerNotFound},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want OutcomeFailed", report.Outcome)
	}
	if report.Err == "" {
		t.Error("Err should carry the launch failure")
	}
}

func TestSubtitleService_SkipExisting(t *testing.T) {
	fs, rec, svc := newPipelineFixture(t)
	writeFile(t, fs, "/library/demo.mp4", "video")
	writeFile(t, fs, "/library/demo.en.srt", "already here")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeSkipped {
		t.Fatalf("Outcome = %v, want OutcomeSkipped", report.Outcome)
	}
	if len(rec.calls) != 0 {
		t.Errorf("recognizer called %d times, want 0", len(rec.calls))
	}

	content, err := afero.ReadFile(fs, "/library/demo.en.srt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "already here" {
		t.Errorf("existing subtitle was modified: %s", content)
	}
}

func TestSubtitleService_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := &mockRecognizer{fs: fs}
	svc := NewSubtitleService(fs, rec, nil, SubtitleOptions{ScratchDir: "/scratch", DryRun: true})
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomePlanned {
		t.Fatalf("Outcome = %v, want OutcomePlanned", report.Outcome)
	}
	if len(rec.calls) != 0 {
		t.Errorf("recognizer called %d times, want 0", len(rec.calls))
	}
	mustNotExist(t, fs, "/library/demo.en.srt")
}

func TestSubtitleService_StaleRawCleared(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"Detected language: English"}},
		mockStep{lines: []string{"nothing written"}},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")
	writeFile(t, fs, "/library/demo.srt", "stale output from last week")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	// The stale file must not be mistaken for fresh output.
	if report.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want OutcomeFailed", report.Outcome)
	}
	mustNotExist(t, fs, "/library/demo.srt")
	mustNotExist(t, fs, "/library/demo.en.srt")
}

func TestSubtitleService_FinalNameWrittenDirectly(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"Detected language: English"}},
		mockStep{writes: map[string]string{"demo.en.srt": "subtitle"}},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeGenerated {
		t.Fatalf("Outcome = %v, want OutcomeGenerated (err: %s)", report.Outcome, report.Err)
	}
	mustExist(t, fs, "/library/demo.en.srt")
}

func TestSubtitleService_RawReplacesPartialFinal(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{lines: []string{"Detected language: English"}},
		mockStep{writes: map[string]string{
			"demo.srt":    "complete subtitle",
			"demo.en.srt": "partial leftover",
		}},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	report := svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	if report.Outcome != OutcomeGenerated {
		t.Fatalf("Outcome = %v, want OutcomeGenerated (err: %s)", report.Outcome, report.Err)
	}

	content, err := afero.ReadFile(fs, "/library/demo.en.srt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "complete subtitle" {
		t.Errorf("final subtitle = %q, want the renamed raw output", content)
	}
	mustNotExist(t, fs, "/library/demo.srt")
}

func TestSubtitleService_ScratchCleanup(t *testing.T) {
	fs, _, svc := newPipelineFixture(t,
		mockStep{
			lines: []string{"Detected language: English"},
			writes: map[string]string{
				"demo.txt":  "transcript",
				"demo.json": "{}",
				"demo.tsv":  "rows",
			},
		},
		mockStep{writes: map[string]string{"demo.srt": "subtitle"}},
	)
	writeFile(t, fs, "/library/demo.mp4", "video")

	svc.Process(context.Background(), domain.NewVideoFile("/library/demo.mp4"))

	for _, name := range []string{"demo.txt", "demo.vtt", "demo.srt", "demo.json", "demo.tsv"} {
		mustNotExist(t, fs, filepath.Join("/scratch", name))
	}
}

func TestSubtitleService_Run(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := &mockRecognizer{fs: fs, steps: []mockStep{
		// fresh.mp4: detect then generate
		{lines: []string{"Detected language: English"}},
		{writes: map[string]string{"fresh.srt": "subtitle"}},
		// broken.mp4: detect then fail generation
		{lines: []string{"Detected language: English"}},
		{exitCode: 1, lines: []string{"boom"}},
	}}
	svc := NewSubtitleService(fs, rec, nil, SubtitleOptions{ScratchDir: "/scratch"})

	writeFile(t, fs, "/library/done.mp4", "video")
	writeFile(t, fs, "/library/done.en.srt", "existing")
	writeFile(t, fs, "/library/fresh.mp4", "video")
	writeFile(t, fs, "/library/broken.mp4", "video")

	videos := []domain.VideoFile{
		domain.NewVideoFile("/library/done.mp4"),
		domain.NewVideoFile("/library/fresh.mp4"),
		domain.NewVideoFile("/library/broken.mp4"),
	}

	var notified []FileReport
	summary := svc.Run(context.Background(), videos, func(r FileReport) {
		notified = append(notified, r)
	})

	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Processed != 2 {
		t.Errorf("Processed = %d, want 2", summary.Processed)
	}
	if summary.Generated != 1 {
		t.Errorf("Generated = %d, want 1", summary.Generated)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if len(notified) != 3 {
		t.Fatalf("notify called %d times, want 3", len(notified))
	}
	if notified[0].Outcome != OutcomeSkipped ||
		notified[1].Outcome != OutcomeGenerated ||
		notified[2].Outcome != OutcomeFailed {
		t.Errorf("notify order = %v %v %v, want skipped/generated/failed",
			notified[0].Outcome, notified[1].Outcome, notified[2].Outcome)
	}
}

func TestSubtitleService_RunCancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := &mockRecognizer{fs: fs}
	svc := NewSubtitleService(fs, rec, nil, SubtitleOptions{ScratchDir: "/scratch"})
	writeFile(t, fs, "/library/demo.mp4", "video")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := svc.Run(ctx, []domain.VideoFile{domain.NewVideoFile("/library/demo.mp4")}, nil)

	if len(summary.Reports) != 0 {
		t.Errorf("Reports = %d, want 0 after cancellation", len(summary.Reports))
	}
	if len(rec.calls) != 0 {
		t.Errorf("recognizer called %d times, want 0", len(rec.calls))
	}
}

func TestNewSubtitleService_Defaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewSubtitleService(fs, &mockRecognizer{fs: fs}, nil, SubtitleOptions{})

	if svc.models != domain.DefaultModelSet() {
		t.Errorf("models = %+v, want defaults", svc.models)
	}
	if svc.threads != 4 {
		t.Errorf("threads = %d, want 4", svc.threads)
	}
	if svc.scratch == "" {
		t.Error("scratch dir should default to the system temp dir")
	}
}
