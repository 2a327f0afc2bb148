package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/devbush/vid2srt/internal/adapters/whisper"
	"github.com/devbush/vid2srt/internal/application"
	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/logging"
)

// App holds all application dependencies
type App struct {
	Config     *config.Config
	Log        *slog.Logger
	Fs         afero.Fs
	Recognizer *whisper.Invoker

	Library   *application.LibraryService
	Subtitles *application.SubtitleService

	scratchDir string
}

// NewApp creates and wires up all dependencies
func NewApp() (*App, error) {
	// Ensure directories exist
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	// Load config
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	// Each run detects into its own scratch dir so concurrent runs
	// cannot clobber each other's byproducts.
	runID := uuid.NewString()
	scratch := filepath.Join(config.ScratchBase(), runID)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir %s: %w", scratch, err)
	}
	logger.Debug("scratch directory ready", "run", runID, "path", scratch)

	threads := cfg.Recognizer.Threads
	if threadsFlag > 0 {
		threads = threadsFlag
	}

	// Create adapters
	fs := afero.NewOsFs()
	recognizer := whisper.NewInvoker(cfg.Recognizer)

	// Create services
	library := application.NewLibraryService(fs, cfg.Library.Extensions, logger)
	subtitles := application.NewSubtitleService(fs, recognizer, logger, application.SubtitleOptions{
		Models: domain.ModelSet{
			Detection:   cfg.Models.Detection,
			English:     cfg.Models.English,
			Translation: cfg.Models.Translation,
		},
		Threads:    threads,
		ScratchDir: scratch,
		DryRun:     dryRunFlag,
	})

	return &App{
		Config:     cfg,
		Log:        logger,
		Fs:         fs,
		Recognizer: recognizer,
		Library:    library,
		Subtitles:  subtitles,
		scratchDir: scratch,
	}, nil
}

// Cleanup removes this run's scratch directory
func (a *App) Cleanup() {
	if a.scratchDir == "" {
		return
	}
	if err := os.RemoveAll(a.scratchDir); err != nil {
		a.Log.Warn("could not remove scratch dir", "path", a.scratchDir, "error", err)
	}
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp()
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
