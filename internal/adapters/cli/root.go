package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
	"github.com/devbush/vid2srt/internal/application"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/language"
)

var (
	// Global flags
	quietFlag   bool
	dryRunFlag  bool
	pickFlag    bool
	rootFlag    string
	threadsFlag int
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vid2srt [video]",
		Short: "Generate English subtitles for a video library",
		Long: `vid2srt generates English .srt subtitles for videos using Whisper.

Give it a video file to subtitle just that file, or run it without
arguments to walk a directory and subtitle everything that needs it.
Non-English audio is translated; videos that already have a .en.srt
next to them are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress per-file progress output")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Report what would be generated without invoking whisper")
	rootCmd.PersistentFlags().BoolVar(&pickFlag, "pick", false, "Interactively pick which videos to process")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Directory to scan (default: configured library root, then the binary's directory)")
	rootCmd.PersistentFlags().IntVar(&threadsFlag, "threads", 0, "Worker threads passed to whisper (default: configured value)")

	// Add subcommands
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewDepsCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Cleanup()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var videos []domain.VideoFile
	switch {
	case len(args) == 1:
		video, err := app.Library.Single(args[0])
		if err != nil {
			return err
		}
		videos = []domain.VideoFile{video}
	case pickFlag && isatty.IsTerminal(os.Stdout.Fd()):
		videos, err = pickVideos(app)
		if err != nil {
			return err
		}
		if videos == nil {
			// User cancelled the picker.
			return nil
		}
	default:
		if pickFlag {
			app.Log.Warn("stdout is not a terminal, processing all videos")
		}
		videos, err = app.Library.Scan(scanRoot(app))
		if err != nil {
			return err
		}
	}

	if len(videos) == 0 {
		fmt.Println("No videos to process")
		return nil
	}

	printer := tui.NewStatusPrinter(len(videos), quietFlag)
	summary := app.Subtitles.Run(ctx, videos, func(report application.FileReport) {
		notifyPrinter(printer, report)
	})
	printer.Summary(summary.Generated, summary.Skipped, summary.Failed, summary.Planned, summary.Elapsed)

	// Per-file failures are reported above but do not fail the run.
	return nil
}

// scanRoot picks the directory to walk: flag, then config, then the
// binary's own directory.
func scanRoot(app *App) string {
	if rootFlag != "" {
		return rootFlag
	}
	if app.Config.Library.Root != "" {
		return app.Config.Library.Root
	}
	return application.DefaultRoot()
}

// pickVideos scans inside the picker so the TUI can show progress,
// then maps the picked entries back to videos.
func pickVideos(app *App) ([]domain.VideoFile, error) {
	root := scanRoot(app)

	picked, err := tui.RunPicker("Select videos to subtitle:", func() ([]tui.PickItem, error) {
		videos, err := app.Library.Scan(root)
		if err != nil {
			return nil, err
		}
		items := make([]tui.PickItem, 0, len(videos))
		for _, video := range videos {
			item := tui.PickItem{Name: video.Name(), Path: video.Path}
			if info, err := app.Fs.Stat(video.Path); err == nil {
				item.Size = info.Size()
			}
			item.Done = app.Subtitles.HasSubtitle(video)
			items = append(items, item)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	if picked == nil {
		fmt.Println("Cancelled")
		return nil, nil
	}

	selected := make([]domain.VideoFile, 0, len(picked))
	for _, item := range picked {
		selected = append(selected, domain.NewVideoFile(item.Path))
	}
	return selected, nil
}

func notifyPrinter(printer *tui.StatusPrinter, report application.FileReport) {
	name := report.Video.Name()
	switch report.Outcome {
	case application.OutcomeSkipped:
		printer.Skipped(name)
	case application.OutcomeGenerated:
		printer.Generated(name, language.DisplayName(report.Language), report.Duration)
	case application.OutcomeFailed:
		printer.Failed(name, report.Err)
	case application.OutcomePlanned:
		printer.Planned(name, report.Subtitle)
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
