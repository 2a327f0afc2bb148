package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/adapters/cli/tui"
)

// NewScanCmd creates the scan subcommand
func NewScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List library videos and their subtitle status",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Cleanup()

	root := scanRoot(app)
	entries, err := app.Library.Inventory(root)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No videos under %s\n", root)
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Video", "Size", "Subtitle"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	var pending int
	var totalSize int64
	for _, entry := range entries {
		status := "missing"
		if entry.HasSubtitle {
			status = "done"
		} else {
			pending++
		}
		totalSize += entry.Size

		name := entry.Video.Path
		if rel, err := filepath.Rel(root, name); err == nil {
			name = rel
		}
		tw.AppendRow(table.Row{name, tui.FormatSize(entry.Size), status})
	}

	fmt.Println(tw.Render())
	fmt.Printf("%d videos (%s), %d without subtitles\n", len(entries), tui.FormatSize(totalSize), pending)
	return nil
}
