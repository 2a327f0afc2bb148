package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/vid2srt/internal/config"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check external dependencies (whisper)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	cmd.AddCommand(statusCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	defer app.Cleanup()

	fmt.Println()
	fmt.Println("Dependency Status:")
	fmt.Println()

	// whisper
	command := app.Recognizer.Command()
	fmt.Printf("  command:  %s\n", strings.Join(command, " "))
	if app.Recognizer.Available() {
		if path, err := exec.LookPath(command[0]); err == nil {
			fmt.Printf("  whisper:  installed (%s)\n", path)
		} else {
			fmt.Println("  whisper:  installed")
		}
	} else {
		fmt.Println("  whisper:  not found")
		fmt.Println("            install with: pip install -U openai-whisper")
	}

	// config
	configPath := config.ConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("  config:   %s\n", configPath)
	} else {
		fmt.Printf("  config:   %s (not written, using defaults)\n", configPath)
	}

	fmt.Printf("  scratch:  %s\n", config.ScratchBase())
	fmt.Printf("  models:   detect=%s english=%s translate=%s\n",
		app.Config.Models.Detection, app.Config.Models.English, app.Config.Models.Translation)
	fmt.Println()

	return nil
}
