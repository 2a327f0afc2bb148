package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devbush/vid2srt/internal/config"
)

// NewConfigCmd creates the config subcommand
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&configOverwriteFlag, "overwrite", false, "Replace an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE:  runConfigPath,
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

var configOverwriteFlag bool

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ConfigPath()

	if !configOverwriteFlag {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("check config path: %w", err)
		}
	}

	if err := config.EnsureDirs(); err != nil {
		return err
	}
	if err := config.DefaultConfig().SaveDefault(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigPath())
	return nil
}
