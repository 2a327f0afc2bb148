package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Models     ModelsConfig     `yaml:"models"`
	Library    LibraryConfig    `yaml:"library"`
	Log        LogConfig        `yaml:"log"`
}

// RecognizerConfig describes how the whisper command is invoked
type RecognizerConfig struct {
	CallMethod  string `yaml:"call_method"` // direct or module
	Executable  string `yaml:"executable"`  // binary name for the direct method
	Interpreter string `yaml:"interpreter"` // interpreter for the module method
	Threads     int    `yaml:"threads"`
	Timeout     string `yaml:"timeout"` // per-invocation limit, empty disables
}

// ModelsConfig names the whisper model used by each pass
type ModelsConfig struct {
	Detection   string `yaml:"detection"`
	English     string `yaml:"english"`
	Translation string `yaml:"translation"`
}

// LibraryConfig controls batch-mode enumeration
type LibraryConfig struct {
	Root       string   `yaml:"root"`       // empty scans from the executable's directory
	Extensions []string `yaml:"extensions"` // video extensions, without dots
}

// LogConfig holds logging options
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
	File   string `yaml:"file"`   // optional log file
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Recognizer: RecognizerConfig{
			CallMethod:  "direct",
			Executable:  "whisper",
			Interpreter: "python",
			Threads:     4,
			Timeout:     "",
		},
		Models: ModelsConfig{
			Detection:   "tiny",
			English:     "small",
			Translation: "large",
		},
		Library: LibraryConfig{
			Root:       "",
			Extensions: []string{"mkv", "mp4", "avi", "mov", "webm", "flv"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   "",
		},
	}
}

// AppDir returns the application directory (~/.vid2srt)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vid2srt"
	}
	return filepath.Join(home, ".vid2srt")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// ScratchBase returns the parent directory for per-run scratch space
func ScratchBase() string {
	return filepath.Join(os.TempDir(), "vid2srt")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), ScratchBase()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// Validate checks the configuration for values the tool cannot run with
func (c *Config) Validate() error {
	switch c.Recognizer.CallMethod {
	case "direct", "module":
	default:
		return fmt.Errorf("recognizer.call_method: must be direct or module, got %q", c.Recognizer.CallMethod)
	}
	if c.Recognizer.Threads <= 0 {
		return fmt.Errorf("recognizer.threads: must be positive, got %d", c.Recognizer.Threads)
	}
	if c.Recognizer.Timeout != "" {
		if _, err := ParseDuration(c.Recognizer.Timeout); err != nil {
			return fmt.Errorf("recognizer.timeout: %w", err)
		}
	}
	if c.Models.Detection == "" || c.Models.English == "" || c.Models.Translation == "" {
		return fmt.Errorf("models: detection, english and translation must all be set")
	}
	if len(c.Library.Extensions) == 0 {
		return fmt.Errorf("library.extensions: at least one extension is required")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format: must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// TimeoutDuration returns the per-invocation timeout, zero when disabled
func (r RecognizerConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	return ParseDuration(r.Timeout)
}

var durationPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// ParseDuration parses duration strings like "90m", "2h", "1d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 90m, 2h, 1d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
