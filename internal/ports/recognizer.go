package ports

import "context"

// Invocation describes one run of the external recognition tool
type Invocation struct {
	Media     string // positional video path
	Model     string
	Task      string // transcribe or translate
	Language  string // source-language hint; empty lets the tool auto-detect
	Threads   int
	Format    string // txt or srt
	OutputDir string
}

// Result carries what the tool reported back
type Result struct {
	ExitCode int
	Lines    []string // combined stdout and stderr, in order
}

// Recognizer invokes the external speech-recognition tool
type Recognizer interface {
	// Run executes one invocation and captures its combined output.
	// A non-zero tool exit is reported through the Result, not as an
	// error; the error return covers failing to launch or wait at all.
	Run(ctx context.Context, inv Invocation) (Result, error)

	// Available reports whether the configured command can be resolved.
	Available() bool

	// Command returns the program plus leading arguments used to invoke
	// the tool, for diagnostics.
	Command() []string
}
