package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/devbush/vid2srt/internal/config"
	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

// Call methods accepted in configuration
const (
	CallDirect = "direct"
	CallModule = "module"
)

// moduleName is the module passed to the interpreter for the module
// call method (python -m whisper)
const moduleName = "whisper"

// Invoker implements ports.Recognizer by shelling out to the whisper CLI
type Invoker struct {
	callMethod  string
	executable  string
	interpreter string
	timeout     time.Duration

	combinedOutput func(*exec.Cmd) ([]byte, error)
}

// Option customizes an Invoker
type Option func(*Invoker)

// WithCombinedOutput overrides subprocess execution, for tests
func WithCombinedOutput(fn func(*exec.Cmd) ([]byte, error)) Option {
	return func(iv *Invoker) { iv.combinedOutput = fn }
}

// NewInvoker builds an Invoker from recognizer configuration. The
// timeout is taken from cfg and disabled when unset or unparseable.
func NewInvoker(cfg config.RecognizerConfig, opts ...Option) *Invoker {
	iv := &Invoker{
		callMethod:     cfg.CallMethod,
		executable:     cfg.Executable,
		interpreter:    cfg.Interpreter,
		combinedOutput: runCombinedOutput,
	}
	if iv.callMethod == "" {
		iv.callMethod = CallDirect
	}
	if iv.executable == "" {
		iv.executable = "whisper"
	}
	if iv.interpreter == "" {
		iv.interpreter = "python"
	}
	if timeout, err := cfg.TimeoutDuration(); err == nil {
		iv.timeout = timeout
	}
	for _, opt := range opts {
		opt(iv)
	}
	return iv
}

// Command returns the program plus leading arguments for the configured
// call method
func (iv *Invoker) Command() []string {
	if iv.callMethod == CallModule {
		return []string{iv.interpreter, "-m", moduleName}
	}
	return []string{iv.executable}
}

// Available reports whether the configured command resolves on PATH
func (iv *Invoker) Available() bool {
	_, err := exec.LookPath(iv.Command()[0])
	return err == nil
}

// Run invokes the whisper CLI once and captures its combined output.
// Non-zero tool exits come back in the Result with a nil error.
func (iv *Invoker) Run(ctx context.Context, inv ports.Invocation) (ports.Result, error) {
	if iv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.timeout)
		defer cancel()
	}

	// Non-ASCII language names must survive capture, so hold the console
	// on UTF-8 for the duration of the call.
	restore := forceConsoleUTF8()
	defer restore()

	parts := iv.Command()
	args := append(parts[1:], buildArgs(inv)...)

	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Env = append(os.Environ(), "PYTHONIOENCODING=utf-8")

	out, err := iv.combinedOutput(cmd)
	lines := splitLines(out)
	if err != nil {
		if ctx.Err() != nil {
			return ports.Result{ExitCode: -1, Lines: lines}, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ports.Result{ExitCode: exitErr.ExitCode(), Lines: lines}, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return ports.Result{ExitCode: -1, Lines: lines}, fmt.Errorf("%w: %s", domain.ErrRecognizerNotFound, parts[0])
		}
		return ports.Result{ExitCode: -1, Lines: lines}, err
	}
	return ports.Result{ExitCode: 0, Lines: lines}, nil
}

// buildArgs assembles the whisper CLI argument list for one invocation
func buildArgs(inv ports.Invocation) []string {
	args := []string{
		inv.Media,
		"--model", inv.Model,
		"--task", inv.Task,
	}
	if inv.Language != "" {
		args = append(args, "--language", inv.Language)
	}
	if inv.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(inv.Threads))
	}
	args = append(args,
		"--output_format", inv.Format,
		"--output_dir", inv.OutputDir,
	)
	return args
}

func runCombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

// splitLines breaks captured output into lines, tolerating CRLF and a
// trailing newline
func splitLines(out []byte) []string {
	if len(out) == 0 {
		return nil
	}
	raw := strings.Split(string(out), "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// Ensure Invoker implements interface
var _ ports.Recognizer = (*Invoker)(nil)
