package flash

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/allbin/fluidnc-flash/internal/logger"
)

// Result captures the output of one finished command.
type Result struct {
	Stdout string
	Stderr string
}

// PrimaryOutput returns stderr if present, otherwise stdout.
func (r Result) PrimaryOutput() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Executor runs an argument vector to completion.
// A nil error means the command exited with status zero.
type Executor interface {
	Execute(ctx context.Context, argv []string) (Result, error)
}

// ExecExecutor runs commands as subprocesses and captures both streams.
type ExecExecutor struct {
	log *logger.Logger
}

var _ Executor = (*ExecExecutor)(nil)

// NewExecExecutor returns an Executor backed by os/exec.
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// WithLogger attaches a debug logger to the executor.
func (e *ExecExecutor) WithLogger(log *logger.Logger) *ExecExecutor {
	e.log = log
	return e
}

// Execute blocks until the subprocess exits. There is no timeout.
func (e *ExecExecutor) Execute(ctx context.Context, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.ForCommand(argv).Debug("executing command")
	err := cmd.Run()

	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		e.log.ForCommand(argv).Error(err, "command failed")
	}
	return res, err
}
