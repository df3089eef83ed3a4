package adb

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// StartFailureExit is the sentinel exit status reported when the process
// could not be started at all or was killed by the timeout.
const StartFailureExit = -1

// Result captures one subprocess invocation. A non-zero exit status is not
// an error; callers branch on the fields instead.
type Result struct {
	ExitStatus int
	Stdout     string
	Stderr     string
	TimedOut   bool
}

// Ok reports a clean exit.
func (r Result) Ok() bool {
	return r.ExitStatus == 0 && !r.TimedOut
}

// Runner executes an external command and captures its output.
type Runner interface {
	Run(name string, args []string, timeout time.Duration) Result
}

// ExecRunner runs commands via os/exec, blocking until the process exits
// or the timeout kills it.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (ExecRunner) Run(name string, args []string, timeout time.Duration) Result {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitStatus = StartFailureExit
		return res
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitStatus = exitErr.ExitCode()
			return res
		}
		// Could not be started: missing binary, permission denied.
		res.ExitStatus = StartFailureExit
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
		return res
	}
	return res
}
