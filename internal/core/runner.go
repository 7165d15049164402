package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner interface defines methods for running commands.
// It allows mocking command execution in tests across all drivers.
type Runner interface {
	Run(cmd *exec.Cmd) error
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
	Output(cmd *exec.Cmd) ([]byte, error)
}

// RealRunner implements Runner using real os/exec.
type RealRunner struct{}

func (r *RealRunner) Run(cmd *exec.Cmd) error {
	return cmd.Run()
}

func (r *RealRunner) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

func (r *RealRunner) Output(cmd *exec.Cmd) ([]byte, error) {
	return cmd.Output()
}

func (c *SystemContext) runner() Runner {
	if c.Runner == nil {
		return &RealRunner{}
	}
	return c.Runner
}

func (c *SystemContext) command(env []string, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(c, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd
}

// Exec runs a command to completion, streaming its output to the context
// writers. A non-zero exit, signal death or exec failure is an error.
func (c *SystemContext) Exec(env []string, name string, args ...string) error {
	cmd := c.command(env, name, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	c.Log().Debug("running command", "cmd", cmd.String())
	if err := c.runner().Run(cmd); err != nil {
		return c.commandError(cmd, err)
	}
	return nil
}

// CaptureLines runs a command and returns the non-blank lines of its
// standard output. Lines are returned even when the command fails.
func (c *SystemContext) CaptureLines(name string, args ...string) ([]string, error) {
	cmd := c.command(nil, name, args...)

	c.Log().Debug("capturing command", "cmd", cmd.String())
	out, err := c.runner().Output(cmd)
	lines := ParseLines(out)
	if err != nil {
		return lines, c.commandError(cmd, err)
	}
	return lines, nil
}

// ParseLines splits command output into trimmed, non-empty lines.
func ParseLines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// IsExitError reports whether err came from a process that ran and exited
// unsuccessfully, as opposed to one that could not be started.
func IsExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func (c *SystemContext) commandError(cmd *exec.Cmd, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ProcessState.String() yields "exit status N" or "signal: killed".
		c.Log().Debug("command failed", "cmd", cmd.String(), "status", exitErr.ProcessState.String(), "stderr", strings.TrimSpace(string(exitErr.Stderr)))
	} else {
		c.Log().Debug("command could not run", "cmd", cmd.String(), "error", err)
	}
	return fmt.Errorf("%s: %w", filepath.Base(cmd.Path), err)
}
