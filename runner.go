package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes one external command and returns its stdout.
// Sensor queries and the privileged batch both go through this so tests can
// substitute a fake.
type CommandRunner interface {
	Run(name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%s: %v", name, err)
	}
	return string(out), nil
}

// BatchRunner executes a shell command block with elevated rights through
// pkexec. DISPLAY and XAUTHORITY are exported into the block so polkit can
// render its graphical authentication prompt.
type BatchRunner struct {
	runner CommandRunner
	getenv func(string) string
}

func NewBatchRunner(runner CommandRunner) *BatchRunner {
	return &BatchRunner{runner: runner, getenv: os.Getenv}
}

// buildShellCommand prepends the display environment exports to the block.
// It fails when DISPLAY is unset: without it the authentication prompt can
// never appear and pkexec would hang or deny silently.
func (b *BatchRunner) buildShellCommand(block string) (string, error) {
	display := b.getenv("DISPLAY")
	if display == "" {
		return "", errors.New("DISPLAY environment variable not found")
	}

	shellCmd := fmt.Sprintf("export DISPLAY=%s; ", display)
	if xauthority := b.getenv("XAUTHORITY"); xauthority != "" {
		if _, err := os.Stat(xauthority); err == nil {
			shellCmd += fmt.Sprintf("export XAUTHORITY=%s; ", xauthority)
		}
	}

	return shellCmd + block, nil
}

// RunBlock runs the block as a single pkexec invocation. A non-zero exit of
// any chained command surfaces as the captured error text; nothing is rolled
// back or retried here.
func (b *BatchRunner) RunBlock(block string) error {
	shellCmd, err := b.buildShellCommand(block)
	if err != nil {
		return err
	}

	if _, err := b.runner.Run("pkexec", "sh", "-c", shellCmd); err != nil {
		return fmt.Errorf("command block failed: %v", err)
	}
	return nil
}
