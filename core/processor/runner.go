package processor

import (
	"context"
	"os/exec"
)

// CommandRunner executes an external extraction tool and returns its stdout.
// Injectable so tests can substitute a fake tool.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// Available reports whether the tool can be invoked on this host.
	Available(name string) bool
}

// ExecRunner runs tools through os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (ExecRunner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
