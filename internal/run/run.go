// Package run is the process-invocation seam. Everything that shells
// out goes through a Runner, so dry runs can swap execution for
// printing without the callers caring.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Runner executes (or prints) an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Exec runs commands for real, streaming output to the terminal.
type Exec struct {
	Dir string            // working directory, empty for inherited
	Env map[string]string // extra environment, merged over os.Environ
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(e.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), e.Env)
	}
	return cmd.Run()
}

// DryRun prints each command instead of executing it. It never touches
// the filesystem and never spawns a process.
type DryRun struct {
	W io.Writer
}

func (d *DryRun) Run(_ context.Context, name string, args ...string) error {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	_, err := fmt.Fprintln(d.W, strings.Join(parts, " "))
	return err
}

// ExitCode maps an error from Runner.Run to a process exit code:
// nil is 0, a command that ran and failed keeps its own code, and
// everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// quote wraps an argument in single quotes when it would not survive
// copy-pasting into a shell.
func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\"'$&|;<>()*?!#~`{}[]\\") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
