// Package shell provides an executor for running external processes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

const killWaitDelay = time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	environ func() []string
}

// NewExecutor creates a new Executor inheriting the process environment.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:  logger,
		environ: os.Environ,
	}
}

// Execute runs the invocation and waits for it to complete.
//
// The child environment is the process environment with the invocation overrides applied and
// the invocation search path appended to PATH. The process's own environment is never modified.
func (e *Executor) Execute(ctx context.Context, inv *domain.Invocation, stdout, stderr io.Writer) error {
	if len(inv.Command) == 0 {
		return zerr.With(domain.ErrEmptyCommand, "label", inv.Label)
	}

	name := inv.Command[0]
	args := inv.Command[1:]

	cmdEnv := resolveEnvironment(e.environ(), inv.SearchPath, inv.Environment)

	// Resolve the executable against the constructed PATH, not the ambient one.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		} else if e.logger != nil {
			e.logger.Warn("could not resolve " + name + " on the toolchain search path")
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // command comes from project config

	// exec.CommandContext sets Args[0] to the resolved path; keep the name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	if inv.WorkingDir != "" {
		cmd.Dir = inv.WorkingDir
	}

	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Cancellation kills the compiler and anything it spawned. Output pipes held by
	// a surviving process are closed after killWaitDelay.
	killProcessGroupOnCancel(cmd)
	cmd.WaitDelay = killWaitDelay

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(err, "command", strings.Join(inv.Command, " "))
	}

	return nil
}

// resolveEnvironment merges the system environment, the invocation overrides and the search path.
// PATH keeps the system entries first; searchPath entries are appended in order.
func resolveEnvironment(sysEnv, searchPath []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	if len(searchPath) > 0 {
		key := pathKey(envMap)
		parts := make([]string, 0, len(searchPath)+1)
		if current := envMap[key]; current != "" {
			parts = append(parts, current)
		}
		parts = append(parts, searchPath...)
		envMap[key] = strings.Join(parts, string(os.PathListSeparator))
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// pathKey returns the key holding the search path. Windows spells it "Path" and
// treats environment keys case-insensitively.
func pathKey(envMap map[string]string) string {
	if runtime.GOOS != "windows" {
		return "PATH"
	}
	for k := range envMap {
		if strings.EqualFold(k, "PATH") {
			return k
		}
	}
	return "Path"
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		k, v, ok := strings.Cut(e, "=")
		if ok && (k == "PATH" || (runtime.GOOS == "windows" && strings.EqualFold(k, "PATH"))) {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, candidate := range candidates(file) {
			p := filepath.Join(dir, candidate)
			if err := findExecutable(p); err == nil {
				return p, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

// candidates returns the file names tried for an executable.
// On Windows a name without extension is also tried with ".exe".
func candidates(file string) []string {
	if runtime.GOOS == "windows" && filepath.Ext(file) == "" {
		return []string{file + ".exe", file}
	}
	return []string{file}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	m := d.Mode()
	if m.IsDir() {
		return os.ErrPermission
	}
	if runtime.GOOS == "windows" || m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
