// Package plugin runs a user command after a generation, passing the
// run's details as FAVICON_* environment variables.
package plugin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/Mavwarf/favicon/internal/tmpl"
)

// defaultTimeout is used when the hook's Timeout field is nil.
const defaultTimeout = 30 * time.Second

// Run executes command through the system shell (sh -c on Unix, cmd /C on
// Windows). Run details reach the command only through environment
// variables; the command string itself is never template-expanded.
//
// Timeout behavior:
//   - nil  → 30-second default
//   - 0    → no timeout
//   - >0   → that many seconds
func Run(ctx context.Context, command string, timeoutSec *int, vars tmpl.Vars) error {
	timeout := defaultTimeout
	if timeoutSec != nil {
		timeout = time.Duration(*timeoutSec) * time.Second
	}

	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	cmd.Env = buildEnv(vars)
	cmd.WaitDelay = 2 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("command %q timed out after %v", command, timeout)
		}
		if stderr.Len() > 0 {
			return fmt.Errorf("command %q: %s", command, bytes.TrimSpace(stderr.Bytes()))
		}
		return fmt.Errorf("command %q: %w", command, err)
	}
	return nil
}

// buildEnv returns the current environment plus the FAVICON_* run
// variables. FAVICON_ERROR is only set for failed runs.
func buildEnv(vars tmpl.Vars) []string {
	env := append(os.Environ(),
		"FAVICON_MODE="+vars.Mode,
		"FAVICON_OUTPUT="+vars.Output,
		"FAVICON_SOURCE="+vars.Source,
		"FAVICON_COUNT="+strconv.Itoa(vars.Count),
		"FAVICON_BYTES="+strconv.FormatInt(vars.Bytes, 10),
		"FAVICON_STATUS="+vars.Status,
	)
	if vars.Error != "" {
		env = append(env, "FAVICON_ERROR="+vars.Error)
	}
	return env
}
