package nordvpn

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/yllada/nordvpn-indicator/common"
)

// Exit codes reported for failures that never produced a process exit status.
const (
	CodeFailure = 2
	CodeTimeout = 124
	CodeLaunch  = 127
)

// Runner executes an external command and returns its combined output.
// A nonzero exit code is reported through both code and a *common.CommandError.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (output string, code int, err error)
}

// ExecRunner runs commands with os/exec. Arguments are passed as a list, never
// through a shell, and LANG=C keeps the output parseable.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	command := CommandLine(name, args...)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LANG=C", "LC_ALL=C")
	out, err := cmd.CombinedOutput()
	output := string(out)

	if ctx.Err() == context.DeadlineExceeded {
		return output, CodeTimeout, &common.CommandError{Command: command, Code: CodeTimeout, Err: common.ErrTimeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code <= 0 {
				// killed by a signal
				code = CodeFailure
			}
			return output, code, &common.CommandError{Command: command, Code: code, Err: common.ErrCommandFailed}
		}
		return output, CodeLaunch, &common.CommandError{Command: command, Code: CodeLaunch, Err: errors.Join(common.ErrProcessLaunch, err)}
	}
	return output, 0, nil
}

// secretFlags take a value that must never reach a log or an error message.
var secretFlags = map[string]bool{"--token": true}

// CommandLine renders a command for logs and errors with secret flag values
// replaced by "***".
func CommandLine(name string, args ...string) string {
	shown := make([]string, 0, len(args)+1)
	shown = append(shown, name)
	for i := 0; i < len(args); i++ {
		shown = append(shown, args[i])
		if secretFlags[args[i]] && i+1 < len(args) {
			shown = append(shown, "***")
			i++
		}
	}
	return strings.TrimSpace(strings.Join(shown, " "))
}
