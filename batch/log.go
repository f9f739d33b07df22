package batch

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// ActivityFn receives log-like messages from a Job or Executor. If a Job
// or Executor is not given one, it falls back to colorized stdout/stderr,
// following the teacher's own fallback in worker.Runner.log.
type ActivityFn func(level, msg string)

var (
	colorError   = color.New(color.FgRed)
	colorWarning = color.New(color.FgYellow)
	colorSuccess = color.New(color.FgGreen)
	colorInfo    = color.New(color.FgCyan)
)

// defaultLog prints to stdout/stderr with a level-appropriate color when no
// ActivityFn has been configured.
func defaultLog(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch level {
	case "error":
		colorError.Fprintln(os.Stderr, msg)
	case "warning":
		colorWarning.Fprintln(os.Stderr, msg)
	case "success":
		colorSuccess.Fprintln(os.Stdout, msg)
	default:
		colorInfo.Fprintln(os.Stdout, msg)
	}
}

// logf routes through fn if set, otherwise defaultLog.
func logf(fn ActivityFn, level, format string, args ...any) {
	if fn != nil {
		fn(level, fmt.Sprintf(format, args...))
		return
	}
	defaultLog(level, format, args...)
}
