package check

import (
	"fmt"
	"io"
	"os"
)

// Overridden in tests.
var (
	stdout io.Writer = os.Stdout
	osExit           = os.Exit
)

func printAndExit(status Severity, text string, hooks ...func()) {
	_, _ = fmt.Fprintln(stdout, text)
	for _, hook := range hooks {
		hook()
	}
	osExit(status.ExitCode())
}
