package framework

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	erroredColor = color.New(color.FgYellow, color.Bold)
	skippedColor = color.New(color.FgCyan)
	passedColor  = color.New(color.FgGreen)
)

// ConsoleTestLogger reports progress as readable text.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	// Out defaults to os.Stdout.
	Out io.Writer
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, status Status, debugOutput CapturedOutput) {
	failed := status == StatusFailed || status == StatusErrored
	switch status {
	case StatusFailed:
		failedColor.Fprintf(c.out(), "  FAILED: %s\n", id)
	case StatusErrored:
		erroredColor.Fprintf(c.out(), "  ERRORED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of a test run, listing every test that did not pass.
func PrintResults(out io.Writer, results Results) {
	summary := results.Summary()
	if results.OK() {
		passedColor.Fprintf(out, "All tests passed (%s)\n", summary)
		return
	}
	var failed, errored []TestResult
	for _, f := range results.Failures {
		if f.Status == StatusErrored {
			errored = append(errored, f)
		} else {
			failed = append(failed, f)
		}
	}
	if len(failed) > 0 {
		failedColor.Fprintf(out, "FAILED TESTS (%d):\n", len(failed))
		printResultList(out, failed)
	}
	if len(errored) > 0 {
		erroredColor.Fprintf(out, "TESTS THAT COULD NOT BE CARRIED OUT (%d):\n", len(errored))
		printResultList(out, errored)
	}
	fmt.Fprintf(out, "\n%s\n", summary)
}

func printResultList(out io.Writer, list []TestResult) {
	for _, r := range list {
		fmt.Fprintf(out, "* %s\n", r.TestID)
		for _, err := range r.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
