package framework

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(action func()) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()
	action()
}

func TestConsoleTestLoggerOutput(t *testing.T) {
	withoutColor(func() {
		var buf bytes.Buffer
		logger := ConsoleTestLogger{DebugOutputOnFailure: true, Out: &buf}
		id := TestID{Path: []string{"GET /pet/{petId}", "Negative testing", "returns 404"}}

		logger.TestStarted(id)
		logger.TestError(id, errors.New("status: expected 404, got 200\nsecond line"))
		logger.TestFinished(id, StatusFailed, CapturedOutput{{Message: "Sending GET x"}})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Equal(t, "[GET /pet/{petId}/Negative testing/returns 404]", lines[0])
		assert.Equal(t, "  status: expected 404, got 200", lines[1])
		assert.Equal(t, "  second line", lines[2])
		assert.Equal(t, "  FAILED: GET /pet/{petId}/Negative testing/returns 404", lines[3])
		assert.True(t, strings.HasPrefix(lines[4], "    DEBUG ["))
		assert.True(t, strings.HasSuffix(lines[4], "] Sending GET x"))
	})
}

func TestConsoleTestLoggerHidesDebugOutputOnSuccess(t *testing.T) {
	withoutColor(func() {
		var buf bytes.Buffer
		logger := ConsoleTestLogger{DebugOutputOnFailure: true, Out: &buf}
		logger.TestFinished(TestID{Path: []string{"a"}}, StatusPassed, CapturedOutput{{Message: "x"}})
		logger.TestSkipped(TestID{Path: []string{"b"}}, "excluded by filter parameters")
		assert.Equal(t, "  SKIPPED: b (excluded by filter parameters)\n", buf.String())
	})
}

func TestPrintResults(t *testing.T) {
	withoutColor(func() {
		results := Run(nil, nil, func(c *Context) {
			c.Run("ok", func(c *Context) {})
			c.Run("bad", func(c *Context) { c.Errorf("wrong") })
			c.Run("down", func(c *Context) { c.Abort(errors.New("timed out")) })
		})

		var buf bytes.Buffer
		PrintResults(&buf, results)
		assert.Equal(t, "FAILED TESTS (1):\n* bad\n    wrong\n"+
			"TESTS THAT COULD NOT BE CARRIED OUT (1):\n* down\n    timed out\n"+
			"\n1 passed, 1 failed, 1 errored, 0 skipped\n", buf.String())

		buf.Reset()
		PrintResults(&buf, Run(nil, nil, func(c *Context) { c.Run("ok", func(c *Context) {}) }))
		assert.Equal(t, "All tests passed (1 passed, 0 failed, 0 errored, 0 skipped)\n", buf.String())
	})
}
