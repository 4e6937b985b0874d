package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output of one test, in the order it was logged.
type CapturedOutput []CapturedMessage

// CapturingLogger keeps everything that is logged to it. Each test has one; the executor logs the
// request, a curl command that reproduces it, and the response there, so that they can be shown
// for a test that did not pass.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes one line per message. Each line is stamped with the time elapsed since the first
// message, which makes the latency of each request easy to read.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[+%s] %s\n", prefix, output.elapsed(m), m.Message)
	}
}

func (output CapturedOutput) elapsed(m CapturedMessage) time.Duration {
	if len(output) == 0 || m.Time.IsZero() {
		return 0
	}
	return m.Time.Sub(output[0].Time).Round(time.Millisecond)
}

// Messages returns the text of each message without timing.
func (output CapturedOutput) Messages() []string {
	ret := make([]string, 0, len(output))
	for _, m := range output {
		ret = append(ret, m.Message)
	}
	return ret
}
