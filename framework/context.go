package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the framework's equivalent of *testing.T: it identifies a test, accumulates its
// failures, and runs subtests. A test fails when Error or Errorf is called, and is errored when
// Abort is called; the two are kept apart so a report can tell a misbehaving service from an
// unreachable one.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	errored     bool
	skipped     bool
	group       bool
	skipReason  string
	errors      []error
}

// Run runs the top-level test action and returns the results of it and all of its subtests.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						c.failed = true
						addError = errors.New("test failed with no failure message")
					}
				} else {
					c.errored = true
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		result := TestResult{
			TestID:      c.id,
			Status:      c.status(),
			Errors:      c.errors,
			SkipReason:  c.skipReason,
			Group:       c.group,
			DebugOutput: c.debugLogger.Output(),
		}
		c.env.results.add(result)
	}()

	action(c)
}

func (c *Context) status() Status {
	switch {
	case c.errored:
		return StatusErrored
	case c.failed:
		return StatusFailed
	case c.skipped:
		return StatusSkipped
	default:
		return StatusPassed
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. If the filter excludes it, it is recorded as skipped without running.
func (c *Context) Run(name string, action func(*Context)) {
	c.runSubtest(name, false, action)
}

// RunGroup runs a subtest that exists only to contain other subtests. The filter is not applied to
// groups, since a test ID always contains the names of its groups.
func (c *Context) RunGroup(name string, action func(*Context)) {
	c.runSubtest(name, true, action)
}

func (c *Context) runSubtest(name string, group bool, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if !group && c.env.filter != nil && !c.env.filter(id) {
		reason := "excluded by filter parameters"
		c.env.results.add(TestResult{TestID: id, Status: StatusSkipped, SkipReason: reason})
		c.env.testLogger.TestSkipped(id, reason)
		return
	}
	c1 := &Context{
		id:    id,
		env:   c.env,
		group: group,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.status(), c1.debugLogger.Output())
	}
}

// Error records a failure without stopping the test. The error value is kept as-is, so callers can
// recover structured failures from the results with errors.As.
func (c *Context) Error(err error) {
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Errorf is called by assertions to record a failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.Error(fmt.Errorf(format, args...))
}

// FailNow stops the test; it is called by the methods in the require package.
func (c *Context) FailNow() {
	panic(c)
}

// Abort records an error that prevented the test from being carried out at all, and stops the
// test.
func (c *Context) Abort(err error) {
	c.errored = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug adds a line to the test's debug output, which the test logger may print when the test
// finishes.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
