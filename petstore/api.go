package petstore

import (
	"context"

	"github.com/openpetstore/petstore-contract-tests/client"
	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/framework"
	"github.com/openpetstore/petstore-contract-tests/verify"
)

type environment struct {
	ctx              context.Context
	executor         *client.Executor
	checkIdempotence bool
	onVerdict        func(framework.TestID, verify.Verdict)
}

// T represents a test or subtest in the pet store test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging that are
// provided by the lower-level framework package. To make test assertions, you can use the assert
// and require packages, passing the *T as if it were a *testing.T.
//
// It also knows how to execute scenarios against the service, and how to record a verdict so that
// assertion failures and infrastructure errors are reported differently.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// RunGroup runs a subtest that only contains other subtests.
func (t *T) RunGroup(name string, action func(*T)) {
	t.context.RunGroup(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Execute runs a scenario's request and returns what the service answered.
//
// If the request could not be carried out, the test is marked as errored and exits immediately.
// If the whole run has been cancelled, the test is skipped instead.
func (t *T) Execute(s contract.Scenario) contract.Outcome {
	o, err := t.env.executor.Run(t.env.ctx, s, t.context.DebugLogger())
	if err != nil {
		if t.env.ctx.Err() != nil {
			t.context.SkipWithReason("test run was cancelled")
		}
		t.report(verify.Errored(s, err))
		t.context.Abort(err)
	}
	return o
}

// RequireOutcome verifies an outcome against the scenario, recording every mismatch as a separate
// failure, and returns the verdict.
func (t *T) RequireOutcome(s contract.Scenario, o contract.Outcome) verify.Verdict {
	v := verify.Verify(s, o)
	t.report(v)
	for _, m := range v.Failures {
		t.context.Error(m)
	}
	return v
}

func (t *T) report(v verify.Verdict) {
	if t.env.onVerdict != nil {
		t.env.onVerdict(t.context.ID(), v)
	}
}

func (t *T) cancelled() bool {
	return t.env.ctx.Err() != nil
}
