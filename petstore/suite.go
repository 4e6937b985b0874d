package petstore

import (
	"context"

	"github.com/openpetstore/petstore-contract-tests/client"
	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/framework"
	"github.com/openpetstore/petstore-contract-tests/verify"
)

const repeatTestName = "idempotent on repeat"

// SuiteConfig controls how the catalog is run.
type SuiteConfig struct {
	Executor *client.Executor

	// CheckIdempotence adds a repeat test under every scenario marked Repeatable.
	CheckIdempotence bool

	// OnVerdict, if set, receives each scenario's verdict as soon as it is decided.
	OnVerdict func(framework.TestID, verify.Verdict)
}

// RunTestSuite runs every scenario in the catalog, one at a time in catalog order. Tests are
// grouped by endpoint and then by category, so a scenario's test ID looks like
// "GET /pet/{petId}/Negative testing/returns 404 for a pet that does not exist".
//
// Cancelling ctx stops the run: the scenario in progress is abandoned and the rest are skipped.
func RunTestSuite(
	ctx context.Context,
	catalog contract.Catalog,
	config SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{
		ctx:              ctx,
		executor:         config.Executor,
		checkIdempotence: config.CheckIdempotence,
		onVerdict:        config.OnVerdict,
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}
		for _, g := range catalog.Groups() {
			g := g
			t.RunGroup(g.Endpoint.String(), func(t *T) {
				for _, cg := range g.Categories {
					cg := cg
					t.RunGroup(cg.Category.Label(), func(t *T) {
						for _, s := range cg.Scenarios {
							s := s
							t.Run(s.Description, func(t *T) { DoScenario(t, s) })
						}
					})
				}
			})
		}
	})
}

// DoScenario executes one scenario and verifies the outcome.
func DoScenario(t *T, s contract.Scenario) {
	if t.cancelled() {
		t.context.SkipWithReason("test run was cancelled")
	}
	o := t.Execute(s)
	v := t.RequireOutcome(s, o)

	if t.env.checkIdempotence && s.Repeatable && v.Passed() {
		t.Run(repeatTestName, func(t *T) {
			t.Debug("Repeating request; first answer was status %d: %s", o.Status, o.Body.JSONString())
			again := t.Execute(s)
			for _, m := range verify.CompareRepeat(s, o, again) {
				t.context.Error(m)
			}
		})
	}
}
