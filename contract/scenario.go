package contract

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Endpoint identifies one operation of the service under test.
type Endpoint struct {
	Method string
	Path   string // may contain {name} placeholders
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

// Input is what a scenario sends. Body is serialized as JSON when it is non-nil, so it can be a
// typed struct for well-formed payloads or a map for deliberately malformed ones.
type Input struct {
	PathParams map[string]string
	Query      map[string]string
	Body       interface{}
}

// Precondition is a request that seeds state the scenario's own call depends on, such as the pet
// that a delete scenario removes. It must succeed with a 2xx status.
type Precondition struct {
	Endpoint Endpoint
	Input    Input
}

// Scenario is one concrete test case: an input plus its expected HTTP outcome. Scenarios are
// immutable once they are part of a Catalog.
type Scenario struct {
	Endpoint       Endpoint
	Category       Category
	Description    string
	Input          Input
	Precondition   *Precondition
	ExpectedStatus int
	Assertions     []Assertion

	// Repeatable marks a read-only scenario whose request can be re-issued to check that the
	// service answers identically.
	Repeatable bool

	// TimeoutMS overrides the run-wide request timeout for this scenario.
	TimeoutMS ldvalue.OptionalInt
}

// ID is the unique identity of a scenario within a catalog.
func (s Scenario) ID() string {
	return s.Endpoint.String() + " :: " + s.Description
}

// Assertion is a (field path, matcher) pair. When Each is true, Path must resolve to an array and
// the matcher is applied to the Elem field of every element; an empty array satisfies it.
type Assertion struct {
	Path    string
	Each    bool
	Elem    string
	Matcher Matcher
}

// Field asserts that the value at path satisfies m.
func Field(path string, m Matcher) Assertion {
	return Assertion{Path: path, Matcher: m}
}

// ForEach asserts that the elem field of every element of the array at path satisfies m.
func ForEach(path, elem string, m Matcher) Assertion {
	return Assertion{Path: path, Each: true, Elem: elem, Matcher: m}
}

// Outcome is the status and decoded body observed for one scenario execution. An empty response
// body decodes to JSON null.
type Outcome struct {
	Status int
	Body   ldvalue.Value
}
