// Package framework contains the low-level implementation of test harness infrastructure
// that does not depend on what is being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to be associated with a test identifier and to accumulate results. A test
// identifier is a path of names, so tests form a tree of groups.
//
// 2. A test that runs and finds something wrong has failed. A test that could not be carried out
// at all, because the thing being tested was unreachable or answered with garbage, has errored.
//
// 3. Progress is reported as tests run through a TestLogger, and the accumulated Results can be
// summarized afterward.
//
// The domain-specific code that knows what is being tested is responsible for building the
// tree of tests and providing a domain-specific test API on top of the test context.
package framework
