package framework

import (
	"fmt"
	"strings"
)

// Status is the outcome of a single test.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusErrored Status = "errored"
	StatusSkipped Status = "skipped"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Status     Status
	Errors     []error
	SkipReason string

	// Group is true for a test started with RunGroup; groups are not counted in a Summary.
	Group bool

	DebugOutput CapturedOutput
}

func (r *Results) add(result TestResult) {
	r.Tests = append(r.Tests, result)
	if result.Status == StatusFailed || result.Status == StatusErrored {
		r.Failures = append(r.Failures, result)
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// HasErrors is true if any test could not be carried out, as opposed to having run and failed.
func (r Results) HasErrors() bool {
	for _, f := range r.Failures {
		if f.Status == StatusErrored {
			return true
		}
	}
	return false
}

// Summary counts the leaf tests by status.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
	Skipped int `json:"skipped"`
}

func (r Results) Summary() Summary {
	var s Summary
	for _, t := range r.Tests {
		if t.Group || len(t.TestID.Path) == 0 {
			continue
		}
		s.Total++
		switch t.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusErrored:
			s.Errored++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d errored, %d skipped", s.Passed, s.Failed, s.Errored, s.Skipped)
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest of t.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
