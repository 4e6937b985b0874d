// Package verify decides whether an observed outcome satisfies a scenario's expectations.
//
// Verification never stops at the first problem: every mismatched field is reported, in the order
// the scenario declares its assertions, so that one run shows everything about how a service has
// drifted.
package verify

import (
	"fmt"
	"strconv"
	"strings"

	jd "github.com/josephburnett/jd/lib"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/openpetstore/petstore-contract-tests/contract"
)

const missing = "<missing>"

// Mismatch describes one field whose observed value did not satisfy its expectation. Field is
// "status" or a body path such as "body.name" or "body[2].status".
type Mismatch struct {
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Diff     string `json:"diff,omitempty"`
}

func (m Mismatch) Error() string {
	s := fmt.Sprintf("%s: expected %s, got %s", m.Field, m.Expected, m.Actual)
	if m.Diff != "" {
		s += "\n  diff:\n" + indent(strings.TrimRight(m.Diff, "\n"), "    ")
	}
	return s
}

// Verdict is the judgment on one executed scenario. Err is set instead of Failures when the
// scenario could not be carried out.
type Verdict struct {
	Scenario contract.Scenario
	Outcome  contract.Outcome
	Failures []Mismatch
	Err      error
}

func (v Verdict) Passed() bool {
	return v.Err == nil && len(v.Failures) == 0
}

func (v Verdict) Errored() bool {
	return v.Err != nil
}

// Errored is the verdict for a scenario whose request failed with err.
func Errored(s contract.Scenario, err error) Verdict {
	return Verdict{Scenario: s, Err: err}
}

// Verify compares an outcome with the scenario's expected status and body assertions.
func Verify(s contract.Scenario, o contract.Outcome) Verdict {
	v := Verdict{Scenario: s, Outcome: o}
	if o.Status != s.ExpectedStatus {
		v.Failures = append(v.Failures, Mismatch{
			Field:    "status",
			Expected: strconv.Itoa(s.ExpectedStatus),
			Actual:   strconv.Itoa(o.Status),
		})
	}
	for _, a := range s.Assertions {
		v.Failures = append(v.Failures, check(a, o.Body)...)
	}
	return v
}

func check(a contract.Assertion, body ldvalue.Value) []Mismatch {
	value, present := contract.Resolve(body, a.Path)
	field := fieldName(a.Path)
	if !a.Each {
		if a.Matcher.Match(value, present) {
			return nil
		}
		return []Mismatch{mismatch(field, a.Matcher, value, present)}
	}

	if !present || value.Type() != ldvalue.ArrayType {
		return []Mismatch{mismatch(field, contract.IsArray(), value, present)}
	}
	var ret []Mismatch
	for i := 0; i < value.Count(); i++ {
		elemField := field + "[" + strconv.Itoa(i) + "]"
		if a.Elem != "" {
			elemField += "." + a.Elem
		}
		ev, ep := contract.Resolve(value.GetByIndex(i), a.Elem)
		if !a.Matcher.Match(ev, ep) {
			ret = append(ret, mismatch(elemField, a.Matcher, ev, ep))
		}
	}
	return ret
}

func mismatch(field string, m contract.Matcher, actual ldvalue.Value, present bool) Mismatch {
	ret := Mismatch{Field: field, Expected: m.String(), Actual: describe(actual, present)}
	if eq, ok := m.(contract.EqualsMatcher); ok && present && isStructured(eq.Want) && isStructured(actual) {
		ret.Diff = diff(eq.Want, actual)
	}
	return ret
}

func fieldName(path string) string {
	if path == "" {
		return "body"
	}
	return "body." + path
}

func describe(v ldvalue.Value, present bool) string {
	if !present {
		return missing
	}
	return v.JSONString()
}

func isStructured(v ldvalue.Value) bool {
	return v.Type() == ldvalue.ObjectType || v.Type() == ldvalue.ArrayType
}

// diff renders a structural diff from expected to actual, or "" if either cannot be read.
func diff(expected, actual ldvalue.Value) string {
	a, err := jd.ReadJsonString(expected.JSONString())
	if err != nil {
		return ""
	}
	b, err := jd.ReadJsonString(actual.JSONString())
	if err != nil {
		return ""
	}
	return a.Diff(b).Render()
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
