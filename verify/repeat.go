package verify

import (
	"strconv"

	"github.com/openpetstore/petstore-contract-tests/contract"
)

// CompareRepeat checks that a second execution of a read-only scenario answered the same way as the
// first: the same status, and the same value for every field the scenario asserts on directly.
// Collection assertions are not compared, since other clients of a shared service can change the
// membership of a collection between the two calls.
func CompareRepeat(s contract.Scenario, first, second contract.Outcome) []Mismatch {
	var ret []Mismatch
	if first.Status != second.Status {
		ret = append(ret, Mismatch{
			Field:    "repeat status",
			Expected: strconv.Itoa(first.Status),
			Actual:   strconv.Itoa(second.Status),
		})
	}
	seen := make(map[string]bool)
	for _, a := range s.Assertions {
		if a.Each || seen[a.Path] {
			continue
		}
		seen[a.Path] = true
		v1, p1 := contract.Resolve(first.Body, a.Path)
		v2, p2 := contract.Resolve(second.Body, a.Path)
		if p1 == p2 && v1.Equal(v2) {
			continue
		}
		m := Mismatch{
			Field:    "repeat " + fieldName(a.Path),
			Expected: describe(v1, p1),
			Actual:   describe(v2, p2),
		}
		if p1 && p2 && isStructured(v1) && isStructured(v2) {
			m.Diff = diff(v1, v2)
		}
		ret = append(ret, m)
	}
	return ret
}
