package contract

import (
	"fmt"
	"strings"
)

// Category says what a scenario is responsible for proving.
type Category int

const (
	// Functional scenarios use valid inputs and assert the success status plus identity of key fields.
	Functional Category = iota + 1
	// Negative scenarios use invalid inputs and assert a failure status and diagnostic message.
	Negative
	// EdgeCase scenarios use boundary-valid inputs and assert that the service still succeeds.
	EdgeCase
)

// AllCategories lists the categories in the order they are reported.
var AllCategories = []Category{Functional, Negative, EdgeCase}

func (c Category) String() string {
	switch c {
	case Functional:
		return "functional"
	case Negative:
		return "negative"
	case EdgeCase:
		return "edge-case"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Label is the human-readable group name used in test IDs.
func (c Category) Label() string {
	switch c {
	case Functional:
		return "Functional testing"
	case Negative:
		return "Negative testing"
	case EdgeCase:
		return "Edge case testing"
	default:
		return c.String()
	}
}

func (c Category) Valid() bool {
	return c >= Functional && c <= EdgeCase
}

// ParseCategory accepts the names produced by String, case-insensitively, plus a few common
// spellings of "edge-case".
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "functional":
		return Functional, nil
	case "negative":
		return Negative, nil
	case "edge-case", "edgecase", "edge_case", "edge":
		return EdgeCase, nil
	}
	return 0, fmt.Errorf("unknown category %q (expected functional, negative or edge-case)", s)
}

// ParseCategories parses a list of category names, each of which may itself be comma-separated.
func ParseCategories(values []string) ([]Category, error) {
	var ret []Category
	seen := make(map[Category]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			c, err := ParseCategory(part)
			if err != nil {
				return nil, err
			}
			if !seen[c] {
				seen[c] = true
				ret = append(ret, c)
			}
		}
	}
	return ret, nil
}
