package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	valid "github.com/asaskevich/govalidator"
)

// ErrCatalogDefinition is wrapped by every error that indicates a broken scenario definition
// rather than a problem with the service.
var ErrCatalogDefinition = errors.New("catalog definition error")

var supportedMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD"}

var placeholderPattern = regexp.MustCompile(`\{([^{}/]+)\}`)

// DefinitionError lists every problem found in a catalog.
type DefinitionError struct {
	Problems []string
}

func (e *DefinitionError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", ErrCatalogDefinition, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems:\n  - %s", ErrCatalogDefinition, len(e.Problems),
		strings.Join(e.Problems, "\n  - "))
}

func (e *DefinitionError) Unwrap() error {
	return ErrCatalogDefinition
}

// Catalog is an ordered collection of scenarios.
type Catalog []Scenario

// Validate checks that every scenario is well-formed, that scenario IDs are unique, and that every
// endpoint has at least one Functional scenario. It returns a *DefinitionError describing all
// problems, or nil.
func (c Catalog) Validate() error {
	var problems []string
	addf := func(s Scenario, format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf("[%s] %s", s.ID(), fmt.Sprintf(format, args...)))
	}

	seen := make(map[string]bool)
	hasFunctional := make(map[string]bool)
	var endpoints []string

	for _, s := range c {
		if strings.TrimSpace(s.Description) == "" {
			addf(s, "description is required")
		}
		if !s.Category.Valid() {
			addf(s, "exactly one category must be declared")
		}
		if s.ExpectedStatus < 100 || s.ExpectedStatus > 599 {
			addf(s, "expected status is required (got %d)", s.ExpectedStatus)
		}
		for _, p := range validateRequest(s.Endpoint, s.Input) {
			addf(s, "%s", p)
		}
		if s.Precondition != nil {
			for _, p := range validateRequest(s.Precondition.Endpoint, s.Precondition.Input) {
				addf(s, "precondition: %s", p)
			}
		}
		for i, a := range s.Assertions {
			if a.Matcher == nil {
				addf(s, "assertion %d (%q) has no matcher", i+1, a.Path)
			}
			if !a.Each && a.Elem != "" {
				addf(s, "assertion %d (%q) has an element path but is not a for-each assertion", i+1, a.Path)
			}
		}
		if s.Repeatable && s.Endpoint.Method != "GET" {
			addf(s, "only GET scenarios can be repeatable")
		}
		if s.TimeoutMS.IsDefined() && s.TimeoutMS.IntValue() <= 0 {
			addf(s, "timeout must be positive (got %dms)", s.TimeoutMS.IntValue())
		}

		id := s.ID()
		if seen[id] {
			addf(s, "duplicate scenario")
		}
		seen[id] = true

		ep := s.Endpoint.String()
		if _, ok := hasFunctional[ep]; !ok {
			endpoints = append(endpoints, ep)
			hasFunctional[ep] = false
		}
		if s.Category == Functional {
			hasFunctional[ep] = true
		}
	}

	for _, ep := range endpoints {
		if !hasFunctional[ep] {
			problems = append(problems, fmt.Sprintf("[%s] endpoint has no functional scenario", ep))
		}
	}

	if len(problems) > 0 {
		return &DefinitionError{Problems: problems}
	}
	return nil
}

func validateRequest(e Endpoint, in Input) []string {
	var problems []string
	if !valid.IsIn(e.Method, supportedMethods...) {
		problems = append(problems, fmt.Sprintf("unsupported method %q", e.Method))
	}
	if !strings.HasPrefix(e.Path, "/") {
		problems = append(problems, fmt.Sprintf("path %q must start with /", e.Path))
	}
	names := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(e.Path, -1) {
		names[m[1]] = true
		if _, ok := in.PathParams[m[1]]; !ok {
			problems = append(problems, fmt.Sprintf("no value for path parameter {%s}", m[1]))
		}
	}
	for name := range in.PathParams {
		if !names[name] {
			problems = append(problems, fmt.Sprintf("path parameter %q does not appear in %s", name, e.Path))
		}
	}
	return problems
}

// Filter returns the scenarios whose category is one of categories, preserving order. With no
// categories it returns the catalog unchanged.
func (c Catalog) Filter(categories ...Category) Catalog {
	if len(categories) == 0 {
		return c
	}
	want := make(map[Category]bool, len(categories))
	for _, cat := range categories {
		want[cat] = true
	}
	var ret Catalog
	for _, s := range c {
		if want[s.Category] {
			ret = append(ret, s)
		}
	}
	return ret
}

// EndpointGroup holds the scenarios of one endpoint, split by category.
type EndpointGroup struct {
	Endpoint   Endpoint
	Categories []CategoryGroup
}

// CategoryGroup holds the scenarios of one category within an endpoint, in catalog order.
type CategoryGroup struct {
	Category  Category
	Scenarios []Scenario
}

// Groups arranges the catalog for reporting: endpoints in order of first appearance, then
// categories in the order of AllCategories, then scenarios in catalog order.
func (c Catalog) Groups() []EndpointGroup {
	var groups []EndpointGroup
	index := make(map[Endpoint]int)
	byCategory := make(map[Endpoint]map[Category][]Scenario)

	for _, s := range c {
		if _, ok := index[s.Endpoint]; !ok {
			index[s.Endpoint] = len(groups)
			groups = append(groups, EndpointGroup{Endpoint: s.Endpoint})
			byCategory[s.Endpoint] = make(map[Category][]Scenario)
		}
		byCategory[s.Endpoint][s.Category] = append(byCategory[s.Endpoint][s.Category], s)
	}

	for i := range groups {
		m := byCategory[groups[i].Endpoint]
		for _, cat := range AllCategories {
			if len(m[cat]) > 0 {
				groups[i].Categories = append(groups[i].Categories, CategoryGroup{Category: cat, Scenarios: m[cat]})
			}
		}
	}
	return groups
}
