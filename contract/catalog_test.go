package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	getPet    = Endpoint{Method: "GET", Path: "/pet/{petId}"}
	updatePet = Endpoint{Method: "PUT", Path: "/pet"}
)

func makeScenario(ep Endpoint, cat Category, desc string) Scenario {
	s := Scenario{
		Endpoint:       ep,
		Category:       cat,
		Description:    desc,
		ExpectedStatus: 200,
	}
	if ep == getPet {
		s.Input.PathParams = map[string]string{"petId": "1"}
	}
	return s
}

func requireProblems(t *testing.T, c Catalog) []string {
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCatalogDefinition))
	var de *DefinitionError
	require.True(t, errors.As(err, &de))
	return de.Problems
}

func TestValidCatalog(t *testing.T) {
	c := Catalog{
		makeScenario(getPet, Functional, "a"),
		makeScenario(getPet, Negative, "b"),
		makeScenario(updatePet, Functional, "c"),
	}
	assert.NoError(t, c.Validate())
}

func TestValidateRequiresExpectedStatus(t *testing.T) {
	s := makeScenario(getPet, Functional, "a")
	s.ExpectedStatus = 0
	problems := requireProblems(t, Catalog{s})
	assert.Equal(t, []string{"[GET /pet/{petId} :: a] expected status is required (got 0)"}, problems)
}

func TestValidateRequiresCategory(t *testing.T) {
	s := makeScenario(getPet, 0, "a")
	problems := requireProblems(t, Catalog{s, makeScenario(getPet, Functional, "b")})
	assert.Equal(t, []string{"[GET /pet/{petId} :: a] exactly one category must be declared"}, problems)
}

func TestValidateRequiresFunctionalScenarioPerEndpoint(t *testing.T) {
	c := Catalog{
		makeScenario(getPet, Functional, "a"),
		makeScenario(updatePet, Negative, "b"),
		makeScenario(updatePet, EdgeCase, "c"),
	}
	problems := requireProblems(t, c)
	assert.Equal(t, []string{"[PUT /pet] endpoint has no functional scenario"}, problems)
}

func TestValidateRejectsDuplicateScenarios(t *testing.T) {
	c := Catalog{
		makeScenario(getPet, Functional, "a"),
		makeScenario(getPet, Negative, "a"),
	}
	problems := requireProblems(t, c)
	assert.Equal(t, []string{"[GET /pet/{petId} :: a] duplicate scenario"}, problems)
}

func TestValidateChecksPathParameters(t *testing.T) {
	s := makeScenario(getPet, Functional, "a")
	s.Input.PathParams = map[string]string{"id": "1"}
	problems := requireProblems(t, Catalog{s})
	assert.ElementsMatch(t, []string{
		"[GET /pet/{petId} :: a] no value for path parameter {petId}",
		`[GET /pet/{petId} :: a] path parameter "id" does not appear in /pet/{petId}`,
	}, problems)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	s := Scenario{
		Endpoint:   Endpoint{Method: "FETCH", Path: "pet"},
		Category:   Functional,
		Assertions: []Assertion{{Path: "id"}},
		Repeatable: true,
		TimeoutMS:  ldvalue.NewOptionalInt(0),
	}
	problems := requireProblems(t, Catalog{s})
	assert.Len(t, problems, 7)
}

func TestValidateChecksPrecondition(t *testing.T) {
	s := makeScenario(Endpoint{Method: "DELETE", Path: "/pet/{petId}"}, Functional, "a")
	s.Input.PathParams = map[string]string{"petId": "5"}
	s.Precondition = &Precondition{Endpoint: Endpoint{Method: "POST", Path: "pet"}}
	problems := requireProblems(t, Catalog{s})
	assert.Equal(t, []string{`[DELETE /pet/{petId} :: a] precondition: path "pet" must start with /`}, problems)
}

func TestDefinitionErrorMessage(t *testing.T) {
	assert.Equal(t, "catalog definition error: x", (&DefinitionError{Problems: []string{"x"}}).Error())
	assert.Equal(t, "catalog definition error: 2 problems:\n  - x\n  - y",
		(&DefinitionError{Problems: []string{"x", "y"}}).Error())
}

func TestFilter(t *testing.T) {
	c := Catalog{
		makeScenario(getPet, Functional, "a"),
		makeScenario(getPet, Negative, "b"),
		makeScenario(updatePet, EdgeCase, "c"),
		makeScenario(updatePet, Negative, "d"),
	}
	assert.Equal(t, c, c.Filter())

	filtered := c.Filter(Negative)
	require.Len(t, filtered, 2)
	assert.Equal(t, "b", filtered[0].Description)
	assert.Equal(t, "d", filtered[1].Description)

	assert.Len(t, c.Filter(Functional, EdgeCase), 2)
}

func TestGroups(t *testing.T) {
	c := Catalog{
		makeScenario(getPet, EdgeCase, "a"),
		makeScenario(updatePet, Functional, "b"),
		makeScenario(getPet, Functional, "c"),
		makeScenario(getPet, EdgeCase, "d"),
	}
	groups := c.Groups()
	require.Len(t, groups, 2)

	assert.Equal(t, getPet, groups[0].Endpoint)
	require.Len(t, groups[0].Categories, 2)
	assert.Equal(t, Functional, groups[0].Categories[0].Category)
	assert.Equal(t, "c", groups[0].Categories[0].Scenarios[0].Description)
	assert.Equal(t, EdgeCase, groups[0].Categories[1].Category)
	require.Len(t, groups[0].Categories[1].Scenarios, 2)
	assert.Equal(t, "a", groups[0].Categories[1].Scenarios[0].Description)
	assert.Equal(t, "d", groups[0].Categories[1].Scenarios[1].Description)

	assert.Equal(t, updatePet, groups[1].Endpoint)
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories([]string{"functional,Edge-Case", "negative", "functional"})
	require.NoError(t, err)
	assert.Equal(t, []Category{Functional, EdgeCase, Negative}, cats)

	_, err = ParseCategories([]string{"happy"})
	assert.Error(t, err)
}
