package contract

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

// The YAML catalog format. A file holds a list of scenarios:
//
//	scenarios:
//	  - description: returns a pet by its ID
//	    category: functional
//	    method: GET
//	    path: /pet/{petId}
//	    pathParams: {petId: 1}
//	    expect:
//	      status: 200
//	      body:
//	        - path: id
//	          equals: 1
//	        - each: true
//	          elem: status
//	          oneOf: [available, pending]
type catalogFile struct {
	Scenarios []scenarioFile `yaml:"scenarios"`
}

type requestFile struct {
	Method     string            `yaml:"method"`
	Path       string            `yaml:"path"`
	PathParams map[string]string `yaml:"pathParams"`
	Query      map[string]string `yaml:"query"`
	Body       interface{}       `yaml:"body"`
}

type scenarioFile struct {
	requestFile  `yaml:",inline"`
	Description  string       `yaml:"description"`
	Category     string       `yaml:"category"`
	Precondition *requestFile `yaml:"precondition"`
	Repeatable   bool         `yaml:"repeatable"`
	TimeoutMS    *int         `yaml:"timeoutMs"`
	Expect       expectFile   `yaml:"expect"`
}

type expectFile struct {
	Status int             `yaml:"status"`
	Body   []assertionFile `yaml:"body"`
}

type assertionFile struct {
	Path     string        `yaml:"path"`
	Each     bool          `yaml:"each"`
	Elem     string        `yaml:"elem"`
	Equals   yaml.Node     `yaml:"equals"`
	OneOf    []interface{} `yaml:"oneOf"`
	Present  *bool         `yaml:"present"`
	Type     string        `yaml:"type"`
	NonEmpty bool          `yaml:"nonEmpty"`
}

var valueTypes = map[string]ldvalue.ValueType{
	"null":   ldvalue.NullType,
	"bool":   ldvalue.BoolType,
	"number": ldvalue.NumberType,
	"string": ldvalue.StringType,
	"array":  ldvalue.ArrayType,
	"object": ldvalue.ObjectType,
}

// LoadFile parses a YAML catalog file. Structural problems in the file are reported as a
// *DefinitionError; the returned catalog has not been validated as a whole.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse is LoadFile for data that has already been read; name is used in error messages.
func Parse(name string, data []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &DefinitionError{Problems: []string{fmt.Sprintf("parsing %s: %s", name, err)}}
	}
	if len(f.Scenarios) == 0 {
		return nil, &DefinitionError{Problems: []string{fmt.Sprintf("%s: no scenarios defined", name)}}
	}

	var problems []string
	var ret Catalog
	for i, sf := range f.Scenarios {
		s, errs := sf.toScenario()
		for _, e := range errs {
			problems = append(problems, fmt.Sprintf("%s: scenario %d (%q): %s", name, i+1, sf.Description, e))
		}
		ret = append(ret, s)
	}
	if len(problems) > 0 {
		return nil, &DefinitionError{Problems: problems}
	}
	return ret, nil
}

func (r requestFile) toRequest() (Endpoint, Input) {
	return Endpoint{Method: strings.ToUpper(r.Method), Path: r.Path},
		Input{PathParams: r.PathParams, Query: r.Query, Body: r.Body}
}

func (sf scenarioFile) toScenario() (Scenario, []string) {
	var problems []string
	s := Scenario{
		Description:    sf.Description,
		ExpectedStatus: sf.Expect.Status,
		Repeatable:     sf.Repeatable,
		TimeoutMS:      ldvalue.NewOptionalIntFromPointer(sf.TimeoutMS),
	}
	s.Endpoint, s.Input = sf.toRequest()

	if sf.Category == "" {
		problems = append(problems, "category is required")
	} else if c, err := ParseCategory(sf.Category); err != nil {
		problems = append(problems, err.Error())
	} else {
		s.Category = c
	}

	if sf.Precondition != nil {
		ep, in := sf.Precondition.toRequest()
		s.Precondition = &Precondition{Endpoint: ep, Input: in}
	}

	for i, af := range sf.Expect.Body {
		m, err := af.matcher()
		if err != nil {
			problems = append(problems, fmt.Sprintf("assertion %d: %s", i+1, err))
			continue
		}
		s.Assertions = append(s.Assertions, Assertion{Path: af.Path, Each: af.Each, Elem: af.Elem, Matcher: m})
	}
	return s, problems
}

func (af assertionFile) matcher() (Matcher, error) {
	var found []Matcher
	if af.Equals.Kind != 0 {
		var v interface{}
		if err := af.Equals.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid equals value: %w", err)
		}
		found = append(found, Equals(v))
	}
	if af.OneOf != nil {
		found = append(found, OneOf(af.OneOf...))
	}
	if af.Present != nil {
		if *af.Present {
			found = append(found, Present())
		} else {
			found = append(found, Absent())
		}
	}
	if af.Type != "" {
		t, ok := valueTypes[strings.ToLower(af.Type)]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", af.Type)
		}
		found = append(found, OfType(t))
	}
	if af.NonEmpty {
		found = append(found, NonEmptyString())
	}
	if len(found) != 1 {
		return nil, fmt.Errorf("exactly one of equals, oneOf, present, type or nonEmpty is required (got %d)", len(found))
	}
	return found[0], nil
}
