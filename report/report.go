// Package report turns the results of a test run into a machine-readable document.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/openpetstore/petstore-contract-tests/client"
	"github.com/openpetstore/petstore-contract-tests/framework"
	"github.com/openpetstore/petstore-contract-tests/verify"
)

// Report is the JSON document written by --report.
type Report struct {
	BaseURL    string            `json:"baseUrl"`
	FinishedAt time.Time         `json:"finishedAt"`
	Summary    framework.Summary `json:"summary"`
	Endpoints  []Endpoint        `json:"endpoints"`
}

type Endpoint struct {
	Endpoint   string     `json:"endpoint"`
	Categories []Category `json:"categories"`
}

type Category struct {
	Category  string     `json:"category"`
	Scenarios []Scenario `json:"scenarios"`
}

// Scenario is the result of one test. Checks holds the results of any tests nested under it, such
// as a repeat of the same request. Log is the test's debug output, kept only for tests that did not
// pass; it includes a curl command for each request.
type Scenario struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Status      framework.Status  `json:"status"`
	HTTPStatus  int               `json:"httpStatus,omitempty"`
	Mismatches  []verify.Mismatch `json:"mismatches,omitempty"`
	ErrorKind   string            `json:"errorKind,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	SkipReason  string            `json:"skipReason,omitempty"`
	Log         []string          `json:"log,omitempty"`
	Checks      []Scenario        `json:"checks,omitempty"`
}

// Collector keeps scenario verdicts as they are decided, so that the report can include what the
// service actually answered.
type Collector struct {
	lock     sync.Mutex
	verdicts map[string]verify.Verdict
}

func NewCollector() *Collector {
	return &Collector{verdicts: make(map[string]verify.Verdict)}
}

// OnVerdict can be used as petstore.SuiteConfig.OnVerdict.
func (c *Collector) OnVerdict(id framework.TestID, v verify.Verdict) {
	c.lock.Lock()
	c.verdicts[id.String()] = v
	c.lock.Unlock()
}

// Build arranges test results by endpoint and category. Test IDs are expected to have the form
// endpoint/category/description[/check...]; group results themselves are not listed.
func (c *Collector) Build(baseURL string, results framework.Results) Report {
	c.lock.Lock()
	defer c.lock.Unlock()

	r := Report{
		BaseURL:    baseURL,
		FinishedAt: time.Now().UTC(),
		Summary:    results.Summary(),
		Endpoints:  []Endpoint{},
	}
	for _, t := range results.Tests {
		path := t.TestID.Path
		if t.Group || len(path) < 3 {
			continue
		}
		cat := r.category(path[0], path[1])
		s := c.scenario(t)
		if len(path) == 3 {
			cat.addScenario(s)
		} else {
			cat.addCheck(path[2], s)
		}
	}
	return r
}

func (r *Report) category(endpoint, category string) *Category {
	var ep *Endpoint
	for i := range r.Endpoints {
		if r.Endpoints[i].Endpoint == endpoint {
			ep = &r.Endpoints[i]
		}
	}
	if ep == nil {
		r.Endpoints = append(r.Endpoints, Endpoint{Endpoint: endpoint})
		ep = &r.Endpoints[len(r.Endpoints)-1]
	}
	for i := range ep.Categories {
		if ep.Categories[i].Category == category {
			return &ep.Categories[i]
		}
	}
	ep.Categories = append(ep.Categories, Category{Category: category})
	return &ep.Categories[len(ep.Categories)-1]
}

// Subtests finish before their parent, so a check can arrive before its scenario does; it is kept
// on a placeholder that the scenario later replaces.
func (cat *Category) addScenario(s Scenario) {
	for i := range cat.Scenarios {
		if cat.Scenarios[i].ID == "" && cat.Scenarios[i].Description == s.Description {
			s.Checks = cat.Scenarios[i].Checks
			cat.Scenarios[i] = s
			return
		}
	}
	cat.Scenarios = append(cat.Scenarios, s)
}

func (cat *Category) addCheck(description string, check Scenario) {
	for i := range cat.Scenarios {
		if cat.Scenarios[i].Description == description {
			cat.Scenarios[i].Checks = append(cat.Scenarios[i].Checks, check)
			return
		}
	}
	cat.Scenarios = append(cat.Scenarios, Scenario{Description: description, Checks: []Scenario{check}})
}

func (c *Collector) scenario(t framework.TestResult) Scenario {
	id := t.TestID.String()
	s := Scenario{
		ID:          id,
		Description: t.TestID.Path[len(t.TestID.Path)-1],
		Status:      t.Status,
		SkipReason:  t.SkipReason,
	}
	if v, ok := c.verdicts[id]; ok && !v.Errored() {
		s.HTTPStatus = v.Outcome.Status
	}
	for _, err := range t.Errors {
		var m verify.Mismatch
		if errors.As(err, &m) {
			s.Mismatches = append(s.Mismatches, m)
			continue
		}
		var ie *client.InfrastructureError
		if errors.As(err, &ie) {
			s.ErrorKind = ie.Kind.Error()
		}
		s.Errors = append(s.Errors, err.Error())
	}
	if t.Status == framework.StatusFailed || t.Status == framework.StatusErrored {
		s.Log = t.DebugOutput.Messages()
	}
	return s
}

// Write encodes the report as indented JSON.
func (r Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the report to path, replacing any existing file.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}
