package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/openpetstore/petstore-contract-tests/contract"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}/]+)\}`)

// Request is a fully resolved HTTP request for one scenario.
type Request struct {
	Method  string
	URL     string
	Body    []byte // nil if there is no body
	Timeout time.Duration
}

func (r Request) String() string {
	return r.Method + " " + r.URL
}

// BuildRequest substitutes path parameters, attaches query parameters, and serializes the body
// of a scenario input against baseURL.
func BuildRequest(baseURL string, e contract.Endpoint, in contract.Input) (Request, error) {
	var missing []string
	path := placeholderPattern.ReplaceAllStringFunc(e.Path, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := in.PathParams[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(value)
	})
	if len(missing) > 0 {
		return Request{}, fmt.Errorf("%w: no value for path parameter(s) %s in %s",
			ErrInvalidRequest, strings.Join(missing, ", "), e)
	}

	u := strings.TrimSuffix(baseURL, "/") + path
	if len(in.Query) > 0 {
		q := make(url.Values)
		for k, v := range in.Query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	r := Request{Method: e.Method, URL: u}
	if in.Body != nil {
		data, err := json.Marshal(in.Body)
		if err != nil {
			return Request{}, fmt.Errorf("%w: cannot serialize body for %s: %s", ErrInvalidRequest, e, err)
		}
		r.Body = data
	}
	return r, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand returns a shell command that reproduces the request, for debug output.
func (r Request) CurlCommand() string {
	var b commandBuilder
	b.add("curl", "-i", "-X", r.Method)
	if r.Body != nil {
		b.add("-H", "Content-Type: application/json", "--data", string(r.Body))
	}
	b.add(r.URL)
	return b.String()
}
