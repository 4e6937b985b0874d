package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpetstore/petstore-contract-tests/contract"
)

func TestBuildRequestSubstitutesPathParameters(t *testing.T) {
	r, err := BuildRequest("https://petstore.swagger.io/v2/", getPet,
		contract.Input{PathParams: map[string]string{"petId": "a b"}})
	require.NoError(t, err)
	assert.Equal(t, "GET", r.Method)
	assert.Equal(t, "https://petstore.swagger.io/v2/pet/a%20b", r.URL)
	assert.Nil(t, r.Body)
}

func TestBuildRequestMissingPathParameter(t *testing.T) {
	_, err := BuildRequest(fakeBaseURL, getPet, contract.Input{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestBuildRequestAttachesQuery(t *testing.T) {
	r, err := BuildRequest(fakeBaseURL, contract.Endpoint{Method: "GET", Path: "/pet/findByStatus"},
		contract.Input{Query: map[string]string{"status": "sold"}})
	require.NoError(t, err)
	assert.Equal(t, fakeBaseURL+"/pet/findByStatus?status=sold", r.URL)
}

func TestBuildRequestSerializesBody(t *testing.T) {
	type pet struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	r, err := BuildRequest(fakeBaseURL, contract.Endpoint{Method: "PUT", Path: "/pet"},
		contract.Input{Body: pet{ID: 1, Name: "Rex"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Rex"}`, string(r.Body))

	_, err = BuildRequest(fakeBaseURL, contract.Endpoint{Method: "PUT", Path: "/pet"},
		contract.Input{Body: make(chan int)})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestCurlCommandQuotesArguments(t *testing.T) {
	r := Request{Method: "PUT", URL: "http://localhost:8080/pet", Body: []byte(`{"name":"O'Brien"}`)}
	assert.Equal(t,
		`curl -i -X PUT -H 'Content-Type: application/json' --data '{"name":"O'"'"'Brien"}' http://localhost:8080/pet`,
		r.CurlCommand())

	r = Request{Method: "GET", URL: "http://localhost:8080/pet/findByStatus?status=a&b=c"}
	assert.Equal(t, `curl -i -X GET 'http://localhost:8080/pet/findByStatus?status=a&b=c'`, r.CurlCommand())
}

func TestInfrastructureErrorMessage(t *testing.T) {
	err := &InfrastructureError{Kind: ErrTimeout, Request: "GET http://x/pet/1", Err: errors.New("no response within 1s")}
	assert.Equal(t, "GET http://x/pet/1: request timed out: no response within 1s", err.Error())
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.False(t, errors.Is(err, ErrNetwork))

	err = &InfrastructureError{Kind: ErrNetwork, Request: "GET http://x/pet/1"}
	assert.Equal(t, "GET http://x/pet/1: network failure", err.Error())
}
