package fakestore

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpetstore/petstore-contract-tests/servicedef"
)

func withStore(t *testing.T, action func(baseURL string, store *MemoryStore)) {
	store := New()
	httphelpers.WithServer(NewHandler(store).Router(), func(server *httptest.Server) {
		action(server.URL, store)
	})
}

func doRequest(t *testing.T, method, url, body string) (int, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestGetPet(t *testing.T) {
	withStore(t, func(baseURL string, store *MemoryStore) {
		status, body := doRequest(t, "GET", baseURL+"/pet/1", "")
		assert.Equal(t, 200, status)
		var p servicedef.Pet
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, servicedef.PetStatusAvailable, p.Status)

		status, body = doRequest(t, "GET", baseURL+"/pet/999999999", "")
		assert.Equal(t, 404, status)
		assert.JSONEq(t, `{"code":404,"type":"error","message":"Pet not found"}`, body)
	})
}

func TestUpdatePet(t *testing.T) {
	withStore(t, func(baseURL string, store *MemoryStore) {
		status, body := doRequest(t, "PUT", baseURL+"/pet", `{"id":1,"name":"R","photoUrls":[],"status":"unknown"}`)
		assert.Equal(t, 200, status)
		assert.JSONEq(t, `{"id":1,"name":"R","photoUrls":[],"status":"unknown"}`, body)

		p, ok := store.Pet(1)
		require.True(t, ok)
		assert.Equal(t, "R", p.Name)

		status, body = doRequest(t, "PUT", baseURL+"/pet", `{"id":"a","name":""}`)
		assert.Equal(t, 500, status)
		assert.JSONEq(t, `{"code":500,"type":"unknown","message":"something bad happened"}`, body)
	})
}

func TestFindPetsByStatus(t *testing.T) {
	withStore(t, func(baseURL string, store *MemoryStore) {
		status, body := doRequest(t, "GET", baseURL+"/pet/findByStatus?status=sold", "")
		assert.Equal(t, 200, status)
		var pets []servicedef.Pet
		require.NoError(t, json.Unmarshal([]byte(body), &pets))
		require.Len(t, pets, 1)
		assert.Equal(t, servicedef.PetStatusSold, pets[0].Status)

		_, body = doRequest(t, "GET", baseURL+"/pet/findByStatus?status=available,not-a-real-status", "")
		require.NoError(t, json.Unmarshal([]byte(body), &pets))
		require.Len(t, pets, 1)
		assert.Equal(t, servicedef.PetStatusAvailable, pets[0].Status)

		status, body = doRequest(t, "GET", baseURL+"/pet/findByStatus?status=not-a-real-status", "")
		assert.Equal(t, 200, status)
		assert.Equal(t, "[]", strings.TrimSpace(body))
	})
}

func TestDeletePet(t *testing.T) {
	withStore(t, func(baseURL string, store *MemoryStore) {
		status, body := doRequest(t, "DELETE", baseURL+"/pet/2", "")
		assert.Equal(t, 200, status)
		assert.JSONEq(t, `{"code":200,"type":"unknown","message":"2"}`, body)
		_, ok := store.Pet(2)
		assert.False(t, ok)

		status, body = doRequest(t, "DELETE", baseURL+"/pet/2", "")
		assert.Equal(t, 404, status)
		assert.Equal(t, "", body)
	})
}

func TestPlaceOrder(t *testing.T) {
	withStore(t, func(baseURL string, store *MemoryStore) {
		status, body := doRequest(t, "POST", baseURL+"/store/order",
			`{"petId":1,"quantity":1,"shipDate":"2023-04-08T12:34:56.789Z","status":"placed","complete":true}`)
		assert.Equal(t, 200, status)
		var o servicedef.Order
		require.NoError(t, json.Unmarshal([]byte(body), &o))
		assert.Equal(t, int64(1), o.PetID)
		assert.Equal(t, 1, o.Quantity)
		assert.Equal(t, servicedef.OrderStatusPlaced, o.Status)
		assert.NotZero(t, o.ID)

		status, body = doRequest(t, "POST", baseURL+"/store/order", `{"petId":2,"quantity":3}`)
		assert.Equal(t, 200, status)
		var second servicedef.Order
		require.NoError(t, json.Unmarshal([]byte(body), &second))
		assert.Equal(t, o.ID+1, second.ID)

		for _, bad := range []string{`{"petId":"abc","quantity":-1,"status":"unknown"}`, `{"petId":1,"quantity":-1}`, `not json`} {
			status, body = doRequest(t, "POST", baseURL+"/store/order", bad)
			assert.Equal(t, 500, status, bad)
			assert.Contains(t, body, servicedef.MessageBadInput)
		}
	})
}
