package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addressbook/internal/addressbook"
	"addressbook/internal/common/logger"
	"addressbook/internal/entry"
	"addressbook/internal/lookup"
)

// newTestAPI wires a workflow against a fake lookup provider and an
// in-memory store, and returns the API handler plus the store for
// assertions.
func newTestAPI(t *testing.T, lookupHandler http.HandlerFunc) (http.Handler, *addressbook.MemoryStore) {
	t.Helper()

	baseURL := ""
	if lookupHandler != nil {
		provider := httptest.NewServer(lookupHandler)
		t.Cleanup(provider.Close)
		baseURL = provider.URL
	}

	log := logger.NewTestLogger(t)
	store := addressbook.NewMemoryStore()
	workflow := entry.New(entry.Dependencies{
		Lookup: lookup.NewClient(baseURL, 5*time.Second, nil, log),
		Store:  store,
		Logger: log,
	})

	return NewServer(workflow, log).Routes(), store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func setFieldHTTP(t *testing.T, handler http.Handler, field, value string) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/fields", map[string]string{
		"field": field,
		"value": value,
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func lookupWithOneAddress(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, `{"addresses": [{"street": "Main", "city": "X", "postcode": "1345"}]}`)
}

func TestAPI_FullEntryFlow(t *testing.T) {
	handler, store := newTestAPI(t, lookupWithOneAddress)

	setFieldHTTP(t, handler, "postCode", "1345")
	setFieldHTTP(t, handler, "houseNumber", "350")

	rec := doJSON(t, handler, http.MethodPost, "/api/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	addresses := body["addresses"].([]interface{})
	require.Len(t, addresses, 1)
	candidate := addresses[0].(map[string]interface{})
	assert.Equal(t, "350", candidate["houseNumber"])
	assert.Equal(t, "Main", candidate["street"])

	setFieldHTTP(t, handler, "selectedAddressId", candidate["id"].(string))
	setFieldHTTP(t, handler, "firstName", "Ada")
	setFieldHTTP(t, handler, "lastName", "Lovelace")

	rec = doJSON(t, handler, http.MethodPost, "/api/person", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada", entries[0].FirstName)
	assert.Equal(t, "Lovelace", entries[0].LastName)
	assert.Equal(t, "350", entries[0].HouseNumber)
}

func TestAPI_SearchValidationError(t *testing.T) {
	handler, _ := newTestAPI(t, lookupWithOneAddress)

	setFieldHTTP(t, handler, "postCode", " ")
	setFieldHTTP(t, handler, "houseNumber", "350")

	rec := doJSON(t, handler, http.MethodPost, "/api/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Post code and house number are mandatory fields", body["error"])

	// The error is also visible on the state endpoint.
	rec = doJSON(t, handler, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeBody(t, rec)
	assert.Equal(t, "Post code and house number are mandatory fields", state["error"])
}

func TestAPI_MissingBaseURL(t *testing.T) {
	handler, _ := newTestAPI(t, nil)

	setFieldHTTP(t, handler, "postCode", "1345")
	setFieldHTTP(t, handler, "houseNumber", "350")

	rec := doJSON(t, handler, http.MethodPost, "/api/search", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "BASE API URL is not defined", decodeBody(t, rec)["error"])
}

func TestAPI_EmptyLookupResultIs404(t *testing.T) {
	handler, _ := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"addresses": []}`)
	})

	setFieldHTTP(t, handler, "postCode", "1345")
	setFieldHTTP(t, handler, "houseNumber", "350")

	rec := doJSON(t, handler, http.MethodPost, "/api/search", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No addresses found for the given postcode and house number", decodeBody(t, rec)["error"])
}

func TestAPI_Clear(t *testing.T) {
	handler, _ := newTestAPI(t, lookupWithOneAddress)

	setFieldHTTP(t, handler, "postCode", "1345")
	setFieldHTTP(t, handler, "houseNumber", "350")
	rec := doJSON(t, handler, http.MethodPost, "/api/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeBody(t, rec)
	fields := state["fields"].(map[string]interface{})
	assert.Equal(t, "", fields["postCode"])
	assert.Equal(t, "", fields["houseNumber"])
	assert.Empty(t, state["addresses"])
	assert.Nil(t, state["error"])
}

func TestAPI_UnknownFieldRejected(t *testing.T) {
	handler, _ := newTestAPI(t, nil)

	rec := doJSON(t, handler, http.MethodPost, "/api/fields", map[string]string{
		"field": "nope",
		"value": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestAPI(t, nil)

	rec := doJSON(t, handler, http.MethodGet, "/api/search", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
