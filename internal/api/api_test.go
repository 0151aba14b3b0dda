package api_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bcnelson/netinventory/internal/api"
	"github.com/bcnelson/netinventory/internal/api/middleware"
	"github.com/bcnelson/netinventory/internal/config"
	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/bcnelson/netinventory/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

// testServer creates a test server with in-memory storage
type testServer struct {
	handler http.Handler
	store   *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New()
	cfg := &config.Config{
		Auth: config.AuthConfig{APIKey: testAPIKey},
		App:  config.AppConfig{Mode: config.ModeFull},
	}
	return &testServer{handler: api.NewRouter(store, cfg), store: store}
}

func newSeededServer(t *testing.T) *testServer {
	t.Helper()
	ts := newTestServer(t)
	_, err := storage.SeedIfEmpty(context.Background(), ts.store, storage.SampleEquipment())
	require.NoError(t, err)
	return ts
}

func (ts *testServer) request(method, path string, body any, apiKey string) *httptest.ResponseRecorder {
	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = strings.NewReader(b)
	default:
		jsonBytes, _ := json.Marshal(b)
		reqBody = bytes.NewReader(jsonBytes)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(middleware.APIKeyHeader, apiKey)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func strPtr(s string) *string { return &s }

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestVersionEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("GET", "/version", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"mode":"full"`)
}

func TestEquipmentLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Create
	rr := ts.request("POST", "/equipements", domain.EquipmentInput{Name: "Sw1", Type: "Switch", IP: "10.0.0.1"}, testAPIKey)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created domain.CreateEquipmentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	// Get
	rr = ts.request("GET", "/equipements/1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"mac":null`)
	assert.Contains(t, rr.Body.String(), `"vlan":null`)
	assert.Contains(t, rr.Body.String(), `"location":null`)

	var eq domain.Equipment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &eq))
	assert.Equal(t, "Sw1", eq.Name)
	assert.Nil(t, eq.MAC)
	addedAt := eq.DateAdded

	// Update
	update := domain.EquipmentInput{
		Name: "Sw1b", Type: "Switch", IP: "10.0.0.2",
		MAC: strPtr("AA:BB:CC:DD:EE:FF"), VLAN: strPtr("10"), Location: strPtr("Room"),
	}
	rr = ts.request("PUT", "/equipements/1", update, testAPIKey)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Equipment updated successfully")

	rr = ts.request("GET", "/equipements/1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &eq))
	assert.Equal(t, &update, eq.Input())
	assert.Equal(t, int64(1), eq.ID)
	assert.True(t, addedAt.Equal(eq.DateAdded))

	// Delete
	rr = ts.request("DELETE", "/equipements/1", nil, testAPIKey)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Equipment deleted successfully")

	rr = ts.request("GET", "/equipements/1", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Equipment with id 1 not found", decodeError(t, rr).Error)
}

func TestMutationsRequireAPIKey(t *testing.T) {
	ts := newSeededServer(t)
	body := domain.EquipmentInput{Name: "Sw1", Type: "Switch", IP: "10.0.0.1"}

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{"POST", "/equipements", body},
		{"PUT", "/equipements/1", body},
		{"DELETE", "/equipements/1", nil},
	}

	for _, tt := range tests {
		for _, key := range []string{"", "wrong-key"} {
			rr := ts.request(tt.method, tt.path, tt.body, key)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s key=%q", tt.method, tt.path, key)
			assert.Equal(t, "Unauthorized", decodeError(t, rr).Error)
		}
	}

	// Nothing changed
	count, err := ts.store.CountEquipment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, count)
	eq, err := ts.store.GetEquipment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Switch A", eq.Name)
}

func TestAuthCheckedBeforeValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("POST", "/equipements", `{"name":""}`, "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestReadsAreNotGated(t *testing.T) {
	ts := newSeededServer(t)

	for _, path := range []string{"/equipements", "/equipements/1", "/export", "/export?format=csv"} {
		rr := ts.request("GET", path, nil, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestCreateValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name      string
		body      any
		wantError string
		wantField string
	}{
		{"missing name", map[string]string{"type": "Switch", "ip": "10.0.0.1"}, "Missing or empty required field: name", "name"},
		{"blank type", map[string]string{"name": "Sw1", "type": "   ", "ip": "10.0.0.1"}, "Missing or empty required field: type", "type"},
		{"missing ip", map[string]string{"name": "Sw1", "type": "Switch"}, "Missing or empty required field: ip", "ip"},
		{"bad ip", map[string]string{"name": "Sw1", "type": "Switch", "ip": "999.1.1.1"}, "Invalid IP format", "ip"},
		{"bad mac", map[string]string{"name": "Sw1", "type": "Switch", "ip": "10.0.0.1", "mac": "AA:BB:CC"}, "Invalid MAC format", "mac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request("POST", "/equipements", tt.body, testAPIKey)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeError(t, rr)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantField, resp.Field)
		})
	}

	count, err := ts.store.CountEquipment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count, "failed validation must not write")
}

func TestMalformedBody(t *testing.T) {
	ts := newSeededServer(t)

	valid := `{"name":"Sw1","type":"Switch","ip":"10.0.0.1"}`
	bodies := []string{"", "{not json", `{"name": 5}`, `[]`, valid + " trailing-garbage", valid + valid}

	for _, body := range bodies {
		rr := ts.request("POST", "/equipements", body, testAPIKey)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		assert.Equal(t, "Invalid request", decodeError(t, rr).Error)

		rr = ts.request("PUT", "/equipements/1", body, testAPIKey)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
	}

	count, err := ts.store.CountEquipment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, count)
	eq, err := ts.store.GetEquipment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Switch A", eq.Name)
}

func TestEmptyOptionalFieldsStoredAsNull(t *testing.T) {
	ts := newTestServer(t)
	body := `{"name":"Sw1","type":"Switch","ip":"10.0.0.1","mac":"","vlan":"","location":""}`

	rr := ts.request("POST", "/equipements", body, testAPIKey)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.request("GET", "/equipements/1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"mac":null`)
	assert.Contains(t, rr.Body.String(), `"vlan":null`)
	assert.Contains(t, rr.Body.String(), `"location":null`)

	// Update clears a previously set field the same way
	rr = ts.request("PUT", "/equipements/1",
		`{"name":"Sw1","type":"Switch","ip":"10.0.0.1","mac":"AA:BB:CC:DD:EE:FF"}`, testAPIKey)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request("PUT", "/equipements/1", body, testAPIKey)
	require.Equal(t, http.StatusOK, rr.Code)

	eq, err := ts.store.GetEquipment(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, eq.MAC)
	assert.Nil(t, eq.VLAN)
	assert.Nil(t, eq.Location)
}

func TestUpdateMissing(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("PUT", "/equipements/42", domain.EquipmentInput{Name: "Sw1", Type: "Switch", IP: "10.0.0.1"}, testAPIKey)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Equipment with id 42 not found", decodeError(t, rr).Error)

	count, err := ts.store.CountEquipment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateValidatesBeforeLookup(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("PUT", "/equipements/42", domain.EquipmentInput{Name: "Sw1", Type: "Switch", IP: "nope"}, testAPIKey)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid IP format", decodeError(t, rr).Error)
}

func TestDeleteMissingSucceeds(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 3; i++ {
		rr := ts.request("POST", "/equipements", domain.EquipmentInput{Name: "Sw", Type: "Switch", IP: "10.0.0.1"}, testAPIKey)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.request("DELETE", "/equipements/999", nil, testAPIKey)
	require.Equal(t, http.StatusOK, rr.Code)

	count, err := ts.store.CountEquipment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestListFilters(t *testing.T) {
	ts := newSeededServer(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"?location=Salle%201", []string{"Switch A"}},
		{"?vlan=20", []string{"Routeur B"}},
		{"?location=Hall&vlan=30", []string{"AP Wifi C"}},
		{"?location=Hall&vlan=20", []string{}},
		{"?location=", nil},
		{"?location=Nowhere", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := ts.request("GET", "/equipements"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, rr.Code)

			var items []*domain.Equipment
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))

			if tt.want == nil {
				assert.Len(t, items, 10)
				return
			}
			names := []string{}
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListEmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("GET", "/equipements", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestExportEndpoint(t *testing.T) {
	ts := newSeededServer(t)

	rr := ts.request("GET", "/export?format=csv", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment;filename=equipements.csv", rr.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)

	// Filters are ignored by export
	rr = ts.request("GET", "/export?location=Hall", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var items []*domain.Equipment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Len(t, items, 10)
}

func TestUnknownRoutes(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/nope", "/equipements/abc", "/equipements/1/extra", "/api/v1/stacks"} {
		rr := ts.request("GET", path, nil, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Equal(t, "Route not found", decodeError(t, rr).Error, path)
	}
}

func TestIDOverflowIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request("GET", "/equipements/99999999999999999999", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWebPagesMounted(t *testing.T) {
	ts := newSeededServer(t)

	rr := ts.request("GET", "/inventory", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Switch A")
}
