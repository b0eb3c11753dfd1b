package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vehicle_api/internal/models"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (f *fakeES) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.bodies = append(f.bodies, string(body))
		f.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			_, _ = w.Write([]byte(`{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`))
		case strings.HasSuffix(r.URL.Path, "/_search"):
			_, _ = w.Write([]byte(`{"hits":{"total":{"value":2},"hits":[
				{"_source":{"id":1,"nome":"Fusca","marca":"VW","ano":1970}},
				{"_source":{"id":2,"nome":"Fusion","marca":"Ford","ano":2015}}]}}`))
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/404"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"result":"deleted"}`))
		case r.Method == http.MethodPut || r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func (f *fakeES) last() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1], f.bodies[len(f.bodies)-1]
}

func newTestIndex(t *testing.T) (*VehicleIndex, *fakeES) {
	t.Helper()

	fake := &fakeES{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "", "")
	require.NoError(t, err)
	return NewVehicleIndex(client, "vehicles"), fake
}

func TestNewClient_EmptyURL(t *testing.T) {
	_, err := NewClient("", "", "")
	require.Error(t, err)
}

func TestVehicleIndex_IndexVehicle(t *testing.T) {
	idx, fake := newTestIndex(t)

	err := idx.IndexVehicle(context.Background(), models.Vehicle{ID: 5, Name: "Gol", Brand: "VW", Year: 2010})
	require.NoError(t, err)

	req, body := fake.last()
	assert.Contains(t, req, "/vehicles/_doc/5")

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	assert.Equal(t, "Gol", doc["nome"])
	assert.Equal(t, "VW", doc["marca"])
}

func TestVehicleIndex_DeleteVehicle(t *testing.T) {
	idx, _ := newTestIndex(t)

	require.NoError(t, idx.DeleteVehicle(context.Background(), 3))
	require.NoError(t, idx.DeleteVehicle(context.Background(), 404))
}

func TestVehicleIndex_Search(t *testing.T) {
	idx, fake := newTestIndex(t)

	total, vehicles, err := idx.Search(context.Background(), "fus", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "Fusca", vehicles[0].Name)
	assert.Equal(t, 2015, vehicles[1].Year)

	_, body := fake.last()
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &q))
	assert.EqualValues(t, 10, q["size"])
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "fus", mm["query"])
}
