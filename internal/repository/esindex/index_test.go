package esindex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The client verifies it is talking to Elasticsearch.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))

	client, err := New(&Config{
		Addresses: []string{server.URL},
		Index:     "profiles",
		Logger:    zap.NewNop(),
	})
	if err != nil {
		server.Close()
		t.Fatalf("New failed: %v", err)
	}

	return client, server
}

func TestClient_Index(t *testing.T) {
	var gotPath string
	var gotDoc map[string]any

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotDoc)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result": "created"}`))
	})
	defer server.Close()

	doc := domain.IndexDocument{ID: "p1", Name: "Jane Doe", Skills: "Go"}
	if err := client.Index(context.Background(), doc); err != nil {
		t.Fatalf("Index failed: %v", err)
	}

	if gotPath != "/profiles/_doc/p1" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotDoc["name"] != "Jane Doe" {
		t.Errorf("unexpected name in document: %v", gotDoc["name"])
	}
}

func TestClient_Index_ServerError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	})
	defer server.Close()

	err := client.Index(context.Background(), domain.IndexDocument{ID: "p1"})
	if !errors.Is(err, domain.ErrKeywordIndexUnavailable) {
		t.Fatalf("expected ErrKeywordIndexUnavailable, got %v", err)
	}
}

func TestClient_SearchMulti(t *testing.T) {
	var gotRequest map[string]any

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotRequest)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": {
				"hits": [
					{"_id": "p2", "_score": 7.5},
					{"_id": "p1", "_score": 3.25}
				]
			}
		}`))
	})
	defer server.Close()

	hits, err := client.SearchMulti(context.Background(), "react developer")
	if err != nil {
		t.Fatalf("SearchMulti failed: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].RecordID != "p2" || hits[0].Score != 7.5 {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}
	if hits[1].RecordID != "p1" || hits[1].Score != 3.25 {
		t.Errorf("unexpected second hit: %+v", hits[1])
	}

	query := gotRequest["query"].(map[string]any)["multi_match"].(map[string]any)
	if query["query"] != "react developer" {
		t.Errorf("unexpected query text: %v", query["query"])
	}
	if query["fuzziness"] != "AUTO" {
		t.Errorf("expected AUTO fuzziness, got %v", query["fuzziness"])
	}
	if got := len(query["fields"].([]any)); got != 6 {
		t.Errorf("expected 6 search fields, got %d", got)
	}
	if _, ok := gotRequest["size"]; ok {
		t.Errorf("request must not cap the result size, got size=%v", gotRequest["size"])
	}
}

func TestClient_SearchMulti_Unavailable(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	_, err := client.SearchMulti(context.Background(), "query")
	if !errors.Is(err, domain.ErrKeywordIndexUnavailable) {
		t.Fatalf("expected ErrKeywordIndexUnavailable, got %v", err)
	}
}
