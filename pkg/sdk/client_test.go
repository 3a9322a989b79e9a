package talentdex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req SearchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Query != "react developer" {
			t.Errorf("unexpected query: %s", req.Query)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]SearchResult{
			{ProfileID: "p1", SemanticSimilarity: 1.4, KeywordScore: 7.5},
		})
	}))
	defer server.Close()

	client := New(server.URL, WithAPIKey("test-key"))

	results, err := client.Search(context.Background(), SearchRequest{Query: "react developer"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].ProfileID != "p1" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": "validation_failed", "message": "query is required"}`))
	}))
	defer server.Close()

	client := New(server.URL)

	_, err := client.Search(context.Background(), SearchRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "validation_failed" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestIndexBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/index/batch" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Profiles []Profile `json:"profiles"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Profiles) != 2 {
			t.Errorf("expected 2 profiles, got %d", len(req.Profiles))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(IndexReport{SuccessCount: 2})
	}))
	defer server.Close()

	client := New(server.URL)

	report, err := client.IndexBatch(context.Background(), []Profile{
		{ProfileID: "p1", Name: "Jane Doe"},
		{ProfileID: "p2", Name: "John Roe"},
	})
	if err != nil {
		t.Fatalf("IndexBatch failed: %v", err)
	}
	if report.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, expected 2", report.SuccessCount)
	}
}

func TestReindex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/index/reindex" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Record Profile `json:"record"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Record.ProfileID != "p1" {
			t.Errorf("unexpected record: %+v", req.Record)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	client := New(server.URL)

	if err := client.Reindex(context.Background(), Profile{ProfileID: "p1", Name: "Jane"}); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
}

func TestBackfill(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/index/backfill" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(IndexReport{SuccessCount: 42})
	}))
	defer server.Close()

	client := New(server.URL)

	report, err := client.Backfill(context.Background())
	if err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}
	if report.SuccessCount != 42 {
		t.Errorf("SuccessCount = %d, expected 42", report.SuccessCount)
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client := New("http://localhost:8080/")
	if client.baseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %s", client.baseURL)
	}
}
