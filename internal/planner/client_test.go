package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func plannerStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateParsesValidItinerary(t *testing.T) {
	content := `{"destination":"Serengeti","days":[{"day":1,"title":"Arrival","detail":"Transfer to camp."},{"day":2,"title":"Game drive","detail":"Central plains."}]}`
	srv := plannerStub(t, content)
	defer srv.Close()

	c := Client{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"}
	it, err := c.Generate(context.Background(), Request{Destination: "Serengeti", Days: 3})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if it.Destination != "Serengeti" || len(it.Days) != 2 {
		t.Fatalf("unexpected itinerary: %+v", it)
	}
}

func TestGenerateRejectsNonSequentialDays(t *testing.T) {
	content := `{"destination":"Serengeti","days":[{"day":1,"title":"A"},{"day":3,"title":"B"}]}`
	srv := plannerStub(t, content)
	defer srv.Close()

	c := Client{BaseURL: srv.URL, APIKey: "test-key"}
	if _, err := c.Generate(context.Background(), Request{Destination: "Serengeti", Days: 5}); err == nil {
		t.Fatalf("expected error for non-sequential days")
	}
}

func TestGenerateRejectsProseResponse(t *testing.T) {
	srv := plannerStub(t, "Here is your itinerary: Day 1 arrive, Day 2 game drive.")
	defer srv.Close()

	c := Client{BaseURL: srv.URL, APIKey: "test-key"}
	if _, err := c.Generate(context.Background(), Request{Destination: "Serengeti", Days: 2}); err == nil {
		t.Fatalf("expected error for prose response")
	}
}

func TestGenerateRequiresConfig(t *testing.T) {
	c := Client{}
	if _, err := c.Generate(context.Background(), Request{Destination: "Serengeti", Days: 2}); err == nil {
		t.Fatalf("expected error without api key")
	}
	c = Client{APIKey: "k"}
	if _, err := c.Generate(context.Background(), Request{Destination: "Serengeti", Days: 0}); err == nil {
		t.Fatalf("expected error for zero days")
	}
}
