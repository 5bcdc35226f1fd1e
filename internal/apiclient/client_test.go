package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClientGetDecodesAndSendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/movies" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.RawQuery)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/api/", srv.Client(), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct{ Value string }
	if err := c.Get(context.Background(), "/movies", url.Values{"page": {"2"}}, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Value != "ok" {
		t.Errorf("expected ok, got %q", out.Value)
	}
}

func TestClientPostSendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["name"] != "nina" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.Client(), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Post(context.Background(), "/things", map[string]string{"name": "nina"}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
}

func TestClientReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"email already taken"}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.Client(), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = c.Get(context.Background(), "/x", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "email already taken" {
		t.Errorf("unexpected api error %+v", apiErr)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("/api", nil, nil); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
