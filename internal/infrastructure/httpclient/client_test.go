package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fai-lds/lds-client/internal/core/ports"
)

type testUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for missing base URL")
	}
	if _, err := New(Config{BaseURL: "ftp://example.com"}); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestDo_ResolvesPathAgainstBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/find/1" {
			t.Errorf("expected /api/user/find/1, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected Accept: application/json, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(testUser{ID: 1, Name: "Alice"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api/")
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "user/find/1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var u testUser
	if err := json.Unmarshal(resp.Body, &u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Name != "Alice" {
		t.Fatalf("expected Alice, got %s", u.Name)
	}
}

func TestDo_EncodesJSONBodyAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Errorf("expected bearer header, got %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		var u testUser
		if err := json.Unmarshal(raw, &u); err != nil || u.Name != "Bob" {
			t.Errorf("unexpected body %s", raw)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("12"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "/user/create",
		Headers: map[string]string{"Authorization": "Bearer abc"},
		Body:    testUser{Name: "Bob"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || string(resp.Body) != "12" {
		t.Fatalf("unexpected response: %d %s", resp.StatusCode, resp.Body)
	}
}

func TestDo_ClassifiesStatus(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusNotFound, IsNotFound},
		{http.StatusUnauthorized, IsAuth},
		{http.StatusForbidden, IsAuth},
		{http.StatusBadRequest, IsStatus},
		{http.StatusInternalServerError, IsStatus},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		c := newTestClient(t, srv.URL)
		resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
		srv.Close()

		if err == nil || !tc.check(err) {
			t.Fatalf("status %d: unexpected classification %v", tc.status, err)
		}
		if IsTransport(err) {
			t.Fatalf("status %d: should not be a transport error", tc.status)
		}
		if resp == nil || resp.StatusCode != tc.status {
			t.Fatalf("status %d: response should still be returned", tc.status)
		}
	}
}

func TestDo_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	if resp != nil {
		t.Fatalf("expected nil response")
	}
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestDo_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/slow"}); !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestExchange_ReportsStatusWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.Exchange(context.Background(), ports.Request{Method: http.MethodPost, Path: "account/login"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestExchange_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	if _, err := c.Exchange(context.Background(), ports.Request{Method: http.MethodPost, Path: "account/login"}); err == nil {
		t.Fatalf("expected error")
	}
}
