package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"nursebot-api/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	c, err := NewClient(Config{BaseURL: baseURL, APIKey: "secret"}, logger.Nop())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestClient_Reply_JSON(t *testing.T) {
	var gotKey, gotMessage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")

		var req struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotMessage = req.Message

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "Tomalo con agua."})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	reply, err := c.Reply(context.Background(), "¿cómo lo tomo?")
	if err != nil {
		t.Fatalf("Reply error: %v", err)
	}
	if reply != "Tomalo con agua." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if gotKey != "secret" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotMessage != "¿cómo lo tomo?" {
		t.Fatalf("message not forwarded, got %q", gotMessage)
	}
}

func TestClient_Reply_PlainTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("  respuesta en texto plano \n"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	reply, err := c.Reply(context.Background(), "hola")
	if err != nil {
		t.Fatalf("Reply error: %v", err)
	}
	if reply != "respuesta en texto plano" {
		t.Fatalf("expected trimmed plain text fallback, got %q", reply)
	}
}

func TestClient_Reply_EmptyBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.Reply(context.Background(), "hola"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for empty reply, got %v", err)
	}
}

func TestClient_Reply_UpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.Reply(context.Background(), "hola"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on 500, got %v", err)
	}
}

func TestClient_Reply_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{}, logger.Nop())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if _, err := c.Reply(context.Background(), "hola"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	for i := 0; i < 7; i++ {
		_, _ = c.Reply(context.Background(), "hola")
	}

	// A partir de la quinta falla consecutiva el breaker corta sin
	// llegar al upstream.
	if hits > 5 {
		t.Fatalf("expected breaker to stop requests after 5 failures, upstream got %d", hits)
	}
}
