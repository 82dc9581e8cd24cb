package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer() *Server {
	cfg := DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	cfg.Prerender = false
	return New(cfg)
}

func TestHandleSanitize(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	body := `<html><head><style>body{color:red !important}</style></head>` +
		`<body><div style="color:blue">x</div></body></html>`
	r := httptest.NewRequest(http.MethodPost, "http://ampress/sanitize", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", w.Code, w.Body.String())
	}
	out := w.Body.String()
	if !strings.Contains(out, "amp-custom") {
		t.Fatalf("response missing consolidated style element: %q", out)
	}
	if !strings.Contains(out, "body{color:red}") {
		t.Fatalf("response missing rewritten block css: %q", out)
	}
	if strings.Contains(out, `style="color:blue"`) {
		t.Fatalf("inline style survived: %q", out)
	}
	if got := w.Header().Get("X-Ampress-Skipped"); got != "0" {
		t.Fatalf("X-Ampress-Skipped = %q", got)
	}
}

func TestHandleSanitizeMethod(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	r := httptest.NewRequest(http.MethodGet, "http://ampress/sanitize", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, expected 405", w.Code)
	}
}

func TestHandleFetchMissingURL(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	r := httptest.NewRequest(http.MethodGet, "http://ampress/fetch", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", w.Code)
	}
}

func TestHandleFetchUsesCache(t *testing.T) {
	t.Parallel()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><body><p style="color:blue">hello</p></body></html>`)
	}))
	defer upstream.Close()

	s := newTestServer()
	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodGet, "http://ampress/fetch?url="+upstream.URL, nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("pass %d: status = %d, body %q", i, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "amp-custom") {
			t.Fatalf("pass %d: response missing consolidated style", i)
		}
	}
	if _, _, ok := s.cache.Get(cacheKey(upstream.URL, false)); !ok {
		t.Fatal("sanitized result not cached")
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	r := httptest.NewRequest(http.MethodGet, "http://ampress/healthz", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("healthz = %d %q", w.Code, w.Body.String())
	}
}
