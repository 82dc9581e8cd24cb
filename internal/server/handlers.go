package server

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"ampress/sanitize"
)

const maxRequestBody = 8 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.cfg.IndexHTML)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// handleSanitize consolidates the CSS of an HTML document posted as the
// request body and returns the rewritten document.
func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST an HTML document", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	r.Body.Close()
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	out, report, err := s.sanitizeHTML(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.writeResult(w, out, report.Skipped)
}

// handleFetch retrieves a URL, sanitizes it and returns the result.
// With js=1 and prerendering enabled, the page is loaded in headless
// Chrome first so script-injected styles are visible to the harvester.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}
	lower := strings.ToLower(target)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		target = "http://" + target
	}
	useJS := r.URL.Query().Get("js") == "1" && s.prerender != nil

	key := cacheKey(target, useJS)
	if body, skipped, ok := s.cache.Get(key); ok {
		s.writeResult(w, body, skipped)
		return
	}

	var raw []byte
	var err error
	if useJS {
		var page string
		page, err = s.prerender.Fetch(r.Context(), target)
		raw = []byte(page)
	} else {
		raw, err = fetchHTML(target, r.Header)
	}
	if err != nil {
		http.Error(w, "fetch "+target+": "+err.Error(), http.StatusBadGateway)
		return
	}
	out, report, err := s.sanitizeHTML(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.cache.Put(key, out, report.Skipped)
	s.writeResult(w, out, report.Skipped)
}

func (s *Server) sanitizeHTML(raw []byte) ([]byte, *sanitize.Report, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	sz := sanitize.New(doc, sanitize.Options{
		Resolver: s.resolver,
		Limits:   s.limits,
		Logger:   s.logger,
	})
	report, err := sz.Sanitize()
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), report, nil
}

func (s *Server) writeResult(w http.ResponseWriter, body []byte, skipped []string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Ampress-Skipped", strconv.Itoa(len(skipped)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}
