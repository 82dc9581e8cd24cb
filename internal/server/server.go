package server

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ampress/sanitize"
)

const defaultIndexHTML = `<!DOCTYPE html>
<html><body>
<h1>Ampress</h1>
<form action="/fetch" method="get">
<h3>Sanitize a page</h3>
URL: <input name="url" size="60"><br>
<label><input type="checkbox" name="js" value="1"> prerender with headless Chrome</label><br>
<button type="submit">Fetch</button>
</form>
<p>POST raw HTML to /sanitize to consolidate its CSS.</p>
</body></html>`

// Config describes server wiring and runtime behaviour.
type Config struct {
	IndexHTML  string
	AssetsDirs []string // roots linked stylesheets may resolve into
	CSSBudget  int      // bytes; 0 keeps the catalog default
	Prerender  bool     // allow headless-Chrome fetching on /fetch
	Logger     *log.Logger
	Clock      func() time.Time
}

// DefaultConfig populates configuration from environment variables.
func DefaultConfig() Config {
	cfg := Config{
		IndexHTML: defaultIndexHTML,
		Logger:    log.Default(),
		Clock:     time.Now,
	}
	if dirs := strings.TrimSpace(os.Getenv("AMPRESS_ASSETS_DIR")); dirs != "" {
		cfg.AssetsDirs = filepath.SplitList(dirs)
	}
	if v := strings.TrimSpace(os.Getenv("AMPRESS_CSS_BUDGET")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CSSBudget = n
		}
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("AMPRESS_PRERENDER"))) {
	case "1", "true", "on", "yes":
		cfg.Prerender = true
	}
	return cfg
}

// Server exposes the HTTP handlers around the sanitizer.
type Server struct {
	cfg       Config
	mux       *http.ServeMux
	handler   http.Handler
	logger    *log.Logger
	limits    *sanitize.Catalog
	resolver  sanitize.AssetResolver
	cache     *resultCache
	prerender *prerenderer
	clock     func() time.Time
}

// New wires a server with the provided configuration.
func New(cfg Config) *Server {
	if cfg.IndexHTML == "" {
		cfg.IndexHTML = defaultIndexHTML
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		logger: logger,
		cache:  newResultCache(clock),
		clock:  clock,
	}
	if cfg.CSSBudget > 0 {
		s.limits = sanitize.NewCatalog(map[string]int{sanitize.SpecNameCustomStyle: cfg.CSSBudget})
	} else {
		s.limits = sanitize.DefaultCatalog()
	}
	if len(cfg.AssetsDirs) > 0 {
		s.resolver = &sanitize.DirResolver{Roots: cfg.AssetsDirs}
	}
	if cfg.Prerender {
		s.prerender = newPrerenderer(logger)
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/sanitize", s.handleSanitize)
	s.mux.HandleFunc("/fetch", s.handleFetch)
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.handler = withLogging(logger, s.mux)
	return s
}

// NewServer wires a server from environment configuration.
func NewServer() *Server {
	return New(DefaultConfig())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close releases the headless browser, when one was started.
func (s *Server) Close() {
	if s.prerender != nil {
		s.prerender.Close()
	}
}
