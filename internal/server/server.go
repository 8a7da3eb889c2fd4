// Package server hosts the form over HTTP. Every request mounts a fresh
// component, replays the posted values into it as browser events would, and
// renders the resulting tree through the page renderer.
package server

import (
	"crypto/rand"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formview/pkg/formview"
	"github.com/goliatone/go-formview/pkg/render"
	renderhtml "github.com/goliatone/go-formview/pkg/renderers/html"
)

// Options configure a Server.
type Options struct {
	Labels formview.Labels
	// Theme is passed to renderers on every request. Nil renders unthemed.
	Theme *theme.RendererConfig
	// SessionLifetime bounds how long a flash survives. Defaults to 24h.
	SessionLifetime time.Duration
	// Secure marks the session cookie Secure.
	Secure bool
	// TrustedOrigins are host:port values allowed to post cross-origin.
	TrustedOrigins []string
	// CSRFKey authenticates CSRF state; a random key is used when empty.
	CSRFKey []byte
	Logger  *slog.Logger
}

// Server is the HTTP host.
type Server struct {
	labels   formview.Labels
	theme    *theme.RendererConfig
	logger   *slog.Logger
	sessions *scs.SessionManager
	registry *render.Registry
	router   chi.Router
}

// New wires the router, session manager, CSRF protection and renderers.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	page, err := renderhtml.NewPage(renderhtml.WithInlineStylesheet(false))
	if err != nil {
		return nil, fmt.Errorf("server: page renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(page)
	registry.MustRegister(renderhtml.NewFragment())

	csrfKey := opts.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			return nil, fmt.Errorf("server: generate csrf key: %w", err)
		}
	}

	s := &Server{
		labels:   formview.DefaultLabels().Merge(opts.Labels),
		theme:    withStylesheet(opts.Theme),
		logger:   logger,
		sessions: newSessionManager(opts.SessionLifetime, opts.Secure),
		registry: registry,
	}
	s.router = s.routes(csrfKey, opts.TrustedOrigins)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func newSessionManager(lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	if lifetime > 0 {
		sm.Lifetime = lifetime
	}
	sm.Cookie.Name = "formview_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm
}

func (s *Server) routes(csrfKey []byte, trustedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(s.sessions.LoadAndSave)
	r.Use(csrfProtect(csrfKey, trustedOrigins, s.logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/form", http.StatusFound)
	})
	r.Get("/healthz", s.handleHealth)
	r.Get("/form", s.handleShow)
	r.Post("/form", s.handlePost)
	r.Get("/form/schema", s.handleSchema)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS()))))
	return r
}

func assetsFS() fs.FS {
	return renderhtml.AssetsFS()
}

// BrandTheme returns a theme configuration setting the brand color, or nil
// when brand is empty.
func BrandTheme(brand string) *theme.RendererConfig {
	if brand == "" {
		return nil
	}
	return &theme.RendererConfig{
		Theme:   "formview",
		Variant: "default",
		Tokens:  map[string]string{"brand": brand},
		CSSVars: map[string]string{"--brand": brand},
	}
}

// withStylesheet returns a copy of cfg whose AssetURL resolves the page
// stylesheet to the embedded asset, delegating other keys.
func withStylesheet(cfg *theme.RendererConfig) *theme.RendererConfig {
	out := theme.RendererConfig{}
	if cfg != nil {
		out = *cfg
	}
	next := out.AssetURL
	out.AssetURL = func(key string) string {
		if key == renderhtml.StylesheetAsset {
			if next != nil {
				if url := next(key); url != "" {
					return url
				}
			}
			return "/assets/" + renderhtml.StylesheetName
		}
		if next != nil {
			return next(key)
		}
		return ""
	}
	return &out
}
