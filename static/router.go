package static

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// CORSConfig configures the router's CORS middleware.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Router returns an http.Handler with request-ID and logging
// middleware, optional CORS, and the file handler mounted on every
// path.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger)

	if h.cfg.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.CORS.AllowedOrigins,
			AllowedMethods:   h.cfg.CORS.AllowedMethods,
			AllowedHeaders:   h.cfg.CORS.AllowedHeaders,
			ExposedHeaders:   h.cfg.CORS.ExposedHeaders,
			AllowCredentials: h.cfg.CORS.AllowCredentials,
			MaxAge:           h.cfg.CORS.MaxAge,
		}))
	}

	r.Handle("/*", h)

	return r
}
