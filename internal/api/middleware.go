package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
)

const maxBodyBytes = 1 << 20

// requireCatalog pins the current catalog for the whole request so a reload
// in between cannot split selection and scoring across two catalogs.
func (s *Server) requireCatalog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cat, err := s.catalogs.Current()
		if err != nil {
			if errors.Is(err, catalog.ErrCatalogNotLoaded) {
				respondError(w, http.StatusServiceUnavailable, "catalog_not_loaded", "question catalog is not loaded")
				return
			}
			slog.Error("failed to get catalog", "error", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to get catalog")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithCatalog(r.Context(), cat)))
	})
}

// limitBody caps request bodies
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
