package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
	"github.com/terra-clan/resilience-scorecard/internal/scoring"
)

// Catalog handlers: read-only views of the loaded question catalog

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	cat := CatalogFromContext(r.Context())
	issues := s.catalogs.Issues()
	if issues == nil {
		issues = []catalog.Issue{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"catalog": cat,
		"issues":  issues,
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := scoring.Summarize(CatalogFromContext(r.Context()))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}

// handleFindQuestions filters the raw catalog, e.g. ?tag=ransomware&weight=4
func (s *Server) handleFindQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit := catalog.Criteria{
		Category:    q.Get("category"),
		SubCategory: q.Get("subCategory"),
		Search:      q.Get("search"),
	}

	for _, tag := range q["tag"] {
		for _, t := range strings.Split(tag, ",") {
			if t = strings.TrimSpace(t); t != "" {
				crit.Tags = append(crit.Tags, t)
			}
		}
	}

	if raw := q.Get("weight"); raw != "" {
		weight, err := strconv.Atoi(raw)
		if err != nil || weight < 1 || weight > 5 {
			respondError(w, http.StatusBadRequest, "validation_error", "weight must be an integer between 1 and 5")
			return
		}
		crit.Weight = weight
	}

	questions := catalog.FindQuestions(CatalogFromContext(r.Context()), crit)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
	})
}
