package api

import (
	"context"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

type contextKey string

const catalogContextKey contextKey = "catalog"

// CatalogFromContext extracts the request's catalog snapshot from context
func CatalogFromContext(ctx context.Context) *models.Catalog {
	cat, ok := ctx.Value(catalogContextKey).(*models.Catalog)
	if !ok {
		return nil
	}
	return cat
}

// ContextWithCatalog adds a catalog snapshot to context
func ContextWithCatalog(ctx context.Context, cat *models.Catalog) context.Context {
	return context.WithValue(ctx, catalogContextKey, cat)
}
