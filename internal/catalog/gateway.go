package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/model"
	"github.com/Yana3030-web/stroymaster-website/internal/repository"

	"github.com/rs/zerolog"
)

// Cancellation budgets for the slower catalogue reads.
const (
	searchTimeout     = 10 * time.Second
	categoriesTimeout = 8 * time.Second
)

// DefaultCategories is the static category list served when the remote
// source is unavailable. Served in this order, as a fresh copy per call.
var DefaultCategories = []string{
	"Штукатурка",
	"Аквапанель Кнауф и АрмПанель",
	"Белтермо",
	"Бетоноконтакт и грунтовки",
	"Геотекстиль",
	"Гипсокартон",
	"Утеплитель Пеноплекс",
	"Утеплитель Роквул",
}

// Gateway wraps the product repository with the storefront's degradation
// policy: reads never fail, they fall back to empty results or default
// values. Callers cannot distinguish "no data" from "fetch failed"; that
// matches the behaviour the frontend was built around.
type Gateway struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewGateway creates a gateway over the given repository.
func NewGateway(repo repository.ProductRepository, logger zerolog.Logger) *Gateway {
	return &Gateway{
		repo:   repo,
		logger: logger.With().Str("component", "catalog_gateway").Logger(),
	}
}

// ListActiveProducts returns all active products, newest first. On any
// failure it returns an empty list.
func (g *Gateway) ListActiveProducts(ctx context.Context) []model.Product {
	products, err := g.repo.ActiveProducts(ctx)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to load products, serving empty catalogue")
		return []model.Product{}
	}
	if products == nil {
		return []model.Product{}
	}
	return products
}

// ListProductsByCategory returns active products in the given category,
// newest first. The "all" sentinel is a caller concern; the gateway filters
// by whatever label it is handed. On any failure it returns an empty list.
func (g *Gateway) ListProductsByCategory(ctx context.Context, category string) []model.Product {
	products, err := g.repo.ActiveProductsByCategory(ctx, category)
	if err != nil {
		g.logger.Error().Err(err).Str("category", category).Msg("failed to load products by category, serving empty list")
		return []model.Product{}
	}
	if products == nil {
		return []model.Product{}
	}
	return products
}

// SearchProducts returns active products matching the term across name,
// description and category. An empty or whitespace-only term short-circuits
// to an empty result without touching the remote source. The call is bounded
// by a 10-second budget; on expiry or failure an empty list is returned.
func (g *Gateway) SearchProducts(ctx context.Context, term string) []model.Product {
	if strings.TrimSpace(term) == "" {
		return []model.Product{}
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	products, err := g.repo.SearchActiveProducts(ctx, term)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Warn().Str("term", term).Msg("product search timed out")
		} else {
			g.logger.Error().Err(err).Str("term", term).Msg("product search failed")
		}
		return []model.Product{}
	}
	if products == nil {
		return []model.Product{}
	}
	return products
}

// ListCategories returns the distinct category labels among active products,
// sorted ascending. The call is bounded by an 8-second budget; on expiry or
// failure a copy of the static default list is returned.
func (g *Gateway) ListCategories(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, categoriesTimeout)
	defer cancel()

	categories, err := g.repo.ActiveCategories(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Warn().Msg("category listing timed out, serving default categories")
		} else {
			g.logger.Error().Err(err).Msg("failed to load categories, serving default categories")
		}
		// Hand out a copy so a caller mutating the result cannot
		// corrupt the fallback list.
		return append([]string(nil), DefaultCategories...)
	}

	sort.Strings(categories)
	return categories
}

// GetProductByID returns a single active product, or nil on any failure or
// when the product is absent.
func (g *Gateway) GetProductByID(ctx context.Context, id int64) *model.Product {
	product, err := g.repo.ProductByID(ctx, id)
	if err != nil {
		g.logger.Error().Err(err).Int64("product_id", id).Msg("failed to load product")
		return nil
	}
	return product
}
