package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/model"

	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet window after the last keystroke before a
// search is issued.
const DefaultDebounce = 300 * time.Millisecond

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// Fetcher is the slice of the catalogue gateway the controller needs.
type Fetcher interface {
	ListActiveProducts(ctx context.Context) []model.Product
	SearchProducts(ctx context.Context, term string) []model.Product
}

// View is a snapshot of what the catalogue should currently display.
type View struct {
	Products []model.Product `json:"products"`
	Loading  bool            `json:"loading"`
	Term     string          `json:"term"`
	Category string          `json:"category"`
}

// Controller drives the catalogue display over two axes: an active category
// (default "all") and a search term (default empty), with a non-empty term
// taking precedence. Search calls are debounced, and every input bumps a
// generation counter so responses for superseded terms are discarded instead
// of overwriting newer state.
//
// Snapshots are pushed to the listener; all methods are safe for concurrent
// use.
type Controller struct {
	fetcher  Fetcher
	listener func(View)
	logger   zerolog.Logger
	debounce time.Duration

	mu         sync.Mutex
	category   string
	term       string
	all        []model.Product // full active list, fetched once and reused
	allLoaded  bool
	results    []model.Product // latest applied search results
	loading    bool
	generation uint64
	pending    *time.Timer
	closed     bool
}

// NewController creates a controller pushing view snapshots to listener.
// A non-positive debounce falls back to DefaultDebounce.
func NewController(fetcher Fetcher, listener func(View), debounce time.Duration, logger zerolog.Logger) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		fetcher:  fetcher,
		listener: listener,
		logger:   logger.With().Str("component", "search_controller").Logger(),
		debounce: debounce,
		category: CategoryAll,
	}
}

// Start loads the full active product list and publishes the initial view.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.loading = true
	gen := c.generation
	c.publishLocked()
	c.mu.Unlock()

	products := c.fetcher.ListActiveProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = products
	c.allLoaded = true
	if c.generation == gen {
		c.loading = false
	}
	c.publishLocked()
}

// SetSearchTerm records a new search term. A non-blank term schedules a
// debounced search; typing again before the window elapses cancels the
// pending one. Clearing the term reverts to the category view using the
// already-held product list, with no re-fetch.
func (c *Controller) SetSearchTerm(ctx context.Context, term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.term = term
	c.generation++
	c.stopPendingLocked()

	if strings.TrimSpace(term) == "" {
		c.results = nil
		c.loading = false
		c.publishLocked()
		return
	}

	gen := c.generation
	c.pending = time.AfterFunc(c.debounce, func() {
		c.runSearch(ctx, term, gen)
	})
}

// SetCategory records the active category. It never clears the search term;
// when a term is active the display is unchanged until the term is cleared.
// Category views are served from the held full list without re-querying.
func (c *Controller) SetCategory(ctx context.Context, category string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.category = category
	if strings.TrimSpace(c.term) != "" || c.allLoaded {
		c.publishLocked()
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// First category view before the full list arrived.
	c.Start(ctx)
}

// Close cancels any pending search and stops the controller.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
	c.stopPendingLocked()
}

// runSearch issues the remote search for a scheduled term. The result is
// applied only if no newer input has arrived in the meantime.
func (c *Controller) runSearch(ctx context.Context, term string, gen uint64) {
	c.mu.Lock()
	if c.closed || c.generation != gen {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.publishLocked()
	c.mu.Unlock()

	products := c.fetcher.SearchProducts(ctx, term)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.generation != gen {
		c.logger.Debug().Str("term", term).Msg("discarding stale search result")
		return
	}
	c.results = products
	c.loading = false
	c.publishLocked()
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// publishLocked pushes the current view to the listener. Callers hold the
// lock.
func (c *Controller) publishLocked() {
	if c.listener == nil {
		return
	}
	c.listener(c.viewLocked())
}

// View returns the current display snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	view := View{
		Loading:  c.loading,
		Term:     c.term,
		Category: c.category,
	}

	switch {
	case strings.TrimSpace(c.term) != "":
		view.Products = copyProducts(c.results)
	case c.category == CategoryAll:
		view.Products = copyProducts(c.all)
	default:
		view.Products = filterByCategory(c.all, c.category)
	}
	return view
}

func copyProducts(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	return out
}

func filterByCategory(products []model.Product, category string) []model.Product {
	out := []model.Product{}
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
