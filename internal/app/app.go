package app

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"bookbazaar/internal/apiclient"
	"bookbazaar/internal/cart"
	"bookbazaar/internal/catalog"
	"bookbazaar/internal/notify"
	"bookbazaar/internal/session"
	"bookbazaar/pkg/domain"
)

// MarketAPI is the remote marketplace collaborator consumed by the core.
// *apiclient.Client satisfies it.
type MarketAPI interface {
	ListBooks(token, q, category string) ([]domain.Book, error)
	GetBook(token string, id int64) (domain.Book, error)
	CreateBook(token string, req apiclient.CreateBookRequest) (domain.Book, error)
	UpdateBook(token string, id int64, req apiclient.UpdateBookRequest) (domain.Book, error)
	DeleteBook(token string, id int64) error
	MyListings(token string) ([]domain.Book, error)
	AdminListUsers(token string) ([]domain.User, error)
	AdminListBooks(token string) ([]domain.Book, error)
	AdminDeleteBook(token string, id int64) error
}

// Config wires the client core's collaborators and defaults.
type Config struct {
	API      MarketAPI
	Session  *session.Session
	Cart     *cart.Cart
	Notifier *notify.Bus
	Pipeline *catalog.Pipeline

	// Initial displayed price window.
	PriceMin float64
	PriceMax float64
}

// App is the client core: one explicit context object constructed at session
// start, owning the catalog state and fronting the cart and session engines.
// There are no package-level globals; rendering layers hold a reference.
type App struct {
	api      MarketAPI
	session  *session.Session
	cart     *cart.Cart
	notifier *notify.Bus
	pipeline *catalog.Pipeline

	mu       sync.Mutex
	raw      []domain.Book
	criteria domain.FilterCriteria
	view     []domain.Book
	fetchSeq uint64
}

// New constructs the core. API and Session are required; the in-memory
// engines default when not supplied.
func New(cfg Config) (*App, error) {
	if cfg.API == nil {
		return nil, fmt.Errorf("market API client required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session required")
	}
	if cfg.Cart == nil {
		cfg.Cart = cart.New()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}
	if cfg.Pipeline == nil {
		cfg.Pipeline = catalog.New(language.Und)
	}
	if cfg.PriceMin == 0 && cfg.PriceMax == 0 {
		cfg.PriceMin, cfg.PriceMax = 200, 2000
	}
	if cfg.PriceMax < cfg.PriceMin {
		return nil, fmt.Errorf("price window: max %v below min %v", cfg.PriceMax, cfg.PriceMin)
	}
	return &App{
		api:      cfg.API,
		session:  cfg.Session,
		cart:     cfg.Cart,
		notifier: cfg.Notifier,
		pipeline: cfg.Pipeline,
		criteria: domain.FilterCriteria{
			PriceMin: cfg.PriceMin,
			PriceMax: cfg.PriceMax,
			SortKey:  domain.SortNewest,
		},
	}, nil
}

// Session exposes the auth engine.
func (a *App) Session() *session.Session { return a.session }

// Notifications exposes the feedback bus for the rendering layer.
func (a *App) Notifications() *notify.Bus { return a.notifier }

// Search fetches the catalog for the given search text and category,
// replaces the raw set, and runs the pipeline exactly once. On fetch failure
// the previous raw set and view are kept (stale but valid) and a single
// error notification is raised.
//
// Rapid successive searches race only at the transport: each call takes a
// monotonic sequence number, and a response arriving after a newer search
// has started is discarded instead of clobbering the newer result.
func (a *App) Search(q, category string) []domain.Book {
	a.mu.Lock()
	a.criteria.SearchText = q
	a.criteria.Category = category
	a.fetchSeq++
	seq := a.fetchSeq
	a.mu.Unlock()

	items, err := a.api.ListBooks(a.session.Token(), q, category)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.fetchSeq {
		slog.Debug("catalog: dropping superseded fetch", "seq", seq, "latest", a.fetchSeq)
		return a.view
	}
	if err != nil {
		slog.Warn("catalog: fetch failed", "q", q, "category", category, "err", err)
		a.notifier.Error("Failed to load books")
		return a.view
	}
	a.raw = items
	a.view = a.pipeline.Apply(a.raw, a.criteria)
	return a.view
}

// Refresh re-fetches the catalog with the current search text and category.
func (a *App) Refresh() []domain.Book {
	a.mu.Lock()
	q, category := a.criteria.SearchText, a.criteria.Category
	a.mu.Unlock()
	return a.Search(q, category)
}

// SetPriceRange updates the price window and reruns the pipeline against the
// last fetched raw set. No fetch is triggered.
func (a *App) SetPriceRange(min, max float64) []domain.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.criteria.PriceMin = min
	a.criteria.PriceMax = max
	a.view = a.pipeline.Apply(a.raw, a.criteria)
	return a.view
}

// SetSortKey updates the sort order and reruns the pipeline against the last
// fetched raw set. No fetch is triggered.
func (a *App) SetSortKey(key domain.SortKey) []domain.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.criteria.SortKey = key
	a.view = a.pipeline.Apply(a.raw, a.criteria)
	return a.view
}

// View returns the current derived view.
func (a *App) View() []domain.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// Criteria returns the current filter criteria.
func (a *App) Criteria() domain.FilterCriteria {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.criteria
}

// ViewBook fetches full details for one catalog item.
func (a *App) ViewBook(id int64) (domain.Book, bool) {
	book, err := a.api.GetBook(a.session.Token(), id)
	if err != nil {
		slog.Warn("catalog: book detail fetch failed", "id", id, "err", err)
		a.notifier.Error("Failed to load book details")
		return domain.Book{}, false
	}
	return book, true
}

// AddToCart adds one copy of the book to the cart.
func (a *App) AddToCart(b domain.Book) {
	a.cart.Add(b, 1)
	a.notifier.Success("Added to cart!")
}

// UpdateQuantity sets a cart line's quantity; zero or below removes it.
func (a *App) UpdateQuantity(id int64, qty int) {
	a.cart.UpdateQuantity(id, qty)
}

// RemoveFromCart drops a cart line.
func (a *App) RemoveFromCart(id int64) {
	a.cart.Remove(id)
}

// CartLines returns the cart contents in insertion order.
func (a *App) CartLines() []domain.CartLine { return a.cart.Lines() }

// CartCount returns the total quantity across cart lines.
func (a *App) CartCount() int { return a.cart.Count() }

// CartTotal returns the price sum across cart lines.
func (a *App) CartTotal() float64 { return a.cart.Total() }
