package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogReader = (*Catalog)(nil)
var _ port.ProductsManager = (*Catalog)(nil)
var _ port.CategoriesManager = (*Catalog)(nil)
var _ port.AppConfigSetter = (*Catalog)(nil)

// Catalog owns the in-memory copy of products, categories and the site
// config. Every mutation goes to the storage first; local state changes
// only after the storage has accepted it.
//
// The lock is never held across a storage call, so concurrent mutations
// of the same entity race at the backend and the last one to return wins
// locally.
type Catalog struct {
	storage port.CatalogStorage
	events  port.CatalogEventsProducer
	ids     IDGenerator
	now     func() time.Time

	eventsMu     sync.RWMutex
	eventsClosed bool
	eventQ       chan domain.CatalogEvent
	eventsDone   chan struct{}

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	config     domain.AppConfig
	degraded   bool
}

const (
	eventQueueSize = 256
	eventTimeout   = 5 * time.Second
)

// New returns a Catalog holding the default config and no products until
// [Catalog.Load] is called. A nil storage means no backend is configured.
// A nil events producer disables catalog events.
//
// Events are produced in the background, one at a time and in order, so a
// slow broker never delays a mutation. Call [Catalog.Close] to flush them.
func New(
	storage port.CatalogStorage,
	events port.CatalogEventsProducer,
	ids IDGenerator,
) *Catalog {
	s := &Catalog{
		storage: storage,
		events:  events,
		ids:     ids,
		now:     time.Now,
		config:  domain.DefaultAppConfig(),
	}

	if events != nil {
		s.eventQ = make(chan domain.CatalogEvent, eventQueueSize)
		s.eventsDone = make(chan struct{})
		go s.runEvents()
	}
	return s
}

// Close stops accepting catalog events and waits until the queued ones are
// produced. Mutations after Close still apply but emit no events.
func (s *Catalog) Close() {
	const op = "Catalog.Close"

	if s.events == nil {
		return
	}

	s.eventsMu.Lock()
	if s.eventsClosed {
		s.eventsMu.Unlock()
		return
	}
	s.eventsClosed = true
	close(s.eventQ)
	s.eventsMu.Unlock()

	<-s.eventsDone
	slog.Info("catalog events are flushed", "op", op)
}

// Load fetches products, categories and the config row.
//
// If the storage is not configured or products cannot be fetched, Load
// serves the seed products with no categories and the default config and
// returns nil. Categories and config failures are returned after the rest
// of the data is in place.
func (s *Catalog) Load(ctx context.Context) error {
	const op = "Catalog.Load"
	log := slog.With("op", op)

	if s.storage == nil {
		log.Warn("store is not configured, serving seed data")
		s.useSeed()
		return nil
	}

	products, err := s.storage.SelectProducts(ctx)
	if err != nil {
		log.Warn("failed to fetch products, serving seed data", "err", err)
		s.useSeed()
		return nil
	}
	products = validRows(log, products, func(p domain.Product) string {
		return p.ID
	})
	if len(products) == 0 {
		log.Info("products table is empty, serving seed data")
		products = domain.SeedProducts()
	}

	var errs []error

	categories, err := s.storage.SelectCategories(ctx)
	if err != nil {
		log.Error("failed to fetch categories", "err", err)
		errs = append(errs, err)
	}
	categories = validRows(log, categories, func(c domain.Category) string {
		return c.ID
	})

	config := domain.DefaultAppConfig()
	stored, err := s.storage.ReadAppConfig(ctx)
	switch {
	case err == nil:
		config = stored
	case errors.Is(err, domain.ErrNotFound):
		log.Info("config row is absent, using defaults")
	default:
		log.Error("failed to fetch config", "err", err)
		errs = append(errs, err)
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.config = config
	s.degraded = false
	s.mu.Unlock()

	log.Info("catalog loaded",
		"nProducts", len(products), "nCategories", len(categories))

	if len(errs) != 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}
	return nil
}

func (s *Catalog) useSeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = domain.SeedProducts()
	s.categories = nil
	s.config = domain.DefaultAppConfig()
	s.degraded = true
}

func validRows[T any](log *slog.Logger, rows []T, id func(T) string) []T {
	valid := make([]T, 0, len(rows))
	for _, row := range rows {
		if err := domain.Validate(row); err != nil {
			log.Warn("rejected malformed row", "id", id(row), "err", err)
			continue
		}
		valid = append(valid, row)
	}
	return valid
}

// Snapshot returns a copy of the current catalog. Callers may keep and
// modify it freely.
func (s *Catalog) Snapshot() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		products[i] = p.Clone()
	}

	return domain.Catalog{
		Products:   products,
		Categories: slices.Clone(s.categories),
		Config:     s.config,
		Degraded:   s.degraded,
	}
}

func (s *Catalog) Product(id string) (domain.Product, error) {
	const op = "Catalog.Product"

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return s.products[i].Clone(), nil
}

func (s *Catalog) SetConfig(ctx context.Context, cfg domain.AppConfig) error {
	const op = "Catalog.SetConfig"

	if err := s.precheck(ctx, cfg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpsertAppConfig(ctx, cfg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()

	s.publish(domain.EventUpdated, domain.EntityConfig,
		strconv.Itoa(domain.AppConfigRowID))
	return nil
}

// CreateProduct stores p and puts it first in the local list. An empty
// p.ID is replaced with a generated one.
func (s *Catalog) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "Catalog.CreateProduct"

	if p.ID == "" && s.ids != nil {
		p.ID = s.ids.ProductID()
	}
	p = p.Clone()

	if err := s.precheck(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.InsertProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.products = slices.Insert(s.products, 0, p)
	s.mu.Unlock()

	s.publish(domain.EventCreated, domain.EntityProduct, p.ID)
	return p.Clone(), nil
}

func (s *Catalog) UpdateProduct(ctx context.Context, p domain.Product) error {
	const op = "Catalog.UpdateProduct"

	p = p.Clone()
	if err := s.precheck(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateProduct(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
		}
	}
	s.mu.Unlock()

	s.publish(domain.EventUpdated, domain.EntityProduct, p.ID)
	return nil
}

func (s *Catalog) DeleteProduct(ctx context.Context, id string) error {
	const op = "Catalog.DeleteProduct"

	if err := s.precheckID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
	s.mu.Unlock()

	s.publish(domain.EventDeleted, domain.EntityProduct, id)
	return nil
}

// CreateCategory stores c and appends it to the local list. An empty c.ID
// is replaced with a generated one.
func (s *Catalog) CreateCategory(
	ctx context.Context, c domain.Category,
) (domain.Category, error) {
	const op = "Catalog.CreateCategory"

	if c.ID == "" && s.ids != nil {
		c.ID = s.ids.CategoryID()
	}

	if err := s.precheck(ctx, c); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.InsertCategory(ctx, c); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()

	s.publish(domain.EventCreated, domain.EntityCategory, c.ID)
	return c, nil
}

func (s *Catalog) UpdateCategory(ctx context.Context, c domain.Category) error {
	const op = "Catalog.UpdateCategory"

	if err := s.precheck(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateCategory(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
		}
	}
	s.mu.Unlock()

	s.publish(domain.EventUpdated, domain.EntityCategory, c.ID)
	return nil
}

func (s *Catalog) DeleteCategory(ctx context.Context, id string) error {
	const op = "Catalog.DeleteCategory"

	if err := s.precheckID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.categories = slices.DeleteFunc(s.categories, func(c domain.Category) bool {
		return c.ID == id
	})
	s.mu.Unlock()

	s.publish(domain.EventDeleted, domain.EntityCategory, id)
	return nil
}

func (s *Catalog) precheck(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.storage == nil {
		return domain.ErrStoreUnavailable
	}
	return domain.Validate(v)
}

func (s *Catalog) precheckID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.storage == nil {
		return domain.ErrStoreUnavailable
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", domain.ErrInvalid)
	}
	return nil
}

// publish queues an event for an applied mutation. The mutation stands
// regardless of what happens to the event.
func (s *Catalog) publish(
	kind domain.EventKind,
	entity domain.EntityKind,
	id string,
) {
	const op = "Catalog.publish"

	if s.events == nil {
		return
	}

	evt := domain.CatalogEvent{
		Kind:       kind,
		Entity:     entity,
		EntityID:   id,
		OccurredAt: s.now(),
	}

	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	if s.eventsClosed {
		return
	}

	select {
	case s.eventQ <- evt:
	default:
		slog.Warn("event queue is full, dropping catalog event",
			"op", op, "kind", kind, "entity", entity, "id", id)
	}
}

func (s *Catalog) runEvents() {
	const op = "Catalog.runEvents"
	defer close(s.eventsDone)

	for evt := range s.eventQ {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		err := s.events.ProduceEvent(ctx, evt)
		cancel()
		if err != nil {
			slog.Warn("failed to produce catalog event", "op", op,
				"kind", evt.Kind, "entity", evt.Entity, "id", evt.EntityID,
				"err", err)
		}
	}
}
