package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Inbound ports.

type CatalogReader interface {
	Snapshot() domain.Catalog
	Product(id string) (domain.Product, error)
}

type ProductsManager interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type CategoriesManager interface {
	CreateCategory(context.Context, domain.Category) (domain.Category, error)
	UpdateCategory(context.Context, domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type AppConfigSetter interface {
	SetConfig(context.Context, domain.AppConfig) error
}

type CredentialVerifier interface {
	VerifyCredentials(username, password string) error
}

// Outbound ports.

type ProductsStorage interface {
	// SelectProducts returns all products, most recently created first.
	SelectProducts(context.Context) ([]domain.Product, error)
	InsertProduct(context.Context, domain.Product) error
	// UpdateProduct succeeds when no row matches the id.
	UpdateProduct(context.Context, domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type CategoriesStorage interface {
	// SelectCategories returns all categories, oldest first.
	SelectCategories(context.Context) ([]domain.Category, error)
	InsertCategory(context.Context, domain.Category) error
	UpdateCategory(context.Context, domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type AppConfigStorage interface {
	// ReadAppConfig returns [domain.ErrNotFound] when the row is absent.
	ReadAppConfig(context.Context) (domain.AppConfig, error)
	UpsertAppConfig(context.Context, domain.AppConfig) error
}

type CatalogStorage interface {
	ProductsStorage
	CategoriesStorage
	AppConfigStorage
}

type CatalogEventsProducer interface {
	ProduceEvent(context.Context, domain.CatalogEvent) error
}
