package restapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogStorage = (*Store)(nil)

const (
	productsTable   = "products"
	categoriesTable = "categories"
	appConfigTable  = "app_config"

	newestFirst = "created_at.desc"
	oldestFirst = "created_at.asc"
)

// Store maps the catalog tables onto the backend's row API.
type Store struct {
	cl Client
}

func NewStore(cl Client) Store {
	return Store{cl}
}

func (s Store) SelectProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Store.SelectProducts"

	var rows []productRow
	if err := s.cl.selectAll(ctx, productsTable, newestFirst, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(rows))
	for i, r := range rows {
		ps[i] = r.toDomain()
	}
	return ps, nil
}

func (s Store) InsertProduct(ctx context.Context, p domain.Product) error {
	const op = "Store.InsertProduct"
	if err := s.cl.insert(ctx, productsTable, toProductRow(p)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) UpdateProduct(ctx context.Context, p domain.Product) error {
	const op = "Store.UpdateProduct"
	if err := s.cl.update(ctx, productsTable, p.ID, toProductRow(p)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) DeleteProduct(ctx context.Context, id string) error {
	const op = "Store.DeleteProduct"
	if err := s.cl.delete(ctx, productsTable, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) SelectCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "Store.SelectCategories"

	var rows []categoryRow
	if err := s.cl.selectAll(ctx, categoriesTable, oldestFirst, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cs := make([]domain.Category, len(rows))
	for i, r := range rows {
		cs[i] = r.toDomain()
	}
	return cs, nil
}

func (s Store) InsertCategory(ctx context.Context, c domain.Category) error {
	const op = "Store.InsertCategory"
	if err := s.cl.insert(ctx, categoriesTable, toCategoryRow(c)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) UpdateCategory(ctx context.Context, c domain.Category) error {
	const op = "Store.UpdateCategory"
	if err := s.cl.update(ctx, categoriesTable, c.ID, toCategoryRow(c)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) DeleteCategory(ctx context.Context, id string) error {
	const op = "Store.DeleteCategory"
	if err := s.cl.delete(ctx, categoriesTable, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Store) ReadAppConfig(ctx context.Context) (domain.AppConfig, error) {
	const op = "Store.ReadAppConfig"

	var row appConfigRow
	err := s.cl.selectOne(
		ctx, appConfigTable, strconv.Itoa(domain.AppConfigRowID), &row,
	)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Code == CodeNoRows {
			return domain.AppConfig{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.AppConfig{}, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), nil
}

func (s Store) UpsertAppConfig(ctx context.Context, cfg domain.AppConfig) error {
	const op = "Store.UpsertAppConfig"
	if err := s.cl.upsert(ctx, appConfigTable, toAppConfigRow(cfg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
