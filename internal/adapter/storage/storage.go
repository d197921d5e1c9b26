package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogStorage = (*CatalogRepository)(nil)

// CatalogRepository keeps the catalog tables in PostgreSQL. The schema
// lives in the migrations directory.
type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

func (r CatalogRepository) SelectProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogRepository.SelectProducts"

	query := `
		SELECT
			id, title, price, rating, review_count, image_url, category,
			description, brand, features, is_prime, stock_status, buy_now_url
		FROM products
		ORDER BY created_at DESC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		var (
			v         domain.Product
			features  []byte
			buyNowURL sql.NullString
		)
		err := rows.Scan(
			&v.ID, &v.Title, &v.Price, &v.Rating, &v.ReviewCount,
			&v.ImageURL, &v.Category, &v.Description, &v.Brand,
			&features, &v.IsPrime, &v.StockStatus, &buyNowURL,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(features) != 0 {
			if err := json.Unmarshal(features, &v.Features); err != nil {
				return nil, fmt.Errorf("%s: product %q features: %w", op, v.ID, err)
			}
		}
		v.BuyNowURL = buyNowURL.String
		ps = append(ps, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r CatalogRepository) InsertProduct(
	ctx context.Context, v domain.Product,
) error {
	const op = "CatalogRepository.InsertProduct"

	query := `
		INSERT INTO products (
			id, title, price, rating, review_count, image_url, category,
			description, brand, features, is_prime, stock_status, buy_now_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	if err := r.execProduct(ctx, query, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CatalogRepository) UpdateProduct(
	ctx context.Context, v domain.Product,
) error {
	const op = "CatalogRepository.UpdateProduct"

	query := `
		UPDATE products SET
			title = $2,
			price = $3,
			rating = $4,
			review_count = $5,
			image_url = $6,
			category = $7,
			description = $8,
			brand = $9,
			features = $10,
			is_prime = $11,
			stock_status = $12,
			buy_now_url = $13
		WHERE id = $1;`

	if err := r.execProduct(ctx, query, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CatalogRepository) execProduct(
	ctx context.Context, query string, v domain.Product,
) error {
	features := v.Features
	if features == nil {
		features = []string{}
	}
	featuresB, err := json.Marshal(features)
	if err != nil {
		return err
	}

	buyNowURL := sql.NullString{String: v.BuyNowURL, Valid: v.BuyNowURL != ""}

	_, err = r.sqldb.ExecContext(ctx, query,
		v.ID, v.Title, v.Price, v.Rating, v.ReviewCount, v.ImageURL,
		v.Category, v.Description, v.Brand, string(featuresB), v.IsPrime,
		v.StockStatus, buyNowURL,
	)
	return err
}

func (r CatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogRepository.DeleteProduct"

	_, err := r.sqldb.ExecContext(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CatalogRepository) SelectCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "CatalogRepository.SelectCategories"

	query := `
		SELECT id, name, image_url
		FROM categories
		ORDER BY created_at ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var cs []domain.Category
	for rows.Next() {
		var v domain.Category
		if err := rows.Scan(&v.ID, &v.Name, &v.ImageURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cs = append(cs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (r CatalogRepository) InsertCategory(
	ctx context.Context, v domain.Category,
) error {
	const op = "CatalogRepository.InsertCategory"

	query := `INSERT INTO categories (id, name, image_url) VALUES ($1, $2, $3);`

	_, err := r.sqldb.ExecContext(ctx, query, v.ID, v.Name, v.ImageURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CatalogRepository) UpdateCategory(
	ctx context.Context, v domain.Category,
) error {
	const op = "CatalogRepository.UpdateCategory"

	query := `UPDATE categories SET name = $2, image_url = $3 WHERE id = $1;`

	_, err := r.sqldb.ExecContext(ctx, query, v.ID, v.Name, v.ImageURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	const op = "CatalogRepository.DeleteCategory"

	_, err := r.sqldb.ExecContext(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CatalogRepository) ReadAppConfig(
	ctx context.Context,
) (domain.AppConfig, error) {
	const op = "CatalogRepository.ReadAppConfig"

	query := `
		SELECT logo_url, hero_image_url, global_buy_now_url
		FROM app_config
		WHERE id = $1;`

	var v domain.AppConfig
	err := r.sqldb.QueryRowContext(ctx, query, domain.AppConfigRowID).Scan(
		&v.LogoURL, &v.HeroImageURL, &v.GlobalBuyNowURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AppConfig{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.AppConfig{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r CatalogRepository) UpsertAppConfig(
	ctx context.Context, v domain.AppConfig,
) error {
	const op = "CatalogRepository.UpsertAppConfig"

	query := `
		INSERT INTO app_config (id, logo_url, hero_image_url, global_buy_now_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			logo_url = EXCLUDED.logo_url,
			hero_image_url = EXCLUDED.hero_image_url,
			global_buy_now_url = EXCLUDED.global_buy_now_url;`

	_, err := r.sqldb.ExecContext(ctx, query,
		domain.AppConfigRowID, v.LogoURL, v.HeroImageURL, v.GlobalBuyNowURL,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
