package restapi

import "github.com/niksmo/storefront/internal/core/domain"

// Column names follow the tables created by the storefront admin, which
// are camelCase except for created_at.
type (
	productRow struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Price       float64  `json:"price"`
		Rating      float64  `json:"rating"`
		ReviewCount int      `json:"reviewCount"`
		ImageURL    string   `json:"imageUrl"`
		Category    string   `json:"category"`
		Description string   `json:"description"`
		Brand       string   `json:"brand"`
		Features    []string `json:"features"`
		IsPrime     bool     `json:"isPrime"`
		StockStatus string   `json:"stockStatus"`
		BuyNowURL   *string  `json:"buyNowUrl"`
	}

	categoryRow struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}

	appConfigRow struct {
		ID              int    `json:"id"`
		LogoURL         string `json:"logoUrl"`
		HeroImageURL    string `json:"heroImageUrl"`
		GlobalBuyNowURL string `json:"globalBuyNowUrl"`
	}
)

func toProductRow(p domain.Product) productRow {
	r := productRow{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Description: p.Description,
		Brand:       p.Brand,
		Features:    p.Features,
		IsPrime:     p.IsPrime,
		StockStatus: p.StockStatus,
	}
	if r.Features == nil {
		r.Features = []string{}
	}
	if p.BuyNowURL != "" {
		r.BuyNowURL = &p.BuyNowURL
	}
	return r
}

func (r productRow) toDomain() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Description: r.Description,
		Brand:       r.Brand,
		Features:    r.Features,
		IsPrime:     r.IsPrime,
		StockStatus: r.StockStatus,
	}
	if r.BuyNowURL != nil {
		p.BuyNowURL = *r.BuyNowURL
	}
	return p
}

func toCategoryRow(c domain.Category) categoryRow {
	return categoryRow{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL}
}

func (r categoryRow) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Name: r.Name, ImageURL: r.ImageURL}
}

func toAppConfigRow(cfg domain.AppConfig) appConfigRow {
	return appConfigRow{
		ID:              domain.AppConfigRowID,
		LogoURL:         cfg.LogoURL,
		HeroImageURL:    cfg.HeroImageURL,
		GlobalBuyNowURL: cfg.GlobalBuyNowURL,
	}
}

func (r appConfigRow) toDomain() domain.AppConfig {
	return domain.AppConfig{
		LogoURL:         r.LogoURL,
		HeroImageURL:    r.HeroImageURL,
		GlobalBuyNowURL: r.GlobalBuyNowURL,
	}
}
