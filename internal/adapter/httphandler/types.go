package httphandler

import "github.com/niksmo/storefront/internal/core/domain"

type (
	Product struct {
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
		BuyNowURL   string   `json:"buyNowUrl,omitempty"`
	}

	ProductDetail struct {
		Product
		BuyNowTarget string `json:"buyNowTarget"`
	}

	Category struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}

	AppConfig struct {
		LogoURL         string `json:"logoUrl"`
		HeroImageURL    string `json:"heroImageUrl"`
		GlobalBuyNowURL string `json:"globalBuyNowUrl"`
	}

	Catalog struct {
		Products   []Product  `json:"products"`
		Categories []Category `json:"categories"`
		Config     AppConfig  `json:"config"`
		Degraded   bool       `json:"degraded"`
	}
)

type (
	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	Session struct {
		Admin bool `json:"admin"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}

	// MutationResult carries the outcome of an admin change and, when it
	// was applied, the stored entity.
	MutationResult struct {
		Outcome  string     `json:"outcome"`
		Error    string     `json:"error,omitempty"`
		Product  *Product   `json:"product,omitempty"`
		Category *Category  `json:"category,omitempty"`
		Config   *AppConfig `json:"config,omitempty"`
	}
)

func productFromDomain(p domain.Product) Product {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Description: p.Description,
		Brand:       p.Brand,
		Features:    features,
		IsPrime:     p.IsPrime,
		StockStatus: p.StockStatus,
		BuyNowURL:   p.BuyNowURL,
	}
}

func (p Product) toDomain() domain.Product {
	return domain.Product{
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
		BuyNowURL:   p.BuyNowURL,
	}
}

func categoryFromDomain(c domain.Category) Category {
	return Category{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL}
}

func (c Category) toDomain() domain.Category {
	return domain.Category{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL}
}

func appConfigFromDomain(c domain.AppConfig) AppConfig {
	return AppConfig{
		LogoURL:         c.LogoURL,
		HeroImageURL:    c.HeroImageURL,
		GlobalBuyNowURL: c.GlobalBuyNowURL,
	}
}

func (c AppConfig) toDomain() domain.AppConfig {
	return domain.AppConfig{
		LogoURL:         c.LogoURL,
		HeroImageURL:    c.HeroImageURL,
		GlobalBuyNowURL: c.GlobalBuyNowURL,
	}
}

func catalogFromDomain(c domain.Catalog) Catalog {
	out := Catalog{
		Products:   make([]Product, 0, len(c.Products)),
		Categories: make([]Category, 0, len(c.Categories)),
		Config:     appConfigFromDomain(c.Config),
		Degraded:   c.Degraded,
	}
	for _, p := range c.Products {
		out.Products = append(out.Products, productFromDomain(p))
	}
	for _, cat := range c.Categories {
		out.Categories = append(out.Categories, categoryFromDomain(cat))
	}
	return out
}
