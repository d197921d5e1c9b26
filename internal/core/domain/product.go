package domain

import "slices"

type Product struct {
	ID          string  `validate:"required"`
	Title       string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Rating      float64 `validate:"gte=0,lte=5"`
	ReviewCount int     `validate:"gte=0"`
	ImageURL    string
	Category    string
	Description string
	Brand       string
	Features    []string
	IsPrime     bool
	StockStatus string
	BuyNowURL   string
}

// BuyNowTarget returns where the "Buy Now" action leads: the product's own
// override when set, otherwise the site-wide URL from cfg.
func (p Product) BuyNowTarget(cfg AppConfig) string {
	if p.BuyNowURL != "" {
		return p.BuyNowURL
	}
	return cfg.GlobalBuyNowURL
}

func (p Product) Clone() Product {
	p.Features = slices.Clone(p.Features)
	return p
}

type Category struct {
	ID       string `validate:"required"`
	Name     string `validate:"required"`
	ImageURL string
}

// AppConfig is the singleton site settings record. Links are stored as
// entered, relative paths included.
type AppConfig struct {
	LogoURL         string
	HeroImageURL    string
	GlobalBuyNowURL string
}

// AppConfigRowID is the fixed key of the singleton config row.
const AppConfigRowID = 1

func DefaultAppConfig() AppConfig {
	return AppConfig{
		LogoURL:         "https://pngimg.com/uploads/amazon/amazon_PNG11.png",
		HeroImageURL:    "https://picsum.photos/id/1015/1920/800",
		GlobalBuyNowURL: "https://www.amazon.com",
	}
}

// Catalog is a point-in-time copy of everything the storefront shows.
type Catalog struct {
	Products   []Product
	Categories []Category
	Config     AppConfig
	Degraded   bool
}
