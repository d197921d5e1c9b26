package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProducts(t *testing.T) {
	ps := SeedProducts()
	require.Len(t, ps, 6)

	seen := make(map[string]bool)
	for _, p := range ps {
		assert.NoError(t, Validate(p), p.ID)
		assert.False(t, seen[p.ID], "duplicate id %q", p.ID)
		seen[p.ID] = true
	}

	ps[0].Features[0] = "changed"
	assert.NotEqual(t, "changed", SeedProducts()[0].Features[0])
}

func TestProductBuyNowTarget(t *testing.T) {
	cfg := DefaultAppConfig()

	p := Product{ID: "1"}
	assert.Equal(t, cfg.GlobalBuyNowURL, p.BuyNowTarget(cfg))

	p.BuyNowURL = "https://shop.example.com/1"
	assert.Equal(t, "https://shop.example.com/1", p.BuyNowTarget(cfg))
}

func TestValidate(t *testing.T) {
	t.Run("Product", func(t *testing.T) {
		valid := Product{ID: "1", Title: "X", Price: 9.99, Rating: 4.5}
		require.NoError(t, Validate(valid))

		tests := []struct {
			name string
			edit func(*Product)
		}{
			{"NoID", func(p *Product) { p.ID = "" }},
			{"NoTitle", func(p *Product) { p.Title = "" }},
			{"NegativePrice", func(p *Product) { p.Price = -1 }},
			{"RatingAboveFive", func(p *Product) { p.Rating = 5.1 }},
			{"NegativeReviews", func(p *Product) { p.ReviewCount = -3 }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := valid
				tt.edit(&p)
				assert.ErrorIs(t, Validate(p), ErrInvalid)
			})
		}
	})

	t.Run("FreeFormLinks", func(t *testing.T) {
		links := []string{"/images/x.png", "x.jpg", "www.amazon.com/dp/B0"}
		for _, link := range links {
			p := Product{ID: "7", Title: "X", ImageURL: link, BuyNowURL: link}
			assert.NoError(t, Validate(p), link)
			assert.NoError(t, Validate(Category{ID: "cat_1", Name: "Y", ImageURL: link}), link)
		}
	})

	t.Run("Category", func(t *testing.T) {
		assert.NoError(t, Validate(Category{ID: "cat_1", Name: "Books"}))
		assert.ErrorIs(t, Validate(Category{ID: "cat_1"}), ErrInvalid)
	})

	t.Run("AppConfig", func(t *testing.T) {
		assert.NoError(t, Validate(DefaultAppConfig()))
		assert.NoError(t, Validate(AppConfig{}))
		assert.NoError(t, Validate(AppConfig{LogoURL: "/static/logo.png"}))
	})
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeApplied, OutcomeOf(nil))
	assert.Equal(t, OutcomeFailed, OutcomeOf(errors.New("boom")))
	assert.Equal(t, OutcomeUnknown, OutcomeOf(
		fmt.Errorf("op: %w", context.DeadlineExceeded),
	))
	assert.Equal(t, OutcomeUnknown, OutcomeOf(context.Canceled))

	assert.Equal(t, "applied", OutcomeApplied.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", OutcomeUnknown.String())
}
