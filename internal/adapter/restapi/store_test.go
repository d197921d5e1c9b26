package restapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/restapi"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-anon-key"

type recorded struct {
	method string
	path   string
	query  map[string][]string
	header http.Header
	body   []byte
}

// newBackend starts a fake table backend answering every request with
// status and body. The returned func yields the requests in arrival order.
func newBackend(
	t *testing.T, status int, body string,
) (restapi.Store, func() recorded) {
	t.Helper()

	reqs := make(chan recorded, 16)
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			reqs <- recorded{
				method: r.Method,
				path:   r.URL.Path,
				query:  r.URL.Query(),
				header: r.Header.Clone(),
				body:   b,
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		},
	))
	t.Cleanup(srv.Close)

	cl, err := restapi.NewClient(srv.URL, testAPIKey, time.Second)
	require.NoError(t, err)
	next := func() recorded {
		select {
		case r := <-reqs:
			return r
		case <-time.After(time.Second):
			t.Fatal("no request reached the backend")
			return recorded{}
		}
	}
	return restapi.NewStore(cl), next
}

func TestNewClient(t *testing.T) {
	_, err := restapi.NewClient("not a url", testAPIKey, 0)
	assert.Error(t, err)

	_, err = restapi.NewClient("https://project.example.co", "", 0)
	assert.Error(t, err)

	_, err = restapi.NewClient("https://project.example.co", testAPIKey, 0)
	assert.NoError(t, err)
}

func TestStoreSelectProducts(t *testing.T) {
	st, last := newBackend(t, http.StatusOK, `[
		{"id":"7","title":"Lamp","price":19.5,"rating":4.1,"reviewCount":3,
		 "imageUrl":"https://img.example.com/7.png","category":"Home",
		 "description":"d","brand":"b","features":["warm","dim"],
		 "isPrime":true,"stockStatus":"In Stock","buyNowUrl":null,
		 "created_at":"2024-01-02T00:00:00Z"},
		{"id":"6","title":"Desk","price":120,"rating":0,"reviewCount":0,
		 "imageUrl":"","category":"Home","description":null,"brand":"",
		 "features":null,"isPrime":false,"stockStatus":"",
		 "buyNowUrl":"https://shop.example.com/desk"}
	]`)

	ps, err := st.SelectProducts(t.Context())
	require.NoError(t, err)
	rec := last()

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/rest/v1/products", rec.path)
	assert.Equal(t, []string{"*"}, rec.query["select"])
	assert.Equal(t, []string{"created_at.desc"}, rec.query["order"])
	assert.Equal(t, testAPIKey, rec.header.Get("apikey"))
	assert.Equal(t, "Bearer "+testAPIKey, rec.header.Get("Authorization"))

	require.Len(t, ps, 2)
	assert.Equal(t, domain.Product{
		ID:          "7",
		Title:       "Lamp",
		Price:       19.5,
		Rating:      4.1,
		ReviewCount: 3,
		ImageURL:    "https://img.example.com/7.png",
		Category:    "Home",
		Description: "d",
		Brand:       "b",
		Features:    []string{"warm", "dim"},
		IsPrime:     true,
		StockStatus: "In Stock",
	}, ps[0])
	assert.Equal(t, "https://shop.example.com/desk", ps[1].BuyNowURL)
	assert.Empty(t, ps[1].Description)
}

func TestStoreSelectCategories(t *testing.T) {
	st, last := newBackend(t, http.StatusOK,
		`[{"id":"cat_1","name":"Books","imageUrl":"https://img.example.com/b.png"}]`)

	cs, err := st.SelectCategories(t.Context())
	require.NoError(t, err)
	rec := last()
	assert.Equal(t, "/rest/v1/categories", rec.path)
	assert.Equal(t, []string{"created_at.asc"}, rec.query["order"])
	assert.Equal(t, []domain.Category{
		{ID: "cat_1", Name: "Books", ImageURL: "https://img.example.com/b.png"},
	}, cs)
}

func TestStoreProductMutations(t *testing.T) {
	p := domain.Product{
		ID:        "42",
		Title:     "X",
		Price:     9.99,
		BuyNowURL: "https://shop.example.com/x",
	}

	t.Run("Insert", func(t *testing.T) {
		st, last := newBackend(t, http.StatusCreated, "")
		require.NoError(t, st.InsertProduct(t.Context(), p))
		rec := last()

		assert.Equal(t, http.MethodPost, rec.method)
		assert.Equal(t, "/rest/v1/products", rec.path)
		assert.Equal(t, "return=minimal", rec.header.Get("Prefer"))
		assert.Equal(t, "application/json", rec.header.Get("Content-Type"))

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.body, &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "42", rows[0]["id"])
		assert.Equal(t, "X", rows[0]["title"])
		assert.Equal(t, 9.99, rows[0]["price"])
		assert.Equal(t, "https://shop.example.com/x", rows[0]["buyNowUrl"])
		assert.Equal(t, []any{}, rows[0]["features"])
		assert.NotContains(t, rows[0], "created_at")
	})

	t.Run("Update", func(t *testing.T) {
		st, last := newBackend(t, http.StatusNoContent, "")
		noOverride := p
		noOverride.BuyNowURL = ""
		require.NoError(t, st.UpdateProduct(t.Context(), noOverride))
		rec := last()

		assert.Equal(t, http.MethodPatch, rec.method)
		assert.Equal(t, []string{"eq.42"}, rec.query["id"])

		var row map[string]any
		require.NoError(t, json.Unmarshal(rec.body, &row))
		assert.Nil(t, row["buyNowUrl"])
		assert.Contains(t, row, "buyNowUrl")
	})

	t.Run("Delete", func(t *testing.T) {
		st, last := newBackend(t, http.StatusNoContent, "")
		require.NoError(t, st.DeleteProduct(t.Context(), "42"))
		rec := last()

		assert.Equal(t, http.MethodDelete, rec.method)
		assert.Equal(t, []string{"eq.42"}, rec.query["id"])
		assert.Empty(t, rec.body)
	})

	t.Run("BackendError", func(t *testing.T) {
		st, _ := newBackend(t, http.StatusConflict, `{
			"code":"23505",
			"message":"duplicate key value violates unique constraint \"products_pkey\"",
			"details":"Key (id)=(42) already exists.","hint":null}`)

		err := st.InsertProduct(t.Context(), p)
		require.Error(t, err)

		var apiErr *restapi.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.Status)
		assert.Equal(t, "23505", apiErr.Code)
		assert.Equal(t,
			`duplicate key value violates unique constraint "products_pkey"`,
			apiErr.Error())
	})

	t.Run("PlainTextError", func(t *testing.T) {
		st, _ := newBackend(t, http.StatusBadGateway, "upstream down")

		err := st.DeleteProduct(t.Context(), "42")
		var apiErr *restapi.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "upstream down", apiErr.Message)
	})
}

func TestStoreCategoryMutations(t *testing.T) {
	c := domain.Category{ID: "cat_9", Name: "Garden"}

	st, last := newBackend(t, http.StatusCreated, "")
	require.NoError(t, st.InsertCategory(t.Context(), c))
	assert.Equal(t, "/rest/v1/categories", last().path)

	require.NoError(t, st.UpdateCategory(t.Context(), c))
	assert.Equal(t, []string{"eq.cat_9"}, last().query["id"])

	require.NoError(t, st.DeleteCategory(t.Context(), c.ID))
	assert.Equal(t, http.MethodDelete, last().method)
}

func TestStoreAppConfig(t *testing.T) {
	t.Run("Read", func(t *testing.T) {
		st, last := newBackend(t, http.StatusOK, `{"id":1,
			"logoUrl":"https://cdn.example.com/logo.png",
			"heroImageUrl":"https://cdn.example.com/hero.png",
			"globalBuyNowUrl":"https://shop.example.com"}`)

		cfg, err := st.ReadAppConfig(t.Context())
		require.NoError(t, err)
		rec := last()
		assert.Equal(t, domain.AppConfig{
			LogoURL:         "https://cdn.example.com/logo.png",
			HeroImageURL:    "https://cdn.example.com/hero.png",
			GlobalBuyNowURL: "https://shop.example.com",
		}, cfg)
		assert.Equal(t, "/rest/v1/app_config", rec.path)
		assert.Equal(t, []string{"eq.1"}, rec.query["id"])
		assert.Equal(t, "application/vnd.pgrst.object+json", rec.header.Get("Accept"))
	})

	t.Run("NoRow", func(t *testing.T) {
		st, _ := newBackend(t, http.StatusNotAcceptable, `{"code":"PGRST116",
			"details":"The result contains 0 rows",
			"hint":null,
			"message":"JSON object requested, multiple (or no) rows returned"}`)

		_, err := st.ReadAppConfig(t.Context())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("OtherError", func(t *testing.T) {
		st, _ := newBackend(t, http.StatusUnauthorized,
			`{"code":"PGRST301","message":"JWT expired"}`)

		_, err := st.ReadAppConfig(t.Context())
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "JWT expired")
	})

	t.Run("Upsert", func(t *testing.T) {
		st, last := newBackend(t, http.StatusCreated, "")
		require.NoError(t, st.UpsertAppConfig(t.Context(), domain.DefaultAppConfig()))
		rec := last()

		assert.Equal(t, http.MethodPost, rec.method)
		assert.Equal(t,
			"resolution=merge-duplicates,return=minimal",
			rec.header.Get("Prefer"))

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.body, &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, float64(1), rows[0]["id"])
		assert.Equal(t, domain.DefaultAppConfig().LogoURL, rows[0]["logoUrl"])
	})
}

func TestStoreTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		},
	))
	t.Cleanup(srv.Close)

	cl, err := restapi.NewClient(srv.URL, testAPIKey, 20*time.Millisecond)
	require.NoError(t, err)

	err = restapi.NewStore(cl).DeleteProduct(t.Context(), "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.OutcomeUnknown, domain.OutcomeOf(err))
}
