package httphandler

import (
	"errors"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/catalog (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)

type CatalogHandler struct {
	reader port.CatalogReader
}

func RegisterCatalog(mux *http.ServeMux, reader port.CatalogReader) {
	h := CatalogHandler{reader}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogFromDomain(h.reader.Snapshot()))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.reader.Product(r.PathValue("id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read product")
		return
	}

	cfg := h.reader.Snapshot().Config
	writeJSON(w, http.StatusOK, ProductDetail{
		Product:      productFromDomain(p),
		BuyNowTarget: p.BuyNowTarget(cfg),
	})
}
