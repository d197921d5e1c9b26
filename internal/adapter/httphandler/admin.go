package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

// Every route below requires the admin session flag (401 Unauthorized).
//
// POST v1/products JSON Product (201 Created)
// PUT v1/products/{id} JSON Product (200 OK)
// DELETE v1/products/{id} (200 OK)
// POST v1/categories JSON Category (201 Created)
// PUT v1/categories/{id} JSON Category (200 OK)
// DELETE v1/categories/{id} (200 OK)
// PUT v1/config JSON AppConfig (200 OK)
//
// Failures answer with a MutationResult: 400 invalid input, 502 rejected by
// the store, 503 store not configured, 504 outcome unknown.

type AdminHandler struct {
	products   port.ProductsManager
	categories port.CategoriesManager
	config     port.AppConfigSetter
}

func RegisterAdmin(
	mux *http.ServeMux,
	sessions AdminSessions,
	products port.ProductsManager,
	categories port.CategoriesManager,
	config port.AppConfigSetter,
) {
	h := AdminHandler{products, categories, config}
	handle := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, sessions.RequireAdmin(hf))
	}

	handle("POST /v1/products", h.PostProduct)
	handle("PUT /v1/products/{id}", h.PutProduct)
	handle("DELETE /v1/products/{id}", h.DeleteProduct)
	handle("POST /v1/categories", h.PostCategory)
	handle("PUT /v1/categories/{id}", h.PutCategory)
	handle("DELETE /v1/categories/{id}", h.DeleteCategory)
	handle("PUT /v1/config", h.PutConfig)
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"
	log := slog.With("op", op)

	var p Product
	if err := decodeBody(r, &p); err != nil {
		writeBadBody(w, err)
		return
	}

	created, err := h.products.CreateProduct(r.Context(), p.toDomain())
	logMutation(log, err, "id", created.ID)
	dto := productFromDomain(created)
	writeMutation(w, err, http.StatusCreated, MutationResult{Product: &dto})
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutProduct"
	log := slog.With("op", op)

	var p Product
	if err := decodeBody(r, &p); err != nil {
		writeBadBody(w, err)
		return
	}
	p.ID = r.PathValue("id")

	err := h.products.UpdateProduct(r.Context(), p.toDomain())
	logMutation(log, err, "id", p.ID)
	writeMutation(w, err, http.StatusOK, MutationResult{Product: &p})
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	err := h.products.DeleteProduct(r.Context(), id)
	logMutation(log, err, "id", id)
	writeMutation(w, err, http.StatusOK, MutationResult{})
}

func (h AdminHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostCategory"
	log := slog.With("op", op)

	var c Category
	if err := decodeBody(r, &c); err != nil {
		writeBadBody(w, err)
		return
	}

	created, err := h.categories.CreateCategory(r.Context(), c.toDomain())
	logMutation(log, err, "id", created.ID)
	dto := categoryFromDomain(created)
	writeMutation(w, err, http.StatusCreated, MutationResult{Category: &dto})
}

func (h AdminHandler) PutCategory(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutCategory"
	log := slog.With("op", op)

	var c Category
	if err := decodeBody(r, &c); err != nil {
		writeBadBody(w, err)
		return
	}
	c.ID = r.PathValue("id")

	err := h.categories.UpdateCategory(r.Context(), c.toDomain())
	logMutation(log, err, "id", c.ID)
	writeMutation(w, err, http.StatusOK, MutationResult{Category: &c})
}

func (h AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteCategory"
	log := slog.With("op", op)

	id := r.PathValue("id")
	err := h.categories.DeleteCategory(r.Context(), id)
	logMutation(log, err, "id", id)
	writeMutation(w, err, http.StatusOK, MutationResult{})
}

func (h AdminHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutConfig"
	log := slog.With("op", op)

	var c AppConfig
	if err := decodeBody(r, &c); err != nil {
		writeBadBody(w, err)
		return
	}

	err := h.config.SetConfig(r.Context(), c.toDomain())
	logMutation(log, err)
	writeMutation(w, err, http.StatusOK, MutationResult{Config: &c})
}

func logMutation(log *slog.Logger, err error, args ...any) {
	if err != nil {
		log.Warn("mutation not applied", append(args, "err", err)...)
		return
	}
	log.Info("mutation applied", args...)
}
