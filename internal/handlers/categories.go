// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/cache"
	"recipebox/internal/models"
)

// CategoryRepository is the category storage the handlers need.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Rename(ctx context.Context, id int64, name string) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

// Categories groups the /api/categories handlers.
type Categories struct {
	store CategoryRepository
	cache *cache.ListCache
}

// NewCategories creates the category handlers. listCache may be nil.
func NewCategories(store CategoryRepository, listCache *cache.ListCache) *Categories {
	return &Categories{store: store, cache: listCache}
}

// List handles GET /api/categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	cached, gen, ok := h.cache.Get(r.Context(), cache.Categories)
	if ok {
		writeRawJSON(w, http.StatusOK, cached)
		return
	}

	items, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out, err := json.Marshal(items)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.cache.Set(r.Context(), cache.Categories, gen, out)
	writeRawJSON(w, http.StatusOK, out)
}

// Create handles POST /api/categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	in, err := parseCategoryInput(b)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c, err := h.store.Create(r.Context(), in.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/categories/{id}.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	b, err := decodeBody(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	in, err := parseCategoryInput(b)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c, err := h.store.Rename(r.Context(), id, in.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/categories/{id}.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
