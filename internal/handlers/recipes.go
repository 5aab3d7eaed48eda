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

// RecipeRepository is the recipe storage the handlers need.
type RecipeRepository interface {
	List(ctx context.Context) ([]models.RecipeListing, error)
	Create(ctx context.Context, in models.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, id int64) error
}

// Recipes groups the /api/recipes handlers.
type Recipes struct {
	store RecipeRepository
	cache *cache.ListCache
}

// NewRecipes creates the recipe handlers. listCache may be nil.
func NewRecipes(store RecipeRepository, listCache *cache.ListCache) *Recipes {
	return &Recipes{store: store, cache: listCache}
}

// List handles GET /api/recipes.
func (h *Recipes) List(w http.ResponseWriter, r *http.Request) {
	cached, gen, ok := h.cache.Get(r.Context(), cache.Recipes)
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
	h.cache.Set(r.Context(), cache.Recipes, gen, out)
	writeRawJSON(w, http.StatusOK, out)
}

// Create handles POST /api/recipes.
func (h *Recipes) Create(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	in, err := parseRecipeInput(b)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recipe, err := h.store.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, recipe)
}

// Update handles PUT /api/recipes/{id}. The body replaces every field.
func (h *Recipes) Update(w http.ResponseWriter, r *http.Request) {
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
	in, err := parseRecipeInput(b)
	if err != nil {
		respondError(w, r, err)
		return
	}

	recipe, err := h.store.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, recipe)
}

// Delete handles DELETE /api/recipes/{id}.
func (h *Recipes) Delete(w http.ResponseWriter, r *http.Request) {
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
