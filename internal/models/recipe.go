// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Rating bounds, inclusive.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Recipe is a stored recipe. CategoryID is nil when the recipe has no
// category, including after its category was deleted.
type Recipe struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Rating       int    `json:"rating"`
	CategoryID   *int64 `json:"category_id"`
}

// RecipeListing is a Recipe as returned by the list query, with the
// category name resolved by a left join. CategoryName is nil when the
// recipe has no category.
type RecipeListing struct {
	Recipe
	CategoryName *string `json:"category_name"`
}

// InCategory reports whether the recipe references the given category.
func (r Recipe) InCategory(categoryID int64) bool {
	return r.CategoryID != nil && *r.CategoryID == categoryID
}

// RecipeInput holds the validated mutable fields of a recipe, used for
// both create and full-replace update.
type RecipeInput struct {
	Title        string
	Ingredients  string
	Instructions string
	Rating       int
	CategoryID   *int64
}
