// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipebox/internal/apperr"
	"recipebox/internal/models"
)

const msgCategoryMissing = "category does not exist"

// RecipeStore manages recipes in the database.
type RecipeStore struct {
	db DBTX
}

// NewRecipeStore returns a new RecipeStore.
func NewRecipeStore(db DBTX) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeColumns = `id, title, ingredients, instructions, rating, category_id`

// scanRecipe scans a row into a Recipe struct.
func scanRecipe(row scanner) (*models.Recipe, error) {
	var r models.Recipe
	var categoryID sql.NullInt64
	if err := row.Scan(&r.ID, &r.Title, &r.Ingredients, &r.Instructions, &r.Rating, &categoryID); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		r.CategoryID = &categoryID.Int64
	}
	return &r, nil
}

// List returns all recipes, newest first, with category names resolved.
func (s *RecipeStore) List(ctx context.Context) ([]models.RecipeListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.title, r.ingredients, r.instructions, r.rating, r.category_id,
		       c.name AS category_name
		FROM recipes r
		LEFT JOIN categories c ON c.id = r.category_id
		ORDER BY r.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	items := []models.RecipeListing{}
	for rows.Next() {
		var l models.RecipeListing
		var categoryID sql.NullInt64
		var categoryName sql.NullString
		err := rows.Scan(
			&l.ID, &l.Title, &l.Ingredients, &l.Instructions, &l.Rating,
			&categoryID, &categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if categoryID.Valid {
			l.CategoryID = &categoryID.Int64
		}
		if categoryName.Valid {
			l.CategoryName = &categoryName.String
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Create inserts a recipe and returns it without the category name.
func (s *RecipeStore) Create(ctx context.Context, in models.RecipeInput) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO recipes (title, ingredients, instructions, rating, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+recipeColumns,
		in.Title, in.Ingredients, in.Instructions, in.Rating, in.CategoryID,
	)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, recipeWriteError("create recipe", err)
	}
	return r, nil
}

// Update replaces every mutable field of the recipe with the given ID.
func (s *RecipeStore) Update(ctx context.Context, id int64, in models.RecipeInput) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE recipes SET
			title = $1, ingredients = $2, instructions = $3, rating = $4, category_id = $5
		WHERE id = $6
		RETURNING `+recipeColumns,
		in.Title, in.Ingredients, in.Instructions, in.Rating, in.CategoryID, id,
	)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, msgNotFound)
	}
	if err != nil {
		return nil, recipeWriteError("update recipe", err)
	}
	return r, nil
}

// Delete removes a recipe by ID.
func (s *RecipeStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return requireAffected(res)
}

// recipeWriteError translates a dangling category reference into a
// ForeignKeyViolation and wraps anything else.
func recipeWriteError(op string, err error) error {
	if pgCode(err) == foreignKeyViolation {
		return apperr.Wrap(apperr.ForeignKeyViolation, msgCategoryMissing, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
