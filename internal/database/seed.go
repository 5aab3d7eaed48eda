package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type seedRecipe struct {
	title, ingredients, instructions string
	rating                           int
	category                         string
}

var seedCategories = []string{"Breakfast", "Soups", "Desserts"}

var seedRecipes = []seedRecipe{
	{
		title:        "Scrambled eggs",
		ingredients:  "3 eggs, butter, salt, chives",
		instructions: "Melt butter on low heat, stir in beaten eggs until just set, season.",
		rating:       4,
		category:     "Breakfast",
	},
	{
		title:        "Tomato soup",
		ingredients:  "1 kg tomatoes, 1 onion, 2 garlic cloves, stock, olive oil",
		instructions: "Sweat onion and garlic, add tomatoes and stock, simmer 20 minutes, blend.",
		rating:       5,
		category:     "Soups",
	},
	{
		title:        "Pancakes",
		ingredients:  "200 g flour, 2 eggs, 300 ml milk, pinch of salt",
		instructions: "Whisk into a smooth batter, rest 15 minutes, fry thin pancakes.",
		rating:       3,
	},
}

// Seed populates an empty database with sample categories and recipes for
// development. It does nothing when either table already has rows.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx,
		"SELECT (SELECT COUNT(*) FROM categories) + (SELECT COUNT(*) FROM recipes)",
	).Scan(&count); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	ids := make(map[string]int64, len(seedCategories))
	for _, name := range seedCategories {
		var id int64
		if err := tx.QueryRowContext(ctx,
			"INSERT INTO categories (name) VALUES ($1) RETURNING id", name,
		).Scan(&id); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		ids[name] = id
	}

	for _, r := range seedRecipes {
		var categoryID *int64
		if id, ok := ids[r.category]; ok {
			categoryID = &id
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (title, ingredients, instructions, rating, category_id)
			VALUES ($1, $2, $3, $4, $5)
		`, r.title, r.ingredients, r.instructions, r.rating, categoryID); err != nil {
			return fmt.Errorf("seed recipe %q: %w", r.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample data",
		"categories", len(seedCategories),
		"recipes", len(seedRecipes),
	)
	return nil
}
