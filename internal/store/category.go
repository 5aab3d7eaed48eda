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

// Client-facing messages for category failures.
const (
	msgCategoryCreate = "cannot create category (maybe duplicate?)"
	msgCategoryRename = "cannot rename category (maybe duplicate?)"
	msgNotFound       = "not found"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db DBTX
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db DBTX) *CategoryStore {
	return &CategoryStore{db: db}
}

// scanCategory scans a row into a Category struct.
func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories, newest first.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create inserts a new category and returns it. Uniqueness is left to the
// store: any insert failure is reported as a Conflict.
func (s *CategoryStore) Create(ctx context.Context, name string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name)
	c, err := scanCategory(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.Conflict, msgCategoryCreate, err)
	}
	return c, nil
}

// Rename changes a category's name and returns the updated row.
func (s *CategoryStore) Rename(ctx context.Context, id int64, name string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2 RETURNING id, name`, name, id)
	c, err := scanCategory(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, apperr.New(apperr.NotFound, msgNotFound)
	case pgCode(err) == uniqueViolation:
		return nil, apperr.Wrap(apperr.Conflict, msgCategoryRename, err)
	case err != nil:
		return nil, fmt.Errorf("rename category: %w", err)
	}
	return c, nil
}

// Delete removes a category by ID. Recipes referencing it keep existing
// with their category cleared (ON DELETE SET NULL).
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res)
}
