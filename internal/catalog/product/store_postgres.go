// Copyright (c) 2026 Agrio India. All rights reserved.

package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/database/schema"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `
	p.id, p.slug, p.name, p.namehi, p.description, p.descriptionhi,
	p.categoryid, p.imageurl, p.packsizes, p.price, p.isbestseller,
	p.createdat, p.updatedat,
	c.id, c.slug, c.name, c.namehi, c.sortorder`

func scanProduct(row pgx.Row) (*Product, error) {
	item := &Product{Category: &Category{}, IsActive: true}
	err := row.Scan(
		&item.ID,
		&item.Slug,
		&item.Name,
		&item.NameHi,
		&item.Description,
		&item.DescriptionHi,
		&item.CategoryID,
		&item.ImageURL,
		&item.PackSizes,
		&item.Price,
		&item.IsBestSeller,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.Category.ID,
		&item.Category.Slug,
		&item.Category.Name,
		&item.Category.NameHi,
		&item.Category.SortOrder,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

/*
List returns active products matching the filter plus the unpaginated total.

Description: Search matches both the English and Hindi names case-insensitively.
Filters are assembled into a WHERE clause shared by the page query and the
COUNT query so the two can never disagree.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Product: One page of products
  - int: Total matching rows across all pages
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Product, int, error) {

	conditions := []string{"p.isactive = TRUE", "p.deletedat IS NULL"}
	arguments := []any{}

	if filter.CategorySlug != "" {
		arguments = append(arguments, filter.CategorySlug)
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", len(arguments)))
	}

	if filter.Search != "" {
		arguments = append(arguments, "%"+filter.Search+"%")
		position := len(arguments)
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.namehi ILIKE $%d)", position, position))
	}

	if filter.BestSellers {
		conditions = append(conditions, "p.isbestseller = TRUE")
	}

	whereClause := strings.Join(conditions, " AND ")
	fromClause := fmt.Sprintf(
		"FROM %s p JOIN %s c ON c.id = p.categoryid WHERE %s",
		schema.CatalogProduct.Table, schema.CatalogCategory.Table, whereClause,
	)

	// Total first, for pagination metadata
	var total int
	countQuery := "SELECT COUNT(*) " + fromClause
	if err := repository.pool.QueryRow(context, countQuery, arguments...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_count_failed: %w", err)
	}

	pageQuery := fmt.Sprintf(
		"SELECT %s %s ORDER BY p.isbestseller DESC, p.name ASC LIMIT $%d OFFSET $%d",
		productColumns, fromClause, len(arguments)+1, len(arguments)+2,
	)
	arguments = append(arguments, filter.Pagination.Limit, filter.Pagination.Offset())

	rows, err := repository.pool.Query(context, pageQuery, arguments...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_failed: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		item, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_product_repo_scan_failed: %w", err)
		}
		products = append(products, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_rows_failed: %w", err)
	}

	return products, total, nil
}

/*
GetBySlug returns the active product with the given slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Product: Hydrated entity including its category
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s p
		JOIN %s c ON c.id = p.categoryid
		WHERE p.slug = $1 AND p.isactive = TRUE AND p.deletedat IS NULL`,
		productColumns, schema.CatalogProduct.Table, schema.CatalogCategory.Table,
	)

	item, err := scanProduct(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, fmt.Errorf("postgres_product_repo_get_by_slug_failed: %w", err)
	}

	return item, nil
}

/*
ListCategories returns every category ordered for display.

Parameters:
  - context: context.Context

Returns:
  - []*Category: Categories in sort order
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListCategories(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, name, namehi, sortorder, createdat
		FROM %s
		ORDER BY sortorder ASC, name ASC`,
		schema.CatalogCategory.Table,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_product_repo_list_categories_failed: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Slug,
			&category.Name,
			&category.NameHi,
			&category.SortOrder,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_product_repo_categories_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_product_repo_categories_rows_failed: %w", err)
	}

	return categories, nil
}
