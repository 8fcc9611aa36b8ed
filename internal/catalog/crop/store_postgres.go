package crop

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/database/schema"
	"github.com/agrioindia/platform/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Crop, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, name, namehi, imageurl, season, sortorder, createdat
		FROM %s
		ORDER BY sortorder ASC, name ASC`,
		schema.CatalogCrop.Table,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_crops")
	}
	defer rows.Close()

	crops := []*Crop{}
	for rows.Next() {
		item := &Crop{}
		err := rows.Scan(
			&item.ID,
			&item.Slug,
			&item.Name,
			&item.NameHi,
			&item.ImageURL,
			&item.Season,
			&item.SortOrder,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_crop")
		}
		crops = append(crops, item)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_crops_rows")
	}

	return crops, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Crop, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, name, namehi, imageurl, season, sortorder, createdat
		FROM %s
		WHERE slug = $1`,
		schema.CatalogCrop.Table,
	)

	item := &Crop{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&item.ID,
		&item.Slug,
		&item.Name,
		&item.NameHi,
		&item.ImageURL,
		&item.Season,
		&item.SortOrder,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_crop_by_slug")
	}

	return item, nil
}
