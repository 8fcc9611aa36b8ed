// Copyright (c) 2026 Agrio India. All rights reserved.

package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/database/schema"
	"github.com/agrioindia/platform/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, message *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, mobile, email, subject, message, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.UserContactMessage.Table,
	)

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		message.ID,
		message.Name,
		message.Mobile,
		message.Email,
		message.Subject,
		message.Message,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_contact_repo_create_failed: %w", err)
	}

	return nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Message, int, error) {
	total, err := repository.Count(context)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, mobile, email, subject, message, createdat
		FROM %s
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`,
		schema.UserContactMessage.Table,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_list_failed: %w", err)
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		message := &Message{}
		err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Mobile,
			&message.Email,
			&message.Subject,
			&message.Message,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_contact_repo_scan_failed: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_rows_failed: %w", err)
	}

	return messages, total, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UserContactMessage.Table)

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_contact_repo_count_failed: %w", err)
	}

	return total, nil
}
