package database

import (
	"context"
	"database/sql"
	"fmt"

	"cams/internal/domain/attorney"
)

type PostgresAttorneyRepository struct {
	db *sql.DB
}

func NewPostgresAttorneyRepository(db *sql.DB) *PostgresAttorneyRepository {
	return &PostgresAttorneyRepository{db: db}
}

func (r *PostgresAttorneyRepository) List(ctx context.Context) ([]*attorney.Attorney, error) {
	query := `SELECT id, name, office FROM attorneys ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing attorneys: %w", err)
	}
	defer rows.Close()

	attorneys := make([]*attorney.Attorney, 0)
	for rows.Next() {
		a := &attorney.Attorney{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Office); err != nil {
			return nil, fmt.Errorf("error scanning attorney row: %w", err)
		}
		attorneys = append(attorneys, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attorney rows: %w", err)
	}
	return attorneys, nil
}
