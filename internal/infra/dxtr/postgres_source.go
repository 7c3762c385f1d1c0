// Package dxtr implements the boundary to the legacy transaction history.
// The history originates on an external mainframe; this service reads a
// replicated case_transactions table and never writes it.
package dxtr

import (
	"context"
	"database/sql"
	"fmt"

	"cams/internal/domain/legacy"
)

type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// ListTransactions returns the case's transaction rows in replication order.
// Downstream aggregation relies on this order being stable for tie-breaking.
func (s *PostgresSource) ListTransactions(ctx context.Context, caseID string) ([]legacy.TransactionRecord, error) {
	query := `SELECT tx_code, tx_record FROM case_transactions WHERE case_id = $1 ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions for case %s: %w", caseID, err)
	}
	defer rows.Close()

	records := make([]legacy.TransactionRecord, 0)
	for rows.Next() {
		rec := legacy.TransactionRecord{CaseID: caseID}
		if err := rows.Scan(&rec.Code, &rec.RawText); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return records, nil
}
