// Package postgres implements the repository ports on PostgreSQL through
// database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

const uniqueViolationCode = pq.ErrorCode("23505")

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return db, nil
}

// asUniqueViolation recognises a unique-constraint error and names the
// column from the constraint, e.g. users_email_key -> email.
func asUniqueViolation(err error, table string) (*ports.UniqueViolation, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolationCode {
		return nil, false
	}
	field := strings.TrimPrefix(pqErr.Constraint, table+"_")
	field = strings.TrimSuffix(field, "_key")
	return &ports.UniqueViolation{Field: field}, true
}
