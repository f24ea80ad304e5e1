package repository

import (
	"database/sql"
	"fmt"
)

// requireRowAffected converts a zero-row mutation into sql.ErrNoRows so
// services can map it onto a NOT_FOUND response.
func requireRowAffected(result sql.Result, entity string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", entity, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
