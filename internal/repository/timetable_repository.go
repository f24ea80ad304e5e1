package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadsync/timetable-api/internal/models"
)

// TimetableRepository provides persistence for finalized timetable entries.
// Writes always happen inside a caller-owned transaction so the old
// timetable and the new one never coexist.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// BeginTx starts a transaction for a replace operation.
func (r *TimetableRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// DeleteAllTx removes every timetable entry within the given transaction.
func (r *TimetableRepository) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM timetable_entries`); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}
	return nil
}

// BulkInsertTx inserts all entries within the given transaction. IDs and
// timestamps are assigned here.
func (r *TimetableRepository) BulkInsertTx(ctx context.Context, tx *sqlx.Tx, entries []models.TimetableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		entries[i].CreatedAt = now
		entries[i].UpdatedAt = now
	}
	const query = `INSERT INTO timetable_entries (id, day, slot, room_id, faculty_id, subject_id, batch_id, created_at, updated_at)
		VALUES (:id, :day, :slot, :room_id, :faculty_id, :subject_id, :batch_id, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, entries); err != nil {
		return fmt.Errorf("insert timetable entries: %w", err)
	}
	return nil
}

// ListDetailed returns timetable entries joined with display names, ordered
// by day then slot. The filter narrows to one faculty member, one batch, or
// one day; empty filters return the whole timetable.
func (r *TimetableRepository) ListDetailed(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error) {
	query := `SELECT t.id, t.day, t.slot, t.room_id, t.faculty_id, t.subject_id, t.batch_id, t.created_at, t.updated_at,
			r.name AS room_name, f.full_name AS faculty_name, s.name AS subject_name, s.code AS subject_code, b.name AS batch_name
		FROM timetable_entries t
		JOIN rooms r ON r.id = t.room_id
		JOIN faculty f ON f.id = t.faculty_id
		JOIN subjects s ON s.id = t.subject_id
		JOIN batches b ON b.id = t.batch_id
		WHERE 1=1`
	var args []interface{}

	if filter.FacultyID != "" {
		query += fmt.Sprintf(" AND t.faculty_id = $%d", len(args)+1)
		args = append(args, filter.FacultyID)
	}
	if filter.BatchID != "" {
		query += fmt.Sprintf(" AND t.batch_id = $%d", len(args)+1)
		args = append(args, filter.BatchID)
	}
	if filter.Day != nil {
		query += fmt.Sprintf(" AND t.day = $%d", len(args)+1)
		args = append(args, *filter.Day)
	}

	query += " ORDER BY t.day ASC, t.slot ASC, b.name ASC"

	var entries []models.TimetableEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// CountAll returns the number of persisted timetable entries.
func (r *TimetableRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM timetable_entries`); err != nil {
		return 0, fmt.Errorf("count timetable entries: %w", err)
	}
	return total, nil
}
