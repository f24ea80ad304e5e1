package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/models"
)

func newTimetableRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableRepositoryReplaceWithinTx(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_entries")).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_entries")).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAllTx(ctx, tx))

	entries := []models.TimetableEntry{
		{Day: 0, Slot: 0, RoomID: "r1", FacultyID: "f1", SubjectID: "s1", BatchID: "b1"},
		{Day: 0, Slot: 1, RoomID: "r2", FacultyID: "f2", SubjectID: "s2", BatchID: "b1"},
	}
	require.NoError(t, repo.BulkInsertTx(ctx, tx, entries))
	require.NoError(t, tx.Commit())

	assert.NotEmpty(t, entries[0].ID)
	assert.NotEmpty(t, entries[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryBulkInsertTxEmpty(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.BulkInsertTx(ctx, tx, nil))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListDetailed(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "day", "slot", "room_id", "faculty_id", "subject_id", "batch_id", "created_at", "updated_at",
		"room_name", "faculty_name", "subject_name", "subject_code", "batch_name",
	}).AddRow("e1", 0, 0, "r1", "f1", "s1", "b1", now, now, "Room 101", "Dr. Rao", "Algorithms", "CS301", "CSE-A")

	mock.ExpectQuery("SELECT t.id, t.day, t.slot").
		WithArgs("f1").
		WillReturnRows(rows)

	entries, err := repo.ListDetailed(context.Background(), models.TimetableFilter{FacultyID: "f1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Room 101", entries[0].RoomName)
	assert.Equal(t, "CS301", entries[0].SubjectCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListDetailedByDay(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	day := 2
	rows := sqlmock.NewRows([]string{
		"id", "day", "slot", "room_id", "faculty_id", "subject_id", "batch_id", "created_at", "updated_at",
		"room_name", "faculty_name", "subject_name", "subject_code", "batch_name",
	})
	mock.ExpectQuery("SELECT t.id, t.day, t.slot").
		WithArgs("f1", day).
		WillReturnRows(rows)

	entries, err := repo.ListDetailed(context.Background(), models.TimetableFilter{FacultyID: "f1", Day: &day})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryCountAll(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM timetable_entries")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	total, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
