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

func newFacultyRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestFacultyRepositoryListProfiles(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	now := time.Now()
	facultyRows := sqlmock.NewRows([]string{"id", "full_name", "email", "max_classes_per_day", "created_at", "updated_at"}).
		AddRow("f1", "Dr. Rao", "rao@example.edu", 4, now, now).
		AddRow("f2", "Dr. Iyer", "iyer@example.edu", 5, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, email, max_classes_per_day, created_at, updated_at FROM faculty ORDER BY created_at ASC, id ASC")).
		WillReturnRows(facultyRows)

	qualRows := sqlmock.NewRows([]string{"faculty_id", "subject_id"}).
		AddRow("f1", "s1").
		AddRow("f1", "s2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT faculty_id, subject_id FROM faculty_subjects")).
		WillReturnRows(qualRows)

	unavailRows := sqlmock.NewRows([]string{"faculty_id", "day", "slot"}).
		AddRow("f2", 0, 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT faculty_id, day, slot FROM faculty_unavailability")).
		WillReturnRows(unavailRows)

	profiles, err := repo.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "f1", profiles[0].ID)
	assert.Equal(t, []string{"s1", "s2"}, profiles[0].QualifiedSubjectIDs)
	assert.Empty(t, profiles[0].Unavailable)

	assert.Equal(t, "f2", profiles[1].ID)
	assert.Empty(t, profiles[1].QualifiedSubjectIDs)
	assert.Equal(t, []models.SlotRef{{Day: 0, Slot: 3}}, profiles[1].Unavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryReplaceQualifications(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_subjects WHERE faculty_id = $1")).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty_subjects (faculty_id, subject_id) VALUES ($1, $2)")).
		WithArgs("f1", "s1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty_subjects (faculty_id, subject_id) VALUES ($1, $2)")).
		WithArgs("f1", "s3").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.ReplaceQualifications(context.Background(), "f1", []string{"s1", "s3"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newFacultyRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty WHERE id = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
