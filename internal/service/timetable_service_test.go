package service

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	"github.com/acadsync/timetable-api/internal/scheduling"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

type stubRoomRepo struct {
	rooms []models.Room
	err   error
}

func (s stubRoomRepo) ListAll(ctx context.Context) ([]models.Room, error) {
	return s.rooms, s.err
}

type stubFacultyRepo struct {
	profiles []models.FacultyProfile
	err      error
}

func (s stubFacultyRepo) ListProfiles(ctx context.Context) ([]models.FacultyProfile, error) {
	return s.profiles, s.err
}

type stubBatchRepo struct {
	batches []models.BatchCurriculum
	err     error
}

func (s stubBatchRepo) ListWithCurricula(ctx context.Context) ([]models.BatchCurriculum, error) {
	return s.batches, s.err
}

type stubStudentRepo struct {
	student *models.Student
	err     error
}

func (s stubStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return s.student, s.err
}

// stubEntriesRepo backs BeginTx with sqlmock so commit and rollback
// expectations can be asserted, while recording write calls directly.
type stubEntriesRepo struct {
	db        *sqlx.DB
	deleted   bool
	inserted  []models.TimetableEntry
	listed    []models.TimetableEntryDetail
	deleteErr error
	insertErr error
	listErr   error
}

func (s *stubEntriesRepo) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return s.db.BeginTxx(ctx, nil)
}

func (s *stubEntriesRepo) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = true
	return nil
}

func (s *stubEntriesRepo) BulkInsertTx(ctx context.Context, tx *sqlx.Tx, entries []models.TimetableEntry) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = entries
	return nil
}

func (s *stubEntriesRepo) ListDetailed(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error) {
	return s.listed, s.listErr
}

type stubSolver struct {
	response *dto.EngineResponse
	err      error
	request  *dto.EngineRequest
}

func (s *stubSolver) Solve(ctx context.Context, request *dto.EngineRequest) (*dto.EngineResponse, error) {
	s.request = request
	return s.response, s.err
}

func intPtr(v int) *int { return &v }

func generationSnapshotFixtures() (stubRoomRepo, stubFacultyRepo, stubBatchRepo) {
	rooms := stubRoomRepo{rooms: []models.Room{
		{ID: "r1", Name: "Room 101", Capacity: 60, Type: models.RoomTypeClassroom},
		{ID: "r2", Name: "Lab A", Capacity: 30, Type: models.RoomTypeLaboratory},
	}}
	faculty := stubFacultyRepo{profiles: []models.FacultyProfile{
		{
			Faculty:             models.Faculty{ID: "f1", FullName: "Dr. Rao"},
			QualifiedSubjectIDs: []string{"s1"},
		},
	}}
	batches := stubBatchRepo{batches: []models.BatchCurriculum{
		{
			Batch: models.Batch{ID: "b1", Name: "CSE-A", Strength: 55},
			Subjects: []models.Subject{
				{ID: "s1", Code: "CS301", Name: "Algorithms", Type: models.SubjectTypeTheory, SessionsPerWeek: 3, BatchID: "b1"},
			},
		},
	}}
	return rooms, faculty, batches
}

func newGenerationMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTimetableServiceGenerateSuccess(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, mock := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db}

	solver := &stubSolver{response: &dto.EngineResponse{
		Status: dto.EngineStatusSuccess,
		Schedule: []dto.EngineScheduleEntry{
			{Day: intPtr(0), Slot: intPtr(0), RoomID: "r1", TeacherID: "f1", CourseID: "s1", GroupID: "b1"},
			{Day: intPtr(1), Slot: intPtr(2), RoomID: "r1", TeacherID: "f1", CourseID: "s1", GroupID: "b1"},
		},
	}}

	mock.ExpectBegin()
	mock.ExpectCommit()

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, solver, nil, nil, nil)
	resp, err := service.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.Empty(t, resp.Skipped)
	assert.True(t, entries.deleted)
	require.Len(t, entries.inserted, 2)
	assert.Equal(t, models.TimetableEntry{Day: 0, Slot: 0, RoomID: "r1", FacultyID: "f1", SubjectID: "s1", BatchID: "b1"}, entries.inserted[0])

	require.NotNil(t, solver.request)
	assert.Len(t, solver.request.Requirements, 1)
	assert.Equal(t, scheduling.DefaultDaysPerWeek, solver.request.Metadata.DaysPerWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateReportsSkippedPairs(t *testing.T) {
	rooms, _, batches := generationSnapshotFixtures()
	db, mock := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db}

	// No instructor is qualified for s1, so the pair is skipped and the
	// request carries no requirements.
	faculty := stubFacultyRepo{profiles: []models.FacultyProfile{
		{Faculty: models.Faculty{ID: "f2", FullName: "Dr. Iyer"}},
	}}

	solver := &stubSolver{response: &dto.EngineResponse{
		Status:   dto.EngineStatusSuccess,
		Schedule: []dto.EngineScheduleEntry{},
	}}

	mock.ExpectBegin()
	mock.ExpectCommit()

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, solver, nil, nil, nil)
	resp, err := service.Generate(context.Background())
	require.NoError(t, err)

	assert.Zero(t, resp.Count)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "s1", solver.request.Resources.Courses[0].ID)
	assert.Empty(t, solver.request.Requirements)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "Algorithms")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateNoFeasibleSchedule(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, mock := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db}

	solver := &stubSolver{err: appErrors.Clone(appErrors.ErrNoFeasibleSchedule, "engine rejected the request")}

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, solver, nil, nil, nil)
	_, err := service.Generate(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNoFeasibleSchedule.Code, appErr.Code)
	// The previous timetable must be untouched: no transaction was opened.
	assert.False(t, entries.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateMalformedResult(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, mock := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db}

	solver := &stubSolver{response: &dto.EngineResponse{
		Status: dto.EngineStatusSuccess,
		Schedule: []dto.EngineScheduleEntry{
			{Day: intPtr(0), RoomID: "r1", TeacherID: "f1", CourseID: "s1", GroupID: "b1"},
		},
	}}

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, solver, nil, nil, nil)
	_, err := service.Generate(context.Background())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrMalformedResult.Code, appErr.Code)
	assert.False(t, entries.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGeneratePersistFailureRollsBack(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, mock := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db, insertErr: errors.New("disk full")}

	solver := &stubSolver{response: &dto.EngineResponse{
		Status: dto.EngineStatusSuccess,
		Schedule: []dto.EngineScheduleEntry{
			{Day: intPtr(0), Slot: intPtr(0), RoomID: "r1", TeacherID: "f1", CourseID: "s1", GroupID: "b1"},
		},
	}}

	mock.ExpectBegin()
	mock.ExpectRollback()

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, solver, nil, nil, nil)
	_, err := service.Generate(context.Background())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceGenerateBusy(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, _ := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db}
	solver := &stubSolver{}

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, solver, nil, nil, nil)

	service.generating.Lock()
	defer service.generating.Unlock()

	_, err := service.Generate(context.Background())
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrGenerationBusy.Code, appErr.Code)
}

func TestTimetableServiceForStudentResolvesBatch(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, _ := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db, listed: []models.TimetableEntryDetail{
		{TimetableEntry: models.TimetableEntry{ID: "e1", BatchID: "b1"}, BatchName: "CSE-A"},
	}}
	students := stubStudentRepo{student: &models.Student{ID: "stu1", BatchID: "b1"}}

	service := NewTimetableService(rooms, faculty, batches, entries, students, nil, &stubSolver{}, nil, nil, nil)
	result, err := service.ForStudent(context.Background(), "stu1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "b1", result[0].BatchID)
}

func TestTimetableServiceForFacultyRequiresID(t *testing.T) {
	rooms, faculty, batches := generationSnapshotFixtures()
	db, _ := newGenerationMockDB(t)
	entries := &stubEntriesRepo{db: db}

	service := NewTimetableService(rooms, faculty, batches, entries, stubStudentRepo{}, nil, &stubSolver{}, nil, nil, nil)
	_, err := service.ForFaculty(context.Background(), "")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
