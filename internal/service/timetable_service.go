package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	"github.com/acadsync/timetable-api/internal/scheduling"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

// Cache keys for timetable reads. Generation invalidates the whole prefix.
const (
	timetableCachePrefix = "timetable:"
	timetableCacheAll    = timetableCachePrefix + "all"
)

// EngineSolver abstracts the external scheduling engine call.
type EngineSolver interface {
	Solve(ctx context.Context, request *dto.EngineRequest) (*dto.EngineResponse, error)
}

// TimetableRoomRepository loads rooms for the compiler snapshot.
type TimetableRoomRepository interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

// TimetableFacultyRepository loads instructor profiles for the compiler snapshot.
type TimetableFacultyRepository interface {
	ListProfiles(ctx context.Context) ([]models.FacultyProfile, error)
}

// TimetableBatchRepository loads batch curricula for the compiler snapshot.
type TimetableBatchRepository interface {
	ListWithCurricula(ctx context.Context) ([]models.BatchCurriculum, error)
}

// TimetableEntryRepository persists and reads finalized timetable entries.
type TimetableEntryRepository interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error
	BulkInsertTx(ctx context.Context, tx *sqlx.Tx, entries []models.TimetableEntry) error
	ListDetailed(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error)
}

// TimetableStudentRepository resolves a student's batch for timetable reads.
type TimetableStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// TimetableService runs the full generation pipeline and serves timetable
// reads. Generation is serialized: a second trigger while one is running is
// rejected rather than queued.
type TimetableService struct {
	rooms     TimetableRoomRepository
	faculty   TimetableFacultyRepository
	batches   TimetableBatchRepository
	entries   TimetableEntryRepository
	students  TimetableStudentRepository
	assembler *scheduling.Assembler
	solver    EngineSolver
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger

	generating sync.Mutex
}

// NewTimetableService constructs the timetable service.
func NewTimetableService(
	rooms TimetableRoomRepository,
	faculty TimetableFacultyRepository,
	batches TimetableBatchRepository,
	entries TimetableEntryRepository,
	students TimetableStudentRepository,
	assembler *scheduling.Assembler,
	solver EngineSolver,
	cache *CacheService,
	metrics *MetricsService,
	logger *zap.Logger,
) *TimetableService {
	if assembler == nil {
		assembler = scheduling.NewAssembler(nil, dto.EngineMetadata{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		rooms:     rooms,
		faculty:   faculty,
		batches:   batches,
		entries:   entries,
		students:  students,
		assembler: assembler,
		solver:    solver,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate runs the whole pipeline: snapshot, assemble, solve, validate, and
// atomically replace the stored timetable. On any failure after the snapshot
// the previous timetable is left untouched.
func (s *TimetableService) Generate(ctx context.Context) (*dto.GenerateTimetableResponse, error) {
	if !s.generating.TryLock() {
		return nil, appErrors.ErrGenerationBusy
	}
	defer s.generating.Unlock()

	start := time.Now()

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		s.metrics.ObserveGeneration("snapshot_error", time.Since(start))
		return nil, err
	}

	request, skipped, err := s.assembler.Assemble(*snapshot)
	if err != nil {
		s.metrics.ObserveGeneration("assemble_error", time.Since(start))
		return nil, err
	}

	s.logger.Info("dispatching scheduling request",
		zap.Int("rooms", len(request.Resources.Rooms)),
		zap.Int("teachers", len(request.Resources.Teachers)),
		zap.Int("groups", len(request.Resources.Groups)),
		zap.Int("requirements", len(request.Requirements)),
		zap.Int("skipped_pairs", len(skipped)))

	response, err := s.solver.Solve(ctx, request)
	if err != nil {
		s.metrics.ObserveGeneration("engine_error", time.Since(start))
		return nil, err
	}

	if err := scheduling.ValidateResult(response); err != nil {
		s.metrics.ObserveGeneration("invalid_result", time.Since(start))
		return nil, err
	}

	entries := scheduling.MaterializeEntries(response.Schedule)

	// The engine has already spent its time budget; a client disconnect at
	// this point must not abort the replace halfway.
	persistCtx := context.WithoutCancel(ctx)
	if err := s.replaceAll(persistCtx, entries); err != nil {
		s.metrics.ObserveGeneration("persist_error", time.Since(start))
		return nil, err
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(persistCtx, timetableCachePrefix+"*"); err != nil {
			s.logger.Warn("timetable cache invalidation failed", zap.Error(err))
		}
	}

	s.metrics.ObserveGeneration("success", time.Since(start))
	s.logger.Info("timetable replaced",
		zap.Int("entries", len(entries)),
		zap.Duration("elapsed", time.Since(start)))

	result := &dto.GenerateTimetableResponse{
		Message: "timetable generated successfully",
		Count:   len(entries),
		Skipped: skipped,
	}
	for _, pair := range skipped {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no qualified faculty for subject %s of batch %s; pair skipped", pair.SubjectName, pair.BatchName))
	}
	return result, nil
}

func (s *TimetableService) loadSnapshot(ctx context.Context) (*scheduling.Snapshot, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	faculty, err := s.faculty.ListProfiles(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	batches, err := s.batches.ListWithCurricula(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batches")
	}
	return &scheduling.Snapshot{Rooms: rooms, Faculty: faculty, Batches: batches}, nil
}

func (s *TimetableService) replaceAll(ctx context.Context, entries []models.TimetableEntry) error {
	tx, err := s.entries.BeginTx(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to start timetable replace")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.entries.DeleteAllTx(ctx, tx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear timetable")
	}
	if err := s.entries.BulkInsertTx(ctx, tx, entries); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
	}
	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit timetable replace")
	}
	committed = true
	return nil
}

// ListAll returns the complete timetable ordered by day and slot.
func (s *TimetableService) ListAll(ctx context.Context) ([]models.TimetableEntryDetail, error) {
	var cached []models.TimetableEntryDetail
	if hit, err := s.cache.Get(ctx, timetableCacheAll, &cached); err == nil && hit {
		return cached, nil
	}

	entries, err := s.entries.ListDetailed(ctx, models.TimetableFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, timetableCacheAll, entries, 0)
	}
	return entries, nil
}

// ForFaculty returns one instructor's weekly timetable.
func (s *TimetableService) ForFaculty(ctx context.Context, facultyID string) ([]models.TimetableEntryDetail, error) {
	if facultyID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty id is required")
	}

	key := timetableCachePrefix + "faculty:" + facultyID
	var cached []models.TimetableEntryDetail
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	entries, err := s.entries.ListDetailed(ctx, models.TimetableFilter{FacultyID: facultyID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty timetable")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, entries, 0)
	}
	return entries, nil
}

// ForStudent resolves the student's batch and returns that batch's timetable.
func (s *TimetableService) ForStudent(ctx context.Context, studentID string) ([]models.TimetableEntryDetail, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student record not found")
	}

	key := timetableCachePrefix + "batch:" + student.BatchID
	var cached []models.TimetableEntryDetail
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	entries, err := s.entries.ListDetailed(ctx, models.TimetableFilter{BatchID: student.BatchID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch timetable")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, entries, 0)
	}
	return entries, nil
}
