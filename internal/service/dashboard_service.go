package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/internal/models"
	"github.com/acadsync/timetable-api/internal/scheduling"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

type dashboardStatsRepository interface {
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	QualifiedSubjects(ctx context.Context, facultyID string) ([]models.Subject, error)
	SubjectsWithTeachers(ctx context.Context, batchID string) ([]models.SubjectWithTeacher, error)
	FacultyLoad(ctx context.Context, facultyID string) (int, int, error)
}

type dashboardFacultyRepository interface {
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
}

type dashboardStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type dashboardBatchRepository interface {
	FindByID(ctx context.Context, id string) (*models.Batch, error)
}

type dashboardTimetableRepository interface {
	ListDetailed(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntryDetail, error)
}

// DashboardService aggregates the role-specific landing views.
type DashboardService struct {
	stats     dashboardStatsRepository
	faculty   dashboardFacultyRepository
	students  dashboardStudentRepository
	batches   dashboardBatchRepository
	timetable dashboardTimetableRepository
	metrics   *MetricsService
	logger    *zap.Logger

	now func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(
	stats dashboardStatsRepository,
	faculty dashboardFacultyRepository,
	students dashboardStudentRepository,
	batches dashboardBatchRepository,
	timetable dashboardTimetableRepository,
	metrics *MetricsService,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		stats:     stats,
		faculty:   faculty,
		students:  students,
		batches:   batches,
		timetable: timetable,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// AdminOverview returns entity counts for the admin landing page.
func (s *DashboardService) AdminOverview(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.stats.AdminStats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin stats")
	}
	return stats, nil
}

// SystemMetrics returns the runtime metrics snapshot.
func (s *DashboardService) SystemMetrics() models.SystemMetrics {
	return s.metrics.Snapshot()
}

// todayIndex maps the wall clock onto the weekly grid, where day 0 is
// Monday. Days outside the teaching week return -1.
func (s *DashboardService) todayIndex() int {
	day := (int(s.now().Weekday()) + 6) % 7
	if day >= scheduling.DefaultDaysPerWeek {
		return -1
	}
	return day
}

// ForFaculty builds one instructor's dashboard.
func (s *DashboardService) ForFaculty(ctx context.Context, facultyID string) (*models.FacultyDashboard, error) {
	if facultyID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty id is required")
	}
	faculty, err := s.faculty.FindByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty member")
	}

	subjects, err := s.stats.QualifiedSubjects(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load qualifications")
	}

	weeklySlots, distinctBatches, err := s.stats.FacultyLoad(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teaching load")
	}

	var todaysClasses []models.TimetableEntryDetail
	if today := s.todayIndex(); today >= 0 {
		todaysClasses, err = s.timetable.ListDetailed(ctx, models.TimetableFilter{FacultyID: facultyID, Day: &today})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load today's classes")
		}
	}

	return &models.FacultyDashboard{
		Profile:          *faculty,
		QualifiedSubject: subjects,
		TodaysClasses:    todaysClasses,
		WeeklySlots:      weeklySlots,
		DistinctBatches:  distinctBatches,
	}, nil
}

// ForStudent builds one student's dashboard: their batch profile and the
// curriculum with assigned teachers from the current timetable.
func (s *DashboardService) ForStudent(ctx context.Context, studentID string) (*models.StudentDashboard, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}

	batch, err := s.batches.FindByID(ctx, student.BatchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch batch")
	}

	subjects, err := s.stats.SubjectsWithTeachers(ctx, student.BatchID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curriculum")
	}

	return &models.StudentDashboard{
		Profile:  models.StudentDetail{Student: *student, BatchName: batch.Name},
		Subjects: subjects,
	}, nil
}
