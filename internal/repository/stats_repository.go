package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/acadsync/timetable-api/internal/models"
)

// StatsRepository answers the aggregate queries behind the dashboards.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AdminStats counts every entity class in one round trip per table.
func (r *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM students) AS students,
		(SELECT COUNT(*) FROM faculty) AS faculty,
		(SELECT COUNT(*) FROM batches) AS batches,
		(SELECT COUNT(*) FROM rooms) AS rooms,
		(SELECT COUNT(*) FROM subjects) AS subjects,
		(SELECT COUNT(*) FROM timetable_entries) AS timetable_entries`
	var stats models.AdminStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return &stats, nil
}

// QualifiedSubjects lists the subjects a faculty member is qualified to teach.
func (r *StatsRepository) QualifiedSubjects(ctx context.Context, facultyID string) ([]models.Subject, error) {
	const query = `SELECT s.id, s.code, s.name, s.type, s.sessions_per_week, s.batch_id, s.created_at, s.updated_at
		FROM subjects s
		JOIN faculty_subjects fs ON fs.subject_id = s.id
		WHERE fs.faculty_id = $1
		ORDER BY s.code ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, facultyID); err != nil {
		return nil, fmt.Errorf("qualified subjects: %w", err)
	}
	return subjects, nil
}

// SubjectsWithTeachers lists a batch's curriculum with the faculty member
// the current timetable assigned to each subject, when one exists.
func (r *StatsRepository) SubjectsWithTeachers(ctx context.Context, batchID string) ([]models.SubjectWithTeacher, error) {
	const subjectQuery = `SELECT id, code, name, type, sessions_per_week, batch_id, created_at, updated_at
		FROM subjects WHERE batch_id = $1 ORDER BY code ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, subjectQuery, batchID); err != nil {
		return nil, fmt.Errorf("batch subjects: %w", err)
	}

	const teacherQuery = `SELECT DISTINCT t.subject_id, f.id, f.full_name, f.email, f.max_classes_per_day, f.created_at, f.updated_at
		FROM timetable_entries t
		JOIN faculty f ON f.id = t.faculty_id
		WHERE t.batch_id = $1`
	type assignedRow struct {
		SubjectID string `db:"subject_id"`
		models.Faculty
	}
	var assigned []assignedRow
	if err := r.db.SelectContext(ctx, &assigned, teacherQuery, batchID); err != nil {
		return nil, fmt.Errorf("assigned teachers: %w", err)
	}

	teacherBy := make(map[string]models.Faculty, len(assigned))
	for _, row := range assigned {
		teacherBy[row.SubjectID] = row.Faculty
	}

	result := make([]models.SubjectWithTeacher, 0, len(subjects))
	for _, subject := range subjects {
		entry := models.SubjectWithTeacher{Subject: subject}
		if teacher, ok := teacherBy[subject.ID]; ok {
			teacherCopy := teacher
			entry.AssignedTeacher = &teacherCopy
		}
		result = append(result, entry)
	}
	return result, nil
}

// FacultyLoad summarises how many weekly slots and distinct batches the
// current timetable assigns to a faculty member.
func (r *StatsRepository) FacultyLoad(ctx context.Context, facultyID string) (weeklySlots, distinctBatches int, err error) {
	const query = `SELECT COUNT(*) AS weekly_slots, COUNT(DISTINCT batch_id) AS distinct_batches
		FROM timetable_entries WHERE faculty_id = $1`
	var row struct {
		WeeklySlots     int `db:"weekly_slots"`
		DistinctBatches int `db:"distinct_batches"`
	}
	if err := r.db.GetContext(ctx, &row, query, facultyID); err != nil {
		return 0, 0, fmt.Errorf("faculty load: %w", err)
	}
	return row.WeeklySlots, row.DistinctBatches, nil
}
