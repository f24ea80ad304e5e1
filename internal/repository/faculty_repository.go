package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadsync/timetable-api/internal/models"
)

// FacultyRepository provides persistence for instructors, their subject
// qualifications, and their unavailability markers.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new faculty repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

const facultyColumns = "id, full_name, email, max_classes_per_day, created_at, updated_at"

// List returns faculty with optional filtering and pagination.
func (r *FacultyRepository) List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error) {
	base := "FROM faculty WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("id IN (SELECT faculty_id FROM faculty_subjects WHERE subject_id = $%d)", len(args)+1))
		args = append(args, filter.SubjectID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"full_name": true, "email": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "full_name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", facultyColumns, base, sortBy, order, size, offset)
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list faculty: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count faculty: %w", err)
	}

	return faculty, total, nil
}

// FindByID loads a faculty member by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty WHERE id = $1", facultyColumns)
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// ListProfiles returns every faculty member with qualifications and
// unavailability loaded, in stable listing order. The scheduling compiler
// depends on this ordering for its first-match teacher policy.
func (r *FacultyRepository) ListProfiles(ctx context.Context) ([]models.FacultyProfile, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty ORDER BY created_at ASC, id ASC", facultyColumns)
	var faculty []models.Faculty
	if err := r.db.SelectContext(ctx, &faculty, query); err != nil {
		return nil, fmt.Errorf("list faculty profiles: %w", err)
	}

	type qualificationRow struct {
		FacultyID string `db:"faculty_id"`
		SubjectID string `db:"subject_id"`
	}
	var qualifications []qualificationRow
	if err := r.db.SelectContext(ctx, &qualifications, `SELECT faculty_id, subject_id FROM faculty_subjects ORDER BY faculty_id, subject_id`); err != nil {
		return nil, fmt.Errorf("list faculty qualifications: %w", err)
	}

	type unavailableRow struct {
		FacultyID string `db:"faculty_id"`
		Day       int    `db:"day"`
		Slot      int    `db:"slot"`
	}
	var unavailable []unavailableRow
	if err := r.db.SelectContext(ctx, &unavailable, `SELECT faculty_id, day, slot FROM faculty_unavailability ORDER BY faculty_id, day, slot`); err != nil {
		return nil, fmt.Errorf("list faculty unavailability: %w", err)
	}

	qualifiedBy := make(map[string][]string)
	for _, row := range qualifications {
		qualifiedBy[row.FacultyID] = append(qualifiedBy[row.FacultyID], row.SubjectID)
	}
	unavailableBy := make(map[string][]models.SlotRef)
	for _, row := range unavailable {
		unavailableBy[row.FacultyID] = append(unavailableBy[row.FacultyID], models.SlotRef{Day: row.Day, Slot: row.Slot})
	}

	profiles := make([]models.FacultyProfile, 0, len(faculty))
	for _, member := range faculty {
		profiles = append(profiles, models.FacultyProfile{
			Faculty:             member,
			QualifiedSubjectIDs: qualifiedBy[member.ID],
			Unavailable:         unavailableBy[member.ID],
		})
	}
	return profiles, nil
}

// Create inserts a new faculty member.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	if faculty.ID == "" {
		faculty.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	faculty.CreatedAt = now
	faculty.UpdatedAt = now
	const query = `INSERT INTO faculty (id, full_name, email, max_classes_per_day, created_at, updated_at)
		VALUES (:id, :full_name, :email, :max_classes_per_day, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, faculty); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// Update modifies a faculty record.
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	faculty.UpdatedAt = time.Now().UTC()
	const query = `UPDATE faculty SET full_name = :full_name, email = :email, max_classes_per_day = :max_classes_per_day, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, faculty)
	if err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	return requireRowAffected(result, "faculty")
}

// Delete removes a faculty member.
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	return requireRowAffected(result, "faculty")
}

// ReplaceQualifications swaps the full qualification set for a faculty member.
func (r *FacultyRepository) ReplaceQualifications(ctx context.Context, facultyID string, subjectIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM faculty_subjects WHERE faculty_id = $1`, facultyID); err != nil {
		return fmt.Errorf("clear faculty qualifications: %w", err)
	}
	for _, subjectID := range subjectIDs {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO faculty_subjects (faculty_id, subject_id) VALUES ($1, $2)`, facultyID, subjectID); err != nil {
			return fmt.Errorf("insert faculty qualification: %w", err)
		}
	}
	return nil
}

// ReplaceUnavailability swaps the full unavailability set for a faculty member.
func (r *FacultyRepository) ReplaceUnavailability(ctx context.Context, facultyID string, slots []models.SlotRef) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM faculty_unavailability WHERE faculty_id = $1`, facultyID); err != nil {
		return fmt.Errorf("clear faculty unavailability: %w", err)
	}
	for _, slot := range slots {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO faculty_unavailability (faculty_id, day, slot) VALUES ($1, $2, $3)`, facultyID, slot.Day, slot.Slot); err != nil {
			return fmt.Errorf("insert faculty unavailability: %w", err)
		}
	}
	return nil
}
