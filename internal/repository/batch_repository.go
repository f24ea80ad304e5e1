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

// BatchRepository provides persistence for student batches.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

const batchColumns = "id, name, strength, year_of_study, created_at, updated_at"

// List returns batches with optional filtering and pagination.
func (r *BatchRepository) List(ctx context.Context, filter models.BatchFilter) ([]models.Batch, int, error) {
	base := "FROM batches WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Year > 0 {
		conditions = append(conditions, fmt.Sprintf("year_of_study = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "strength": true, "created_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "name"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", batchColumns, base, sortBy, order, size, offset)
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}

	return batches, total, nil
}

// FindByID loads a batch by id.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	query := fmt.Sprintf("SELECT %s FROM batches WHERE id = $1", batchColumns)
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}

// FindByName loads a batch by its unique name.
func (r *BatchRepository) FindByName(ctx context.Context, name string) (*models.Batch, error) {
	query := fmt.Sprintf("SELECT %s FROM batches WHERE name = $1", batchColumns)
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, name); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListWithCurricula returns every batch with its curriculum subjects, as
// consumed by the scheduling compiler.
func (r *BatchRepository) ListWithCurricula(ctx context.Context) ([]models.BatchCurriculum, error) {
	query := fmt.Sprintf("SELECT %s FROM batches ORDER BY name ASC", batchColumns)
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query); err != nil {
		return nil, fmt.Errorf("list batches for curricula: %w", err)
	}

	const subjectQuery = `SELECT id, code, name, type, sessions_per_week, batch_id, created_at, updated_at FROM subjects ORDER BY batch_id, code`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, subjectQuery); err != nil {
		return nil, fmt.Errorf("list curriculum subjects: %w", err)
	}

	byBatch := make(map[string][]models.Subject, len(batches))
	for _, subject := range subjects {
		byBatch[subject.BatchID] = append(byBatch[subject.BatchID], subject)
	}

	result := make([]models.BatchCurriculum, 0, len(batches))
	for _, batch := range batches {
		result = append(result, models.BatchCurriculum{
			Batch:    batch,
			Subjects: byBatch[batch.ID],
		})
	}
	return result, nil
}

// Create inserts a new batch.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now
	const query = `INSERT INTO batches (id, name, strength, year_of_study, created_at, updated_at)
		VALUES (:id, :name, :strength, :year_of_study, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, batch); err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// Update modifies a batch record.
func (r *BatchRepository) Update(ctx context.Context, batch *models.Batch) error {
	batch.UpdatedAt = time.Now().UTC()
	const query = `UPDATE batches SET name = :name, strength = :strength, year_of_study = :year_of_study, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, batch)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return requireRowAffected(result, "batch")
}

// Delete removes a batch.
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return requireRowAffected(result, "batch")
}
