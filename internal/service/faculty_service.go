package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

type facultyRepository interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, id string) error
	ReplaceQualifications(ctx context.Context, facultyID string, subjectIDs []string) error
	ReplaceUnavailability(ctx context.Context, facultyID string, slots []models.SlotRef) error
}

type facultySubjectResolver interface {
	FindByCodes(ctx context.Context, codes []string) ([]models.Subject, error)
}

type facultyUserRepository interface {
	Create(ctx context.Context, user *models.User) error
}

// FacultyService manages instructors, their qualifications and
// unavailability, and provisions their application logins.
type FacultyService struct {
	repo      facultyRepository
	subjects  facultySubjectResolver
	users     facultyUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(repo facultyRepository, subjects facultySubjectResolver, users facultyUserRepository, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, subjects: subjects, users: users, validator: validate, logger: logger}
}

// List returns faculty with pagination metadata.
func (s *FacultyService) List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, *models.Pagination, error) {
	faculty, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}
	return faculty, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a single faculty member.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.Faculty, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty member")
	}
	return faculty, nil
}

// resolveSubjectIDs maps admin-facing subject codes onto stored subject ids.
// Unknown codes are a validation failure, not a silent drop.
func (s *FacultyService) resolveSubjectIDs(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	subjects, err := s.subjects.FindByCodes(ctx, codes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve subject codes")
	}
	found := make(map[string]string, len(subjects))
	for _, subject := range subjects {
		found[subject.Code] = subject.ID
	}
	var missing []string
	ids := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		id, ok := found[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown subject codes: %s", strings.Join(missing, ", ")))
	}
	return ids, nil
}

func slotRefsFrom(inputs []dto.SlotInput) []models.SlotRef {
	slots := make([]models.SlotRef, 0, len(inputs))
	for _, input := range inputs {
		slots = append(slots, models.SlotRef{Day: input.Day, Slot: input.Slot})
	}
	return slots
}

// Create stores a new faculty member, their qualifications and
// unavailability, and a FACULTY login when a password is supplied.
func (s *FacultyService) Create(ctx context.Context, req dto.SaveFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	subjectIDs, err := s.resolveSubjectIDs(ctx, req.SubjectCodes)
	if err != nil {
		return nil, err
	}

	maxClasses := req.MaxClassesPerDay
	if maxClasses <= 0 {
		maxClasses = 4
	}
	faculty := &models.Faculty{
		FullName:         req.FullName,
		Email:            req.Email,
		MaxClassesPerDay: maxClasses,
	}
	if err := s.repo.Create(ctx, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty member")
	}

	if err := s.repo.ReplaceQualifications(ctx, faculty.ID, subjectIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store qualifications")
	}
	if err := s.repo.ReplaceUnavailability(ctx, faculty.ID, slotRefsFrom(req.Unavailable)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store unavailability")
	}

	if req.Password != "" {
		if err := s.provisionLogin(ctx, faculty, req.Password); err != nil {
			return nil, err
		}
	}

	s.logger.Info("faculty member created",
		zap.String("faculty_id", faculty.ID),
		zap.Int("qualifications", len(subjectIDs)),
		zap.Int("unavailable_slots", len(req.Unavailable)))
	return faculty, nil
}

func (s *FacultyService) provisionLogin(ctx context.Context, faculty *models.Faculty, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	facultyID := faculty.ID
	user := &models.User{
		Email:        faculty.Email,
		PasswordHash: hash,
		FullName:     faculty.FullName,
		Role:         models.RoleFaculty,
		FacultyID:    &facultyID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty login")
	}
	return nil
}

// Update applies changes to a faculty member and replaces their
// qualification and unavailability sets.
func (s *FacultyService) Update(ctx context.Context, id string, req dto.SaveFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	faculty, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	subjectIDs, err := s.resolveSubjectIDs(ctx, req.SubjectCodes)
	if err != nil {
		return nil, err
	}

	faculty.FullName = req.FullName
	faculty.Email = req.Email
	if req.MaxClassesPerDay > 0 {
		faculty.MaxClassesPerDay = req.MaxClassesPerDay
	}
	if err := s.repo.Update(ctx, faculty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update faculty member")
	}

	if err := s.repo.ReplaceQualifications(ctx, faculty.ID, subjectIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store qualifications")
	}
	if err := s.repo.ReplaceUnavailability(ctx, faculty.ID, slotRefsFrom(req.Unavailable)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store unavailability")
	}
	return faculty, nil
}

// Delete removes a faculty member.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete faculty member")
	}
	return nil
}
