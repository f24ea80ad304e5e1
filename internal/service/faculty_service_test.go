package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

type stubFacultyCRUDRepo struct {
	created        *models.Faculty
	qualifications []string
	unavailable    []models.SlotRef
}

func (s *stubFacultyCRUDRepo) List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error) {
	return nil, 0, nil
}

func (s *stubFacultyCRUDRepo) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, appErrors.ErrNotFound
}

func (s *stubFacultyCRUDRepo) Create(ctx context.Context, faculty *models.Faculty) error {
	faculty.ID = "f-new"
	s.created = faculty
	return nil
}

func (s *stubFacultyCRUDRepo) Update(ctx context.Context, faculty *models.Faculty) error {
	s.created = faculty
	return nil
}

func (s *stubFacultyCRUDRepo) Delete(ctx context.Context, id string) error { return nil }

func (s *stubFacultyCRUDRepo) ReplaceQualifications(ctx context.Context, facultyID string, subjectIDs []string) error {
	s.qualifications = subjectIDs
	return nil
}

func (s *stubFacultyCRUDRepo) ReplaceUnavailability(ctx context.Context, facultyID string, slots []models.SlotRef) error {
	s.unavailable = slots
	return nil
}

type stubSubjectResolver struct {
	subjects []models.Subject
}

func (s stubSubjectResolver) FindByCodes(ctx context.Context, codes []string) ([]models.Subject, error) {
	return s.subjects, nil
}

type stubUserCreator struct {
	created *models.User
}

func (s *stubUserCreator) Create(ctx context.Context, user *models.User) error {
	s.created = user
	return nil
}

func TestFacultyServiceCreateResolvesCodesAndProvisionsLogin(t *testing.T) {
	repo := &stubFacultyCRUDRepo{}
	subjects := stubSubjectResolver{subjects: []models.Subject{
		{ID: "s1", Code: "CS301"},
		{ID: "s2", Code: "CS302"},
	}}
	users := &stubUserCreator{}
	service := NewFacultyService(repo, subjects, users, nil, nil)

	faculty, err := service.Create(context.Background(), dto.SaveFacultyRequest{
		FullName:     "Dr. Rao",
		Email:        "rao@example.edu",
		Password:     "long-enough-pass",
		SubjectCodes: []string{"CS301", "CS302", "CS301"},
		Unavailable:  []dto.SlotInput{{Day: 0, Slot: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, "f-new", faculty.ID)
	assert.Equal(t, 4, faculty.MaxClassesPerDay)
	// Duplicate codes collapse to one qualification per subject.
	assert.Equal(t, []string{"s1", "s2"}, repo.qualifications)
	assert.Equal(t, []models.SlotRef{{Day: 0, Slot: 3}}, repo.unavailable)

	require.NotNil(t, users.created)
	assert.Equal(t, models.RoleFaculty, users.created.Role)
	require.NotNil(t, users.created.FacultyID)
	assert.Equal(t, "f-new", *users.created.FacultyID)
	assert.NotEqual(t, "long-enough-pass", users.created.PasswordHash)
}

func TestFacultyServiceCreateRejectsUnknownCodes(t *testing.T) {
	repo := &stubFacultyCRUDRepo{}
	subjects := stubSubjectResolver{subjects: []models.Subject{{ID: "s1", Code: "CS301"}}}
	service := NewFacultyService(repo, subjects, &stubUserCreator{}, nil, nil)

	_, err := service.Create(context.Background(), dto.SaveFacultyRequest{
		FullName:     "Dr. Rao",
		Email:        "rao@example.edu",
		SubjectCodes: []string{"CS301", "CS999"},
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "CS999")
	assert.Nil(t, repo.created)
}

func TestFacultyServiceCreateSkipsLoginWithoutPassword(t *testing.T) {
	repo := &stubFacultyCRUDRepo{}
	users := &stubUserCreator{}
	service := NewFacultyService(repo, stubSubjectResolver{}, users, nil, nil)

	_, err := service.Create(context.Background(), dto.SaveFacultyRequest{
		FullName: "Dr. Iyer",
		Email:    "iyer@example.edu",
	})
	require.NoError(t, err)
	assert.Nil(t, users.created)
}

func TestFacultyServiceCreateValidatesPayload(t *testing.T) {
	service := NewFacultyService(&stubFacultyCRUDRepo{}, stubSubjectResolver{}, &stubUserCreator{}, nil, nil)

	_, err := service.Create(context.Background(), dto.SaveFacultyRequest{Email: "not-an-email"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
