package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

func TestRoomCategoryMappingIsTotal(t *testing.T) {
	assert.Equal(t, CategoryComputerLab, RoomCategory(models.RoomTypeLaboratory))
	assert.Equal(t, CategoryLectureHall, RoomCategory(models.RoomTypeClassroom))
	assert.Equal(t, CategoryLectureHall, RoomCategory(models.RoomType("Auditorium")))
	assert.Equal(t, CategoryLectureHall, RoomCategory(models.RoomType("")))
}

func TestNormalizeRoom(t *testing.T) {
	normalized, err := NormalizeRoom(models.Room{ID: "r1", Capacity: 60, Type: models.RoomTypeLaboratory})
	require.NoError(t, err)
	assert.Equal(t, "r1", normalized.ID)
	assert.Equal(t, 60, normalized.Capacity)
	assert.Equal(t, CategoryComputerLab, normalized.Category)
}

func TestNormalizeRoomRejectsMalformed(t *testing.T) {
	_, err := NormalizeRoom(models.Room{Capacity: 40, Type: models.RoomTypeClassroom})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResource.Code, appErrors.FromError(err).Code)

	_, err = NormalizeRoom(models.Room{ID: "r1", Capacity: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResource.Code, appErrors.FromError(err).Code)
}

func TestNormalizeFacultyDefaultsToEmptyLists(t *testing.T) {
	normalized, err := NormalizeFaculty(models.FacultyProfile{
		Faculty: models.Faculty{ID: "f1", FullName: "Dr. Rao"},
	})
	require.NoError(t, err)
	assert.NotNil(t, normalized.QualifiedCourses)
	assert.Empty(t, normalized.QualifiedCourses)
	assert.NotNil(t, normalized.UnavailableSlots)
	assert.Empty(t, normalized.UnavailableSlots)
}

func TestNormalizeFacultyMapsUnavailability(t *testing.T) {
	normalized, err := NormalizeFaculty(models.FacultyProfile{
		Faculty:             models.Faculty{ID: "f1", FullName: "Dr. Rao"},
		QualifiedSubjectIDs: []string{"s1", "s2"},
		Unavailable:         []models.SlotRef{{Day: 0, Slot: 2}, {Day: 4, Slot: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, normalized.QualifiedCourses)
	assert.Equal(t, [][2]int{{0, 2}, {4, 5}}, normalized.UnavailableSlots)
}

func TestNormalizeFacultyRejectsMissingID(t *testing.T) {
	_, err := NormalizeFaculty(models.FacultyProfile{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResource.Code, appErrors.FromError(err).Code)
}

func TestNormalizeBatch(t *testing.T) {
	normalized, err := NormalizeBatch(models.Batch{ID: "b1", Strength: 55})
	require.NoError(t, err)
	assert.Equal(t, "b1", normalized.ID)
	assert.Equal(t, 55, normalized.StudentCount)

	_, err = NormalizeBatch(models.Batch{ID: "b1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResource.Code, appErrors.FromError(err).Code)
}
