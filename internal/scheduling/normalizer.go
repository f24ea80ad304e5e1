package scheduling

import (
	"fmt"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

// Pure representation mapping from domain entities to the engine wire shapes.
// No business logic lives here beyond the shape translation itself.

// RoomCategory maps the administrative room type onto the engine vocabulary.
// The mapping is total: anything that is not a laboratory is a lecture hall.
func RoomCategory(t models.RoomType) string {
	if t == models.RoomTypeLaboratory {
		return CategoryComputerLab
	}
	return CategoryLectureHall
}

// NormalizeRoom translates a classroom into its wire shape.
func NormalizeRoom(room models.Room) (dto.EngineRoom, error) {
	if room.ID == "" {
		return dto.EngineRoom{}, appErrors.Clone(appErrors.ErrMalformedResource, "room is missing an id")
	}
	if room.Capacity <= 0 {
		return dto.EngineRoom{}, appErrors.Clone(appErrors.ErrMalformedResource, fmt.Sprintf("room %s has non-positive capacity %d", room.ID, room.Capacity))
	}
	return dto.EngineRoom{
		ID:       room.ID,
		Capacity: room.Capacity,
		Category: RoomCategory(room.Type),
	}, nil
}

// NormalizeFaculty translates an instructor profile into its wire shape.
// Both list fields are materialized as empty slices when absent so the
// payload never carries a null.
func NormalizeFaculty(profile models.FacultyProfile) (dto.EngineTeacher, error) {
	if profile.ID == "" {
		return dto.EngineTeacher{}, appErrors.Clone(appErrors.ErrMalformedResource, "faculty record is missing an id")
	}
	qualified := profile.QualifiedSubjectIDs
	if qualified == nil {
		qualified = []string{}
	}
	unavailable := make([][2]int, 0, len(profile.Unavailable))
	for _, ref := range profile.Unavailable {
		unavailable = append(unavailable, [2]int{ref.Day, ref.Slot})
	}
	return dto.EngineTeacher{
		ID:               profile.ID,
		Name:             profile.FullName,
		QualifiedCourses: qualified,
		UnavailableSlots: unavailable,
	}, nil
}

// NormalizeBatch translates a batch into its wire group shape.
func NormalizeBatch(batch models.Batch) (dto.EngineGroup, error) {
	if batch.ID == "" {
		return dto.EngineGroup{}, appErrors.Clone(appErrors.ErrMalformedResource, "batch is missing an id")
	}
	if batch.Strength <= 0 {
		return dto.EngineGroup{}, appErrors.Clone(appErrors.ErrMalformedResource, fmt.Sprintf("batch %s has non-positive strength %d", batch.ID, batch.Strength))
	}
	return dto.EngineGroup{
		ID:           batch.ID,
		StudentCount: batch.Strength,
	}, nil
}
