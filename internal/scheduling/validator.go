package scheduling

import (
	"fmt"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

// ValidateResult guards materialization: only a structurally valid,
// success-status engine response may reach the replace step. Slot conflicts
// are not re-checked here; a structurally valid result is trusted.
func ValidateResult(resp *dto.EngineResponse) error {
	if resp == nil {
		return appErrors.Clone(appErrors.ErrMalformedResult, "engine returned an empty response")
	}
	if resp.Status != dto.EngineStatusSuccess {
		return appErrors.Clone(appErrors.ErrNoFeasibleSchedule, fmt.Sprintf("engine returned status %q", resp.Status))
	}
	if resp.Schedule == nil {
		return appErrors.Clone(appErrors.ErrMalformedResult, "engine response is missing the schedule array")
	}
	for i, entry := range resp.Schedule {
		if entry.Day == nil || entry.Slot == nil {
			return appErrors.Clone(appErrors.ErrMalformedResult, fmt.Sprintf("schedule entry %d is missing day or slot", i))
		}
		if *entry.Day < 0 || *entry.Slot < 0 {
			return appErrors.Clone(appErrors.ErrMalformedResult, fmt.Sprintf("schedule entry %d has negative day or slot", i))
		}
		if entry.RoomID == "" || entry.TeacherID == "" || entry.CourseID == "" || entry.GroupID == "" {
			return appErrors.Clone(appErrors.ErrMalformedResult, fmt.Sprintf("schedule entry %d is missing a resource reference", i))
		}
	}
	return nil
}

// MaterializeEntries maps a validated engine schedule field-for-field onto
// timetable entries ready for persistence.
func MaterializeEntries(schedule []dto.EngineScheduleEntry) []models.TimetableEntry {
	entries := make([]models.TimetableEntry, 0, len(schedule))
	for _, item := range schedule {
		entries = append(entries, models.TimetableEntry{
			Day:       *item.Day,
			Slot:      *item.Slot,
			RoomID:    item.RoomID,
			FacultyID: item.TeacherID,
			SubjectID: item.CourseID,
			BatchID:   item.GroupID,
		})
	}
	return entries
}
