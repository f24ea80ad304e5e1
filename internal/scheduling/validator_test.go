package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/dto"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

func intp(v int) *int { return &v }

func validEntry() dto.EngineScheduleEntry {
	return dto.EngineScheduleEntry{
		Day:       intp(0),
		Slot:      intp(0),
		RoomID:    "r1",
		TeacherID: "t1",
		CourseID:  "c1",
		GroupID:   "g1",
	}
}

func TestValidateResultSuccess(t *testing.T) {
	resp := &dto.EngineResponse{
		Status:   dto.EngineStatusSuccess,
		Schedule: []dto.EngineScheduleEntry{validEntry()},
	}
	require.NoError(t, ValidateResult(resp))
}

func TestValidateResultEmptyScheduleIsValid(t *testing.T) {
	resp := &dto.EngineResponse{Status: dto.EngineStatusSuccess, Schedule: []dto.EngineScheduleEntry{}}
	require.NoError(t, ValidateResult(resp))
}

func TestValidateResultRejectsFailureStatus(t *testing.T) {
	err := ValidateResult(&dto.EngineResponse{Status: "failed"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoFeasibleSchedule.Code, appErrors.FromError(err).Code)
}

func TestValidateResultRejectsMissingSchedule(t *testing.T) {
	err := ValidateResult(&dto.EngineResponse{Status: dto.EngineStatusSuccess})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResult.Code, appErrors.FromError(err).Code)
}

func TestValidateResultRejectsIncompleteEntries(t *testing.T) {
	cases := map[string]func(*dto.EngineScheduleEntry){
		"missing day":     func(e *dto.EngineScheduleEntry) { e.Day = nil },
		"missing slot":    func(e *dto.EngineScheduleEntry) { e.Slot = nil },
		"negative day":    func(e *dto.EngineScheduleEntry) { e.Day = intp(-1) },
		"missing room":    func(e *dto.EngineScheduleEntry) { e.RoomID = "" },
		"missing teacher": func(e *dto.EngineScheduleEntry) { e.TeacherID = "" },
		"missing course":  func(e *dto.EngineScheduleEntry) { e.CourseID = "" },
		"missing group":   func(e *dto.EngineScheduleEntry) { e.GroupID = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			entry := validEntry()
			mutate(&entry)
			err := ValidateResult(&dto.EngineResponse{
				Status:   dto.EngineStatusSuccess,
				Schedule: []dto.EngineScheduleEntry{entry},
			})
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrMalformedResult.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestMaterializeEntriesMapsFieldForField(t *testing.T) {
	entry := validEntry()
	entry.Day = intp(2)
	entry.Slot = intp(4)

	entries := MaterializeEntries([]dto.EngineScheduleEntry{entry})
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Day)
	assert.Equal(t, 4, entries[0].Slot)
	assert.Equal(t, "r1", entries[0].RoomID)
	assert.Equal(t, "t1", entries[0].FacultyID)
	assert.Equal(t, "c1", entries[0].SubjectID)
	assert.Equal(t, "g1", entries[0].BatchID)
}
