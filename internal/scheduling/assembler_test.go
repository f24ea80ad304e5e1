package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Rooms: []models.Room{
			{ID: "r1", Name: "LH-101", Capacity: 70, Type: models.RoomTypeClassroom},
			{ID: "r2", Name: "Lab-1", Capacity: 35, Type: models.RoomTypeLaboratory},
		},
		Faculty: []models.FacultyProfile{
			{Faculty: models.Faculty{ID: "t1", FullName: "Prof. Iyer"}, QualifiedSubjectIDs: []string{"c1"}},
			{Faculty: models.Faculty{ID: "t2", FullName: "Prof. Menon"}, QualifiedSubjectIDs: []string{"c2"}},
		},
		Batches: []models.BatchCurriculum{{
			Batch: models.Batch{ID: "g1", Name: "CSE-A", Strength: 60},
			Subjects: []models.Subject{
				{ID: "c1", Name: "Discrete Math", Type: models.SubjectTypeTheory, SessionsPerWeek: 4},
				{ID: "c2", Name: "DBMS Lab", Type: models.SubjectTypePractical, SessionsPerWeek: 2},
			},
		}},
	}
}

func TestAssembleProducesSelfContainedRequest(t *testing.T) {
	assembler := NewAssembler(NewDeriver(nil, nil), dto.EngineMetadata{DaysPerWeek: 5, SlotsPerDay: 6})

	request, skipped, err := assembler.Assemble(sampleSnapshot())
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, 5, request.Metadata.DaysPerWeek)
	assert.Equal(t, 6, request.Metadata.SlotsPerDay)
	require.Len(t, request.Resources.Rooms, 2)
	assert.Equal(t, CategoryLectureHall, request.Resources.Rooms[0].Category)
	assert.Equal(t, CategoryComputerLab, request.Resources.Rooms[1].Category)
	require.Len(t, request.Resources.Teachers, 2)
	for _, teacher := range request.Resources.Teachers {
		assert.NotNil(t, teacher.UnavailableSlots, "payload must never carry null unavailability")
	}
	require.Len(t, request.Resources.Groups, 1)
	assert.Equal(t, 60, request.Resources.Groups[0].StudentCount)
	require.Len(t, request.Resources.Courses, 2)
	require.Len(t, request.Requirements, 2)
}

func TestAssembleDefaultsMetadata(t *testing.T) {
	assembler := NewAssembler(nil, dto.EngineMetadata{})

	request, _, err := assembler.Assemble(Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, DefaultDaysPerWeek, request.Metadata.DaysPerWeek)
	assert.Equal(t, DefaultSlotsPerDay, request.Metadata.SlotsPerDay)
}

func TestAssembleIdempotent(t *testing.T) {
	assembler := NewAssembler(NewDeriver(nil, nil), dto.EngineMetadata{})
	snap := sampleSnapshot()

	first, _, err := assembler.Assemble(snap)
	require.NoError(t, err)
	second, _, err := assembler.Assemble(snap)
	require.NoError(t, err)
	assert.ElementsMatch(t, first.Requirements, second.Requirements)
	assert.ElementsMatch(t, first.Resources.Courses, second.Resources.Courses)
}

func TestAssemblePropagatesMalformedResource(t *testing.T) {
	assembler := NewAssembler(nil, dto.EngineMetadata{})
	snap := sampleSnapshot()
	snap.Rooms[0].Capacity = 0

	_, _, err := assembler.Assemble(snap)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMalformedResource.Code, appErrors.FromError(err).Code)
}
