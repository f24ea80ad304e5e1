package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

func theorySubject(id, name string, sessions int) models.Subject {
	return models.Subject{ID: id, Name: name, Type: models.SubjectTypeTheory, SessionsPerWeek: sessions}
}

func practicalSubject(id, name string, sessions int) models.Subject {
	return models.Subject{ID: id, Name: name, Type: models.SubjectTypePractical, SessionsPerWeek: sessions}
}

func qualifiedFaculty(id, name string, subjectIDs ...string) models.FacultyProfile {
	return models.FacultyProfile{
		Faculty:             models.Faculty{ID: id, FullName: name},
		QualifiedSubjectIDs: subjectIDs,
	}
}

func TestDeriveTheoryAndPractical(t *testing.T) {
	deriver := NewDeriver(nil, nil)

	batches := []models.BatchCurriculum{{
		Batch: models.Batch{ID: "g1", Name: "CSE-A", Strength: 60},
		Subjects: []models.Subject{
			theorySubject("c1", "Discrete Math", 4),
			practicalSubject("c2", "DBMS Lab", 2),
		},
	}}
	faculty := []models.FacultyProfile{
		qualifiedFaculty("t1", "Prof. Iyer", "c1"),
		qualifiedFaculty("t2", "Prof. Menon", "c2"),
	}

	derivation, err := deriver.Derive(batches, faculty)
	require.NoError(t, err)
	require.Len(t, derivation.Requirements, 2)
	assert.Empty(t, derivation.Skipped)

	assert.Equal(t, dto.EngineRequirement{
		GroupID:         "g1",
		TeacherID:       "t1",
		CourseID:        "c1",
		DurationSlots:   1,
		SessionsPerWeek: 4,
		RequiresLab:     false,
	}, derivation.Requirements[0])
	assert.Equal(t, dto.EngineRequirement{
		GroupID:         "g1",
		TeacherID:       "t2",
		CourseID:        "c2",
		DurationSlots:   3,
		SessionsPerWeek: 2,
		RequiresLab:     true,
	}, derivation.Requirements[1])
}

func TestDeriveSkipsPairWithoutQualifiedTeacher(t *testing.T) {
	deriver := NewDeriver(nil, nil)

	batches := []models.BatchCurriculum{{
		Batch:    models.Batch{ID: "g2", Name: "ECE-B", Strength: 40},
		Subjects: []models.Subject{theorySubject("c3", "Signals", 3)},
	}}

	derivation, err := deriver.Derive(batches, nil)
	require.NoError(t, err)
	assert.Empty(t, derivation.Requirements)
	require.Len(t, derivation.Skipped, 1)
	assert.Equal(t, "g2", derivation.Skipped[0].BatchID)
	assert.Equal(t, "c3", derivation.Skipped[0].SubjectID)
	// the course still shows up in the resource list
	require.Len(t, derivation.Courses, 1)
	assert.Equal(t, "c3", derivation.Courses[0].ID)
}

func TestDeriveOneRequirementPerPair(t *testing.T) {
	deriver := NewDeriver(nil, nil)

	shared := theorySubject("c1", "Mathematics", 4)
	batches := []models.BatchCurriculum{
		{Batch: models.Batch{ID: "g1", Name: "A", Strength: 60}, Subjects: []models.Subject{shared}},
		{Batch: models.Batch{ID: "g2", Name: "B", Strength: 50}, Subjects: []models.Subject{shared}},
	}
	faculty := []models.FacultyProfile{qualifiedFaculty("t1", "Prof. Iyer", "c1")}

	derivation, err := deriver.Derive(batches, faculty)
	require.NoError(t, err)

	counts := map[[2]string]int{}
	for _, req := range derivation.Requirements {
		counts[[2]string{req.GroupID, req.CourseID}]++
	}
	assert.Equal(t, 1, counts[[2]string{"g1", "c1"}])
	assert.Equal(t, 1, counts[[2]string{"g2", "c1"}])
	// shared course is deduplicated in the resource list
	require.Len(t, derivation.Courses, 1)
}

func TestDeriveFirstMatchTeacherSelection(t *testing.T) {
	deriver := NewDeriver(nil, nil)

	batches := []models.BatchCurriculum{{
		Batch:    models.Batch{ID: "g1", Name: "A", Strength: 60},
		Subjects: []models.Subject{theorySubject("c1", "Mathematics", 4)},
	}}
	faculty := []models.FacultyProfile{
		qualifiedFaculty("t9", "Prof. Early", "c1"),
		qualifiedFaculty("t1", "Prof. Late", "c1"),
	}

	derivation, err := deriver.Derive(batches, faculty)
	require.NoError(t, err)
	require.Len(t, derivation.Requirements, 1)
	assert.Equal(t, "t9", derivation.Requirements[0].TeacherID, "first qualified teacher in listing order wins")
}

func TestDeriveFailsOnUnresolvedBatch(t *testing.T) {
	deriver := NewDeriver(nil, nil)

	batches := []models.BatchCurriculum{{
		Batch:    models.Batch{Name: "ghost"},
		Subjects: []models.Subject{theorySubject("c1", "Mathematics", 4)},
	}}

	_, err := deriver.Derive(batches, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnresolvedGroup.Code, appErrors.FromError(err).Code)
}

func TestDeriveIsIdempotent(t *testing.T) {
	deriver := NewDeriver(nil, nil)

	batches := []models.BatchCurriculum{{
		Batch: models.Batch{ID: "g1", Name: "A", Strength: 60},
		Subjects: []models.Subject{
			theorySubject("c1", "Mathematics", 4),
			practicalSubject("c2", "Physics Lab", 2),
		},
	}}
	faculty := []models.FacultyProfile{qualifiedFaculty("t1", "Prof. Iyer", "c1", "c2")}

	first, err := deriver.Derive(batches, faculty)
	require.NoError(t, err)
	second, err := deriver.Derive(batches, faculty)
	require.NoError(t, err)
	assert.ElementsMatch(t, first.Requirements, second.Requirements)
	assert.ElementsMatch(t, first.Courses, second.Courses)
}

func TestDurationSlots(t *testing.T) {
	assert.Equal(t, 3, DurationSlots(models.SubjectTypePractical))
	assert.Equal(t, 1, DurationSlots(models.SubjectTypeTheory))
	assert.Equal(t, 1, DurationSlots(models.SubjectType("Seminar")))
}
