package scheduling

import "github.com/acadsync/timetable-api/internal/models"

// TeacherSelectionPolicy resolves which faculty member teaches a subject for
// a batch. Kept behind an interface so load-balancing or preference-based
// selection can replace the shipped policy without touching the compiler.
type TeacherSelectionPolicy interface {
	Select(faculty []models.FacultyProfile, subjectID string) (models.FacultyProfile, bool)
}

// FirstQualified picks the first faculty member, in listing order, whose
// qualification set contains the subject. This is a placeholder assignment
// policy, not a timetabling decision: it ignores existing load entirely.
type FirstQualified struct{}

// Select implements TeacherSelectionPolicy.
func (FirstQualified) Select(faculty []models.FacultyProfile, subjectID string) (models.FacultyProfile, bool) {
	for _, candidate := range faculty {
		for _, qualified := range candidate.QualifiedSubjectIDs {
			if qualified == subjectID {
				return candidate, true
			}
		}
	}
	return models.FacultyProfile{}, false
}
