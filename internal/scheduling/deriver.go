package scheduling

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

// Deriver turns batch curricula into scheduling requirements, resolving a
// teacher for every (batch, subject) pair through the configured policy.
type Deriver struct {
	policy TeacherSelectionPolicy
	logger *zap.Logger
}

// NewDeriver constructs a Deriver. A nil policy falls back to first-match
// selection and a nil logger is replaced with a no-op.
func NewDeriver(policy TeacherSelectionPolicy, logger *zap.Logger) *Deriver {
	if policy == nil {
		policy = FirstQualified{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deriver{policy: policy, logger: logger}
}

// Derivation is the output of one derivation pass: the requirement list, the
// deduplicated courses attached to at least one curriculum, and the pairs
// dropped for lack of a qualified teacher.
type Derivation struct {
	Requirements []dto.EngineRequirement
	Courses      []dto.EngineCourse
	Skipped      []dto.SkippedPair
}

// Derive produces exactly one requirement per (batch, subject) pair with a
// resolvable teacher. Pairs with no qualified teacher are dropped with a
// warning, never fabricated. A batch without an id aborts the whole pass.
func (d *Deriver) Derive(batches []models.BatchCurriculum, faculty []models.FacultyProfile) (*Derivation, error) {
	out := &Derivation{
		Requirements: []dto.EngineRequirement{},
		Courses:      []dto.EngineCourse{},
		Skipped:      []dto.SkippedPair{},
	}
	seen := make(map[string]struct{})

	for _, batch := range batches {
		if batch.ID == "" {
			return nil, appErrors.Clone(appErrors.ErrUnresolvedGroup, fmt.Sprintf("batch %q has no id", batch.Name))
		}
		for _, subject := range batch.Subjects {
			if subject.ID == "" {
				return nil, appErrors.Clone(appErrors.ErrMalformedResource, fmt.Sprintf("batch %s curriculum contains a subject with no id", batch.ID))
			}
			if _, ok := seen[subject.ID]; !ok {
				seen[subject.ID] = struct{}{}
				out.Courses = append(out.Courses, dto.EngineCourse{ID: subject.ID, Name: subject.Name})
			}

			teacher, ok := d.policy.Select(faculty, subject.ID)
			if !ok {
				d.logger.Warn("no qualified faculty for subject, dropping requirement",
					zap.String("batch_id", batch.ID),
					zap.String("batch", batch.Name),
					zap.String("subject_id", subject.ID),
					zap.String("subject", subject.Name),
				)
				out.Skipped = append(out.Skipped, dto.SkippedPair{
					BatchID:     batch.ID,
					BatchName:   batch.Name,
					SubjectID:   subject.ID,
					SubjectName: subject.Name,
				})
				continue
			}

			out.Requirements = append(out.Requirements, dto.EngineRequirement{
				GroupID:         batch.ID,
				TeacherID:       teacher.ID,
				CourseID:        subject.ID,
				DurationSlots:   DurationSlots(subject.Type),
				SessionsPerWeek: subject.SessionsPerWeek,
				RequiresLab:     subject.Type == models.SubjectTypePractical,
			})
		}
	}
	return out, nil
}

// DurationSlots encodes the session length policy for a subject type.
func DurationSlots(t models.SubjectType) int {
	if t == models.SubjectTypePractical {
		return PracticalDurationSlots
	}
	return TheoryDurationSlots
}
