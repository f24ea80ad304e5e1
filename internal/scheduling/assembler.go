package scheduling

import (
	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/models"
)

// Snapshot is the relational state the compiler reads: every room, every
// instructor profile, and every batch with its curriculum.
type Snapshot struct {
	Rooms   []models.Room
	Faculty []models.FacultyProfile
	Batches []models.BatchCurriculum
}

// Assembler packages normalized resources, derived requirements, and grid
// metadata into the self-contained engine request. Assembling is stateless:
// compiling the same snapshot twice yields equal requests up to ordering,
// and nothing stored is mutated.
type Assembler struct {
	deriver *Deriver
	meta    dto.EngineMetadata
}

// NewAssembler constructs an Assembler. Zero metadata fields fall back to
// the default weekly grid.
func NewAssembler(deriver *Deriver, meta dto.EngineMetadata) *Assembler {
	if deriver == nil {
		deriver = NewDeriver(nil, nil)
	}
	if meta.DaysPerWeek <= 0 {
		meta.DaysPerWeek = DefaultDaysPerWeek
	}
	if meta.SlotsPerDay <= 0 {
		meta.SlotsPerDay = DefaultSlotsPerDay
	}
	return &Assembler{deriver: deriver, meta: meta}
}

// Assemble compiles the snapshot into the engine wire request. It returns
// the skipped (batch, subject) pairs alongside the request so callers can
// surface them as warnings.
func (a *Assembler) Assemble(snap Snapshot) (*dto.EngineRequest, []dto.SkippedPair, error) {
	rooms := make([]dto.EngineRoom, 0, len(snap.Rooms))
	for _, room := range snap.Rooms {
		normalized, err := NormalizeRoom(room)
		if err != nil {
			return nil, nil, err
		}
		rooms = append(rooms, normalized)
	}

	teachers := make([]dto.EngineTeacher, 0, len(snap.Faculty))
	for _, profile := range snap.Faculty {
		normalized, err := NormalizeFaculty(profile)
		if err != nil {
			return nil, nil, err
		}
		teachers = append(teachers, normalized)
	}

	groups := make([]dto.EngineGroup, 0, len(snap.Batches))
	for _, batch := range snap.Batches {
		normalized, err := NormalizeBatch(batch.Batch)
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, normalized)
	}

	derivation, err := a.deriver.Derive(snap.Batches, snap.Faculty)
	if err != nil {
		return nil, nil, err
	}

	request := &dto.EngineRequest{
		Metadata: a.meta,
		Resources: dto.EngineResources{
			Rooms:    rooms,
			Teachers: teachers,
			Groups:   groups,
			Courses:  derivation.Courses,
		},
		Requirements: derivation.Requirements,
	}
	return request, derivation.Skipped, nil
}
