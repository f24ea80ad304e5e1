package dto

// Wire contract for the external scheduling engine. The request is
// self-contained: replaying it must not mutate any stored entity.

// EngineMetadata fixes the weekly grid the engine schedules into.
type EngineMetadata struct {
	DaysPerWeek int `json:"days_per_week"`
	SlotsPerDay int `json:"slots_per_day"`
}

// EngineRoom is the normalized wire shape of a classroom.
type EngineRoom struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
	Category string `json:"category"`
}

// EngineTeacher is the normalized wire shape of a faculty member.
// UnavailableSlots is never null: an absent unavailability list is encoded
// as an empty array to keep the contract total.
type EngineTeacher struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	QualifiedCourses []string `json:"qualified_courses"`
	UnavailableSlots [][2]int `json:"unavailable_slots"`
}

// EngineGroup is the normalized wire shape of a batch.
type EngineGroup struct {
	ID           string `json:"id"`
	StudentCount int    `json:"student_count"`
}

// EngineCourse identifies a subject attached to at least one curriculum.
type EngineCourse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EngineRequirement is one derived scheduling obligation: this group needs
// this course taught by this teacher, this many times a week, each session
// occupying this many consecutive slots.
type EngineRequirement struct {
	GroupID         string `json:"group_id"`
	TeacherID       string `json:"teacher_id"`
	CourseID        string `json:"course_id"`
	DurationSlots   int    `json:"duration_slots"`
	SessionsPerWeek int    `json:"sessions_per_week"`
	RequiresLab     bool   `json:"requires_lab"`
}

// EngineResources groups the normalized resource collections.
type EngineResources struct {
	Rooms    []EngineRoom    `json:"rooms"`
	Teachers []EngineTeacher `json:"teachers"`
	Groups   []EngineGroup   `json:"groups"`
	Courses  []EngineCourse  `json:"courses"`
}

// EngineRequest is the full payload posted to the engine.
type EngineRequest struct {
	Metadata     EngineMetadata      `json:"metadata"`
	Resources    EngineResources     `json:"resources"`
	Requirements []EngineRequirement `json:"requirements"`
}

// EngineStatusSuccess is the only status that permits materialization.
const EngineStatusSuccess = "success"

// EngineScheduleEntry is one assignment in the engine's answer. Day and Slot
// are pointers so a missing field is distinguishable from slot zero.
type EngineScheduleEntry struct {
	Day       *int   `json:"day"`
	Slot      *int   `json:"slot"`
	RoomID    string `json:"room_id"`
	TeacherID string `json:"teacher_id"`
	CourseID  string `json:"course_id"`
	GroupID   string `json:"group_id"`
}

// EngineResponse is the engine's reply to a scheduling request.
type EngineResponse struct {
	Status   string                `json:"status"`
	Schedule []EngineScheduleEntry `json:"schedule"`
}
