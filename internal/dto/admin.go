package dto

// Admin CRUD payloads. Validation mirrors the constraints the scheduling
// compiler relies on (positive capacities and session counts, known enums).

// SaveRoomRequest creates or updates a classroom.
type SaveRoomRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Type     string `json:"type" validate:"required,oneof=Classroom Laboratory"`
}

// SaveBatchRequest creates or updates a batch.
type SaveBatchRequest struct {
	Name        string `json:"name" validate:"required"`
	Strength    int    `json:"strength" validate:"required,min=1"`
	YearOfStudy int    `json:"year_of_study" validate:"omitempty,min=1,max=6"`
}

// SaveSubjectRequest creates or updates a subject and attaches it to the
// named batch's curriculum.
type SaveSubjectRequest struct {
	Code            string `json:"code" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=Theory Practical"`
	SessionsPerWeek int    `json:"sessions_per_week" validate:"required,min=1"`
	BatchName       string `json:"batch_name" validate:"required"`
}

// SaveFacultyRequest creates or updates a faculty member together with the
// subject codes they are qualified to teach and their unavailable slots.
type SaveFacultyRequest struct {
	FullName         string      `json:"full_name" validate:"required"`
	Email            string      `json:"email" validate:"required,email"`
	Password         string      `json:"password" validate:"omitempty,min=8"`
	MaxClassesPerDay int         `json:"max_classes_per_day" validate:"omitempty,min=1"`
	SubjectCodes     []string    `json:"qualified_subject_codes"`
	Unavailable      []SlotInput `json:"unavailable_time_slots" validate:"omitempty,dive"`
}

// SlotInput is a (day, slot) marker in admin payloads.
type SlotInput struct {
	Day  int `json:"day" validate:"min=0,max=6"`
	Slot int `json:"slot" validate:"min=0,max=11"`
}

// SaveStudentRequest creates or updates a student.
type SaveStudentRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	BatchName string `json:"batch_name" validate:"required"`
}
