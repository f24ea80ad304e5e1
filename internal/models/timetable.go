package models

import "time"

// TimetableEntry is one finalized (day, slot, room, faculty, subject, batch)
// assignment persisted as part of the current timetable. Entries are created
// only by materializing a successful engine response; the whole set is
// replaced as a unit on every generation.
type TimetableEntry struct {
	ID        string    `db:"id" json:"id"`
	Day       int       `db:"day" json:"day"`
	Slot      int       `db:"slot" json:"slot"`
	RoomID    string    `db:"room_id" json:"room_id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	BatchID   string    `db:"batch_id" json:"batch_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TimetableEntryDetail joins an entry with display names for rendering.
type TimetableEntryDetail struct {
	TimetableEntry
	RoomName    string `db:"room_name" json:"room_name"`
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	SubjectCode string `db:"subject_code" json:"subject_code"`
	BatchName   string `db:"batch_name" json:"batch_name"`
}

// TimetableFilter restricts timetable reads to one faculty or batch.
type TimetableFilter struct {
	FacultyID string
	BatchID   string
	Day       *int
}
