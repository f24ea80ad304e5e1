package models

import "time"

// Faculty represents an instructor record.
type Faculty struct {
	ID               string    `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"full_name"`
	Email            string    `db:"email" json:"email"`
	MaxClassesPerDay int       `db:"max_classes_per_day" json:"max_classes_per_day"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// SlotRef marks one (day, slot) cell of the weekly grid. Day 0 is Monday and
// slot 0 is the first period; every renderer shares this convention.
type SlotRef struct {
	Day  int `db:"day" json:"day"`
	Slot int `db:"slot" json:"slot"`
}

// FacultyProfile is the aggregate the scheduling compiler consumes: the
// faculty row plus qualifications and unavailability markers.
type FacultyProfile struct {
	Faculty
	QualifiedSubjectIDs []string  `json:"qualified_subject_ids"`
	Unavailable         []SlotRef `json:"unavailable_slots"`
}

// FacultyFilter captures filtering options for listing faculty.
type FacultyFilter struct {
	Search    string
	SubjectID string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
