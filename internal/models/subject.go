package models

import "time"

// SubjectType distinguishes theory lectures from practical lab sessions.
type SubjectType string

const (
	SubjectTypeTheory    SubjectType = "Theory"
	SubjectTypePractical SubjectType = "Practical"
)

// Subject represents a course taught a fixed number of times per week.
type Subject struct {
	ID              string      `db:"id" json:"id"`
	Code            string      `db:"code" json:"code"`
	Name            string      `db:"name" json:"name"`
	Type            SubjectType `db:"type" json:"type"`
	SessionsPerWeek int         `db:"sessions_per_week" json:"sessions_per_week"`
	BatchID         string      `db:"batch_id" json:"batch_id"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	BatchID   string
	Type      string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
