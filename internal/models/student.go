package models

import "time"

// Student represents an enrolled student assigned to a batch.
type Student struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	BatchID   string    `db:"batch_id" json:"batch_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail joins the student with its batch name for display.
type StudentDetail struct {
	Student
	BatchName string `db:"batch_name" json:"batch_name"`
}

// StudentFilter captures filtering options for listing students.
type StudentFilter struct {
	BatchID   string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
