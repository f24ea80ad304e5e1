package models

import "time"

// Batch is a cohort of students sharing a curriculum.
type Batch struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Strength    int       `db:"strength" json:"strength"`
	YearOfStudy int       `db:"year_of_study" json:"year_of_study"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BatchCurriculum bundles a batch with the subjects that make up its
// curriculum, as consumed by the scheduling compiler.
type BatchCurriculum struct {
	Batch
	Subjects []Subject `json:"subjects"`
}

// BatchFilter captures filtering options for listing batches.
type BatchFilter struct {
	Year      int
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
