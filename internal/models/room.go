package models

import "time"

// RoomType is the administrative classification of a classroom.
type RoomType string

const (
	RoomTypeClassroom  RoomType = "Classroom"
	RoomTypeLaboratory RoomType = "Laboratory"
)

// Room represents a physical classroom or laboratory.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Type      RoomType  `db:"type" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures filtering options for listing rooms.
type RoomFilter struct {
	Type      string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
