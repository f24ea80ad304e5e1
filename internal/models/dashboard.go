package models

import "time"

// AdminStats aggregates entity counts for the admin dashboard.
type AdminStats struct {
	Students         int `json:"students"`
	Faculty          int `json:"faculty"`
	Batches          int `json:"batches"`
	Rooms            int `json:"rooms"`
	Subjects         int `json:"subjects"`
	TimetableEntries int `json:"timetable_entries"`
}

// FacultyDashboard summarises one instructor's teaching situation.
type FacultyDashboard struct {
	Profile          Faculty                `json:"profile"`
	QualifiedSubject []Subject              `json:"qualified_subjects"`
	TodaysClasses    []TimetableEntryDetail `json:"todays_classes"`
	WeeklySlots      int                    `json:"weekly_slots"`
	DistinctBatches  int                    `json:"distinct_batches"`
}

// SubjectWithTeacher pairs a curriculum subject with the faculty member the
// generated timetable assigned to it, when one exists.
type SubjectWithTeacher struct {
	Subject
	AssignedTeacher *Faculty `json:"assigned_teacher,omitempty"`
}

// StudentDashboard summarises a student's batch and curriculum.
type StudentDashboard struct {
	Profile  StudentDetail        `json:"profile"`
	Subjects []SubjectWithTeacher `json:"subjects"`
}

// SystemMetrics is the aggregate runtime snapshot served on the admin
// dashboard alongside entity counts.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"avg_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"avg_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
