package dto

// SkippedPair records a (batch, subject) pair dropped from the compiled
// request because no qualified faculty member exists for it.
type SkippedPair struct {
	BatchID     string `json:"batch_id"`
	BatchName   string `json:"batch_name"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
}

// GenerateTimetableResponse confirms a completed generation run.
type GenerateTimetableResponse struct {
	Message  string        `json:"message"`
	Count    int           `json:"count"`
	Skipped  []SkippedPair `json:"skipped,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}
