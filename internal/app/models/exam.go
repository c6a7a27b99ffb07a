package models

import "time"

// ExamStatus is the publication state of an exam sitting.
type ExamStatus string

const (
	ExamStatusDraft ExamStatus = "draft"
	ExamStatusFinal ExamStatus = "final"
)

// Valid reports whether s is a known status.
func (s ExamStatus) Valid() bool {
	return s == ExamStatusDraft || s == ExamStatusFinal
}

// Exam is a dated sitting of a module. A module may sit in several venues at
// the same date and time; each venue is a separate record.
type Exam struct {
	ID              int64      `json:"id" db:"id"`
	ModuleID        int64      `json:"moduleId" db:"module_id"`
	VenueID         *int64     `json:"venueId,omitempty" db:"venue_id"` // Nullable
	ExamDate        time.Time  `json:"examDate" db:"exam_date"`
	StartTime       string     `json:"startTime" db:"start_time"` // HH:MM:SS
	DurationMinutes int        `json:"durationMinutes" db:"duration_minutes"`
	Status          ExamStatus `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

// ExamSlot is the duplicate key of an exam. A nil venue only matches exams
// without a venue.
type ExamSlot struct {
	ModuleID  int64
	ExamDate  time.Time
	StartTime string
	VenueID   *int64
}

// Slot returns the exam's duplicate key.
func (e *Exam) Slot() ExamSlot {
	return ExamSlot{ModuleID: e.ModuleID, ExamDate: e.ExamDate, StartTime: e.StartTime, VenueID: e.VenueID}
}
