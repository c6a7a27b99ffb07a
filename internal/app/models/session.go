package models

// Session is a recurring weekly class meeting.
type Session struct {
	ID          int64  `json:"id" db:"id"`
	ModuleID    int64  `json:"moduleId" db:"module_id"`
	LecturerID  *int64 `json:"lecturerId,omitempty" db:"lecturer_id"`   // Nullable
	VenueID     *int64 `json:"venueId,omitempty" db:"venue_id"`         // Nullable
	DayOfWeek   string `json:"dayOfWeek" db:"day_of_week"`              // Monday..Sunday
	StartTime   string `json:"startTime" db:"start_time"`               // HH:MM:SS
	EndTime     string `json:"endTime" db:"end_time"`                   // HH:MM:SS
	ProgrammeID *int64 `json:"programmeId,omitempty" db:"programme_id"` // Nullable
	YearLevel   *int   `json:"yearLevel,omitempty" db:"year_level"`     // Nullable
	Semester    *int   `json:"semester,omitempty" db:"semester"`        // Nullable
}

// SessionSlot is the duplicate key of a session.
type SessionSlot struct {
	ModuleID  int64
	DayOfWeek string
	StartTime string
	VenueID   *int64
}

// Slot returns the session's duplicate key.
func (s *Session) Slot() SessionSlot {
	return SessionSlot{ModuleID: s.ModuleID, DayOfWeek: s.DayOfWeek, StartTime: s.StartTime, VenueID: s.VenueID}
}
