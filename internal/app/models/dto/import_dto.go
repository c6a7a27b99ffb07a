package dto

// PreviewRequest carries raw document text to parse without persisting.
type PreviewRequest struct {
	Text   string `json:"text" validate:"required"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=auto tabular heuristic"`
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=exam session"`
}

// PreviewRow is one recognized schedule entry as shown to the operator, who
// may edit it before committing.
type PreviewRow struct {
	ModuleCode string `json:"module_code" example:"ACC321"`
	ExamDate   string `json:"exam_date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-11-03"`
	ExamTime   string `json:"exam_time" validate:"required,clock" example:"09:00:00"`
	EndTime    string `json:"end_time,omitempty" validate:"omitempty,clock" example:"12:00:00"`
	Duration   int    `json:"duration,omitempty" validate:"omitempty,min=30,max=300" example:"180"`
	Venue      string `json:"venue,omitempty" validate:"max=255" example:"LECTURE SEMINAR ROOM"`
	Weekday    string `json:"weekday,omitempty" validate:"omitempty,weekday" example:"Monday"`
	Lecturer   string `json:"lecturer,omitempty" validate:"max=255" example:"Dr Smith"`
	Raw        string `json:"raw,omitempty"`
}

// PreviewResponse lists the recognized rows.
type PreviewResponse struct {
	Format string       `json:"format" example:"tabular"`
	Kind   string       `json:"kind" example:"exam"`
	Total  int          `json:"total" example:"1"`
	Rows   []PreviewRow `json:"rows"`
}

// CommitRequest persists previewed (possibly edited) rows.
type CommitRequest struct {
	Kind      string       `json:"kind,omitempty" validate:"omitempty,oneof=exam session"`
	Status    string       `json:"status,omitempty" validate:"omitempty,oneof=draft final"`
	Programme string       `json:"programme,omitempty" validate:"max=255"`
	YearLevel *int         `json:"yearLevel,omitempty" validate:"omitempty,min=1,max=10"`
	Semester  *int         `json:"semester,omitempty" validate:"omitempty,min=1,max=3"`
	Rows      []PreviewRow `json:"rows" validate:"required,min=1"`
}

// SkipReason explains why one row was not imported and identifies the row
// by its schedule fields.
type SkipReason struct {
	Row        int    `json:"row" example:"3"`
	ModuleCode string `json:"module_code,omitempty" example:"ACC321"`
	ExamDate   string `json:"exam_date,omitempty" example:"2025-11-03"`
	ExamTime   string `json:"exam_time,omitempty" example:"09:00:00"`
	Venue      string `json:"venue,omitempty" example:"Hall A"`
	Weekday    string `json:"weekday,omitempty" example:"Monday"`
	Reason     string `json:"reason" example:"duplicate"`
}

// NotificationFailure names a student whose notification could not be written.
type NotificationFailure struct {
	ExamID    int64  `json:"exam_id" example:"17"`
	StudentID int64  `json:"student_id,omitempty" example:"1042"`
	Error     string `json:"error" example:"connection reset"`
}

// NotificationSummary reports the notification fan-out of a commit.
type NotificationSummary struct {
	Sent   int                   `json:"sent" example:"42"`
	Failed []NotificationFailure `json:"failed"`
}

// CommitResponse summarizes an import run.
type CommitResponse struct {
	RunID         string              `json:"run_id" example:"6f1c2a52-4a0e-4f3e-9a43-5d0c8d1f7b21"`
	Kind          string              `json:"kind" example:"exam"`
	Total         int                 `json:"total" example:"10"`
	Created       int                 `json:"created" example:"8"`
	Skipped       int                 `json:"skipped" example:"2"`
	SkipReasons   []SkipReason        `json:"skip_reasons"`
	Notifications NotificationSummary `json:"notifications"`
}
