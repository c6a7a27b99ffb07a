package models

import "time"

// Notification records the decision to tell a student about a new exam.
// Delivery happens elsewhere.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	ExamID    int64     `json:"examId" db:"exam_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Enrollment links a student to a module.
type Enrollment struct {
	StudentID int64 `json:"studentId" db:"student_id"`
	ModuleID  int64 `json:"moduleId" db:"module_id"`
	Active    bool  `json:"active" db:"active"`
}
