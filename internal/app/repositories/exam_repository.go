package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
	"github.com/yigit/timetabler/internal/pkg/dberrors"
	"github.com/yigit/timetabler/internal/pkg/helpers"
)

// examSlotConstraint is the unique index over (module_id, exam_date,
// start_time, venue_id), declared NULLS NOT DISTINCT.
const examSlotConstraint = "exams_slot_key"

// ExamRepository handles database operations for exams
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
	}
}

// Exists reports whether an exam occupies the slot. A nil venue matches only
// exams recorded without a venue.
func (r *ExamRepository) Exists(ctx context.Context, slot models.ExamSlot) (bool, error) {
	start, err := helpers.TimeOfDay(slot.StartTime)
	if err != nil {
		return false, fmt.Errorf("invalid exam start time: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM exams
			WHERE module_id = $1
			  AND exam_date = $2
			  AND start_time = $3
			  AND venue_id IS NOT DISTINCT FROM $4
		)`,
		slot.ModuleID, slot.ExamDate, start, slot.VenueID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking exam existence: %w", err)
	}

	return exists, nil
}

// Create inserts an exam and sets its ID and creation time
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	start, err := helpers.TimeOfDay(exam.StartTime)
	if err != nil {
		return fmt.Errorf("invalid exam start time: %w", err)
	}

	query := `
		INSERT INTO exams (module_id, venue_id, exam_date, start_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		exam.ModuleID,
		exam.VenueID,
		exam.ExamDate,
		start,
		exam.DurationMinutes,
		string(exam.Status),
	).Scan(&exam.ID, &exam.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, examSlotConstraint) {
			return apperrors.ErrDuplicateRecord
		}
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("exam references a missing row: %w", err)
		}
		return fmt.Errorf("error creating exam: %w", err)
	}

	return nil
}
