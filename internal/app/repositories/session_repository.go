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

const sessionSlotConstraint = "sessions_slot_key"

// SessionRepository handles database operations for weekly sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Exists reports whether a session occupies the weekly slot
func (r *SessionRepository) Exists(ctx context.Context, slot models.SessionSlot) (bool, error) {
	start, err := helpers.TimeOfDay(slot.StartTime)
	if err != nil {
		return false, fmt.Errorf("invalid session start time: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM sessions
			WHERE module_id = $1
			  AND day_of_week = $2
			  AND start_time = $3
			  AND venue_id IS NOT DISTINCT FROM $4
		)`,
		slot.ModuleID, slot.DayOfWeek, start, slot.VenueID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking session existence: %w", err)
	}

	return exists, nil
}

// Create inserts a session and sets its ID
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	start, err := helpers.TimeOfDay(session.StartTime)
	if err != nil {
		return fmt.Errorf("invalid session start time: %w", err)
	}
	end, err := helpers.TimeOfDay(session.EndTime)
	if err != nil {
		return fmt.Errorf("invalid session end time: %w", err)
	}

	query := `
		INSERT INTO sessions (module_id, lecturer_id, venue_id, day_of_week, start_time, end_time,
			programme_id, year_level, semester)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		session.ModuleID,
		session.LecturerID,
		session.VenueID,
		session.DayOfWeek,
		start,
		end,
		session.ProgrammeID,
		session.YearLevel,
		session.Semester,
	).Scan(&session.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, sessionSlotConstraint) {
			return apperrors.ErrDuplicateRecord
		}
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("session references a missing row: %w", err)
		}
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}
