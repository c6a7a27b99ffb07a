package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/timetabler/internal/app/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Create records a notification. It reports false when the student already
// has one for the exam.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (bool, error) {
	query := `
		INSERT INTO notifications (student_id, exam_id, message)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, exam_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, n.StudentID, n.ExamID, n.Message).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error creating notification: %w", err)
	}

	return true, nil
}
