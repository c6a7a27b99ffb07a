package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
	"github.com/yigit/timetabler/internal/pkg/dberrors"
)

// LecturerRepository handles database operations for lecturers
type LecturerRepository struct {
	db *pgxpool.Pool
}

// NewLecturerRepository creates a new lecturer repository
func NewLecturerRepository(db *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{
		db: db,
	}
}

// GetByName retrieves a lecturer by exact name
func (r *LecturerRepository) GetByName(ctx context.Context, name string) (*models.Lecturer, error) {
	var lecturer models.Lecturer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email
		FROM lecturers
		WHERE name = $1`,
		name).Scan(&lecturer.ID, &lecturer.Name, &lecturer.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("lecturer %q not found", name))
		}
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}

	return &lecturer, nil
}

// Create inserts a lecturer and sets its ID
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO lecturers (name, email)
		VALUES ($1, $2)
		RETURNING id`,
		lecturer.Name, lecturer.Email).Scan(&lecturer.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("lecturer %q already exists", lecturer.Name))
		}
		return fmt.Errorf("error creating lecturer: %w", err)
	}

	return nil
}
