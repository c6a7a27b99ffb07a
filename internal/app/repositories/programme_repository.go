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

// ProgrammeRepository handles database operations for programmes
type ProgrammeRepository struct {
	db *pgxpool.Pool
}

// NewProgrammeRepository creates a new programme repository
func NewProgrammeRepository(db *pgxpool.Pool) *ProgrammeRepository {
	return &ProgrammeRepository{
		db: db,
	}
}

// GetByName retrieves a programme by exact name
func (r *ProgrammeRepository) GetByName(ctx context.Context, name string) (*models.Programme, error) {
	var programme models.Programme
	err := r.db.QueryRow(ctx, `
		SELECT id, name, code
		FROM programmes
		WHERE name = $1`,
		name).Scan(&programme.ID, &programme.Name, &programme.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("programme %q not found", name))
		}
		return nil, fmt.Errorf("error retrieving programme: %w", err)
	}

	return &programme, nil
}

// Create inserts a programme and sets its ID
func (r *ProgrammeRepository) Create(ctx context.Context, programme *models.Programme) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO programmes (name, code)
		VALUES ($1, $2)
		RETURNING id`,
		programme.Name, programme.Code).Scan(&programme.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("programme %q already exists", programme.Name))
		}
		return fmt.Errorf("error creating programme: %w", err)
	}

	return nil
}
