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

// VenueRepository handles database operations for venues
type VenueRepository struct {
	db *pgxpool.Pool
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{
		db: db,
	}
}

// GetByName retrieves a venue by its exact name
func (r *VenueRepository) GetByName(ctx context.Context, name string) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.QueryRow(ctx, `
		SELECT id, name, capacity
		FROM venues
		WHERE name = $1`,
		name).Scan(&venue.ID, &venue.Name, &venue.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("venue %q not found", name))
		}
		return nil, fmt.Errorf("error retrieving venue: %w", err)
	}

	return &venue, nil
}

// Create inserts a venue and sets its ID
func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO venues (name, capacity)
		VALUES ($1, $2)
		RETURNING id`,
		venue.Name, venue.Capacity).Scan(&venue.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("venue %q already exists", venue.Name))
		}
		return fmt.Errorf("error creating venue: %w", err)
	}

	return nil
}
