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

// ModuleRepository handles database operations for modules
type ModuleRepository struct {
	db *pgxpool.Pool
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{
		db: db,
	}
}

// GetByCode retrieves a module by its exact code
func (r *ModuleRepository) GetByCode(ctx context.Context, code string) (*models.Module, error) {
	query := `
		SELECT id, code, name, credits
		FROM modules
		WHERE code = $1
	`

	var module models.Module
	err := r.db.QueryRow(ctx, query, code).Scan(
		&module.ID,
		&module.Code,
		&module.Name,
		&module.Credits,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("module %s not found", code))
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}

	return &module, nil
}

// Create inserts a module and sets its ID
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	query := `
		INSERT INTO modules (code, name, credits)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, module.Code, module.Name, module.Credits).Scan(&module.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("module %s already exists", module.Code))
		}
		return fmt.Errorf("error creating module: %w", err)
	}

	return nil
}
