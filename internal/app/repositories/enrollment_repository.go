package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository reads module enrollments. The import never writes them.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// ActiveStudentIDs lists students currently enrolled in the module
func (r *EnrollmentRepository) ActiveStudentIDs(ctx context.Context, moduleID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id
		FROM enrollments
		WHERE module_id = $1 AND active
		ORDER BY student_id`,
		moduleID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
