package services

import (
	"context"

	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/app/repositories"
)

// ModuleStore looks up and creates modules by code.
type ModuleStore interface {
	GetByCode(ctx context.Context, code string) (*models.Module, error)
	Create(ctx context.Context, module *models.Module) error
}

// VenueStore looks up and creates venues by name.
type VenueStore interface {
	GetByName(ctx context.Context, name string) (*models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) error
}

// LecturerStore looks up and creates lecturers by name.
type LecturerStore interface {
	GetByName(ctx context.Context, name string) (*models.Lecturer, error)
	Create(ctx context.Context, lecturer *models.Lecturer) error
}

// ProgrammeStore looks up and creates programmes by name.
type ProgrammeStore interface {
	GetByName(ctx context.Context, name string) (*models.Programme, error)
	Create(ctx context.Context, programme *models.Programme) error
}

// ExamStore checks and inserts exams. Create returns apperrors.ErrDuplicateRecord
// when a concurrent writer took the slot first.
type ExamStore interface {
	Exists(ctx context.Context, slot models.ExamSlot) (bool, error)
	Create(ctx context.Context, exam *models.Exam) error
}

// SessionStore checks and inserts weekly sessions.
type SessionStore interface {
	Exists(ctx context.Context, slot models.SessionSlot) (bool, error)
	Create(ctx context.Context, session *models.Session) error
}

// EnrollmentStore lists students enrolled in a module.
type EnrollmentStore interface {
	ActiveStudentIDs(ctx context.Context, moduleID int64) ([]int64, error)
}

// NotificationStore records notifications; false means one already existed.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) (bool, error)
}

// ReferenceStores groups the stores the resolver creates rows in.
type ReferenceStores struct {
	Modules    ModuleStore
	Venues     VenueStore
	Lecturers  LecturerStore
	Programmes ProgrammeStore
}

// ImportStores groups every store a commit writes to.
type ImportStores struct {
	ReferenceStores
	Exams    ExamStore
	Sessions SessionStore
}

// NewImportStores adapts the repository container.
func NewImportStores(repos *repositories.Repositories) ImportStores {
	return ImportStores{
		ReferenceStores: ReferenceStores{
			Modules:    repos.ModuleRepository,
			Venues:     repos.VenueRepository,
			Lecturers:  repos.LecturerRepository,
			Programmes: repos.ProgrammeRepository,
		},
		Exams:    repos.ExamRepository,
		Sessions: repos.SessionRepository,
	}
}
