package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ModuleRepository       *ModuleRepository
	VenueRepository        *VenueRepository
	LecturerRepository     *LecturerRepository
	ProgrammeRepository    *ProgrammeRepository
	ExamRepository         *ExamRepository
	SessionRepository      *SessionRepository
	EnrollmentRepository   *EnrollmentRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ModuleRepository:       NewModuleRepository(db),
		VenueRepository:        NewVenueRepository(db),
		LecturerRepository:     NewLecturerRepository(db),
		ProgrammeRepository:    NewProgrammeRepository(db),
		ExamRepository:         NewExamRepository(db),
		SessionRepository:      NewSessionRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
