package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
)

type idSeq struct{ n int64 }

func (s *idSeq) next() int64 {
	s.n++
	return s.n
}

type fakeModules struct {
	seq     *idSeq
	byCode  map[string]*models.Module
	lookups int
	creates int
}

func (f *fakeModules) GetByCode(_ context.Context, code string) (*models.Module, error) {
	f.lookups++
	if m, ok := f.byCode[code]; ok {
		return m, nil
	}
	return nil, apperrors.NewResourceNotFoundError("Module not found")
}

func (f *fakeModules) Create(_ context.Context, m *models.Module) error {
	f.creates++
	m.ID = f.seq.next()
	f.byCode[m.Code] = m
	return nil
}

// fakeNamed stores venues, lecturers and programmes keyed by name. When race
// is set, Create behaves as if another writer inserted the row first.
type fakeNamed[T any] struct {
	seq     *idSeq
	byName  map[string]*T
	name    func(*T) string
	setID   func(*T, int64)
	race    bool
	lookups int
	creates int
}

func newFakeNamed[T any](seq *idSeq, name func(*T) string, setID func(*T, int64)) *fakeNamed[T] {
	return &fakeNamed[T]{seq: seq, byName: make(map[string]*T), name: name, setID: setID}
}

func (f *fakeNamed[T]) GetByName(_ context.Context, name string) (*T, error) {
	f.lookups++
	if v, ok := f.byName[name]; ok {
		return v, nil
	}
	return nil, apperrors.NewResourceNotFoundError("not found")
}

func (f *fakeNamed[T]) Create(_ context.Context, v *T) error {
	f.creates++
	f.setID(v, f.seq.next())
	f.byName[f.name(v)] = v
	if f.race {
		f.race = false
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "already exists")
	}
	return nil
}

func sameVenue(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type fakeExams struct {
	seq       *idSeq
	rows      []*models.Exam
	createErr func(*models.Exam) error
}

func (f *fakeExams) Exists(_ context.Context, slot models.ExamSlot) (bool, error) {
	for _, e := range f.rows {
		if e.ModuleID == slot.ModuleID && e.ExamDate.Equal(slot.ExamDate) &&
			e.StartTime == slot.StartTime && sameVenue(e.VenueID, slot.VenueID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeExams) Create(_ context.Context, e *models.Exam) error {
	if f.createErr != nil {
		if err := f.createErr(e); err != nil {
			return err
		}
	}
	e.ID = f.seq.next()
	e.CreatedAt = time.Now()
	f.rows = append(f.rows, e)
	return nil
}

type fakeSessions struct {
	seq  *idSeq
	rows []*models.Session
}

func (f *fakeSessions) Exists(_ context.Context, slot models.SessionSlot) (bool, error) {
	for _, s := range f.rows {
		if s.ModuleID == slot.ModuleID && s.DayOfWeek == slot.DayOfWeek &&
			s.StartTime == slot.StartTime && sameVenue(s.VenueID, slot.VenueID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessions) Create(_ context.Context, s *models.Session) error {
	s.ID = f.seq.next()
	f.rows = append(f.rows, s)
	return nil
}

type fakeEnrollments struct {
	byModule map[int64][]int64
	err      error
}

func (f *fakeEnrollments) ActiveStudentIDs(_ context.Context, moduleID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byModule[moduleID], nil
}

type fakeNotifications struct {
	seq     *idSeq
	rows    map[[2]int64]*models.Notification
	failFor map[int64]error
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) (bool, error) {
	if err := f.failFor[n.StudentID]; err != nil {
		return false, err
	}
	key := [2]int64{n.StudentID, n.ExamID}
	if _, ok := f.rows[key]; ok {
		return false, nil
	}
	n.ID = f.seq.next()
	f.rows[key] = n
	return true, nil
}

type heldLocker struct{}

func (heldLocker) Lock(context.Context) (func(), error) {
	return nil, errors.Join(errors.New("advisory lock is held"), apperrors.ErrImportInProgress)
}

// harness wires the import service to in-memory stores.
type harness struct {
	modules       *fakeModules
	venues        *fakeNamed[models.Venue]
	lecturers     *fakeNamed[models.Lecturer]
	programmes    *fakeNamed[models.Programme]
	exams         *fakeExams
	sessions      *fakeSessions
	enrollments   *fakeEnrollments
	notifications *fakeNotifications
	locker        Locker
	settings      ImportSettings
}

func newHarness() *harness {
	seq := &idSeq{}
	return &harness{
		modules: &fakeModules{seq: seq, byCode: make(map[string]*models.Module)},
		venues: newFakeNamed(seq,
			func(v *models.Venue) string { return v.Name },
			func(v *models.Venue, id int64) { v.ID = id }),
		lecturers: newFakeNamed(seq,
			func(l *models.Lecturer) string { return l.Name },
			func(l *models.Lecturer, id int64) { l.ID = id }),
		programmes: newFakeNamed(seq,
			func(p *models.Programme) string { return p.Name },
			func(p *models.Programme, id int64) { p.ID = id }),
		exams:         &fakeExams{seq: seq},
		sessions:      &fakeSessions{seq: seq},
		enrollments:   &fakeEnrollments{byModule: make(map[int64][]int64)},
		notifications: &fakeNotifications{seq: seq, rows: make(map[[2]int64]*models.Notification)},
		locker:        NewLocalLocker(),
		settings:      ImportSettings{DefaultDurationMinutes: 180, MaxTextBytes: 1 << 20},
	}
}

func (h *harness) referenceStores() ReferenceStores {
	return ReferenceStores{
		Modules:    h.modules,
		Venues:     h.venues,
		Lecturers:  h.lecturers,
		Programmes: h.programmes,
	}
}

func (h *harness) service() ImportService {
	stores := ImportStores{
		ReferenceStores: h.referenceStores(),
		Exams:           h.exams,
		Sessions:        h.sessions,
	}
	notifier := NewNotificationService(h.enrollments, h.notifications, zerolog.Nop())
	return NewImportService(stores, notifier, h.locker, h.settings, zerolog.Nop())
}

// seedModule creates a module ahead of an import so enrollments can refer to it.
func (h *harness) seedModule(code string) int64 {
	m := &models.Module{Code: code, Name: code}
	_ = h.modules.Create(context.Background(), m)
	h.modules.creates = 0
	return m.ID
}
