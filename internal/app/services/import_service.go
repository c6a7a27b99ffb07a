package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
	"github.com/yigit/timetabler/internal/pkg/timetable"
	"github.com/yigit/timetabler/internal/pkg/validation"
)

// ImportService defines the interface for schedule import operations
type ImportService interface {
	Preview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error)
	Commit(ctx context.Context, req *dto.CommitRequest) (*dto.CommitResponse, error)
}

// ImportSettings are the tunables of an import run.
type ImportSettings struct {
	DefaultExamStatus      models.ExamStatus
	DefaultDurationMinutes int
	MaxTextBytes           int
}

// importServiceImpl implements ImportService
type importServiceImpl struct {
	stores   ImportStores
	notifier NotificationService
	locker   Locker
	settings ImportSettings
	logger   zerolog.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	stores ImportStores,
	notifier NotificationService,
	locker Locker,
	settings ImportSettings,
	logger zerolog.Logger,
) ImportService {
	if settings.DefaultExamStatus == "" {
		settings.DefaultExamStatus = models.ExamStatusDraft
	}
	if settings.DefaultDurationMinutes <= 0 {
		settings.DefaultDurationMinutes = timetable.DefaultDurationMinutes
	}
	return &importServiceImpl{
		stores:   stores,
		notifier: notifier,
		locker:   locker,
		settings: settings,
		logger:   logger,
	}
}

// Preview parses document text without touching the store.
func (s *importServiceImpl) Preview(_ context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error) {
	return BuildPreview(req, s.settings.MaxTextBytes)
}

// BuildPreview parses req.Text into preview rows. A zero maxBytes disables the
// size check. It fails with apperrors.ErrNoEntriesDetected when no complete
// entry was recognized.
func BuildPreview(req *dto.PreviewRequest, maxBytes int) (*dto.PreviewResponse, error) {
	if maxBytes > 0 && len(req.Text) > maxBytes {
		return nil, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge,
			fmt.Sprintf("document text exceeds %d bytes", maxBytes))
	}
	format, ok := timetable.ParseFormat(req.Format)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownFormat,
			fmt.Sprintf("unknown format %q", req.Format))
	}
	kind, ok := timetable.ParseKind(req.Kind)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownKind,
			fmt.Sprintf("unknown kind %q", req.Kind))
	}

	result := timetable.Parse(req.Text, timetable.Options{Format: format, Kind: kind})
	if len(result.Entries) == 0 {
		return nil, apperrors.ErrNoEntriesDetected
	}

	rows := make([]dto.PreviewRow, 0, len(result.Entries))
	for i := range result.Entries {
		rows = append(rows, RowFromEntry(&result.Entries[i]))
	}
	return &dto.PreviewResponse{
		Format: string(result.Format),
		Kind:   string(kind),
		Total:  len(rows),
		Rows:   rows,
	}, nil
}

// RowFromEntry renders a parsed entry the way the operator reviews it.
func RowFromEntry(e *timetable.Entry) dto.PreviewRow {
	row := dto.PreviewRow{
		ModuleCode: e.ModuleCode,
		ExamDate:   e.DateString(),
		Venue:      e.Venue,
		Lecturer:   e.Lecturer,
		Raw:        e.SourceText,
	}
	if e.StartTime != nil {
		row.ExamTime = e.StartTime.String()
	}
	if e.EndTime != nil {
		row.EndTime = e.EndTime.String()
	}
	if e.Duration != nil {
		row.Duration = *e.Duration
	}
	if e.Weekday != nil {
		row.Weekday = e.Weekday.String()
	}
	return row
}

// Commit persists rows one at a time. A failing row is skipped with a reason
// and never aborts the run.
func (s *importServiceImpl) Commit(ctx context.Context, req *dto.CommitRequest) (*dto.CommitResponse, error) {
	kind, ok := timetable.ParseKind(req.Kind)
	if !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownKind,
			fmt.Sprintf("unknown kind %q", req.Kind))
	}
	status := s.settings.DefaultExamStatus
	if req.Status != "" {
		status = models.ExamStatus(strings.ToLower(req.Status))
		if !status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown exam status %q", req.Status))
		}
	}

	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start import: %w", err)
	}
	defer unlock()

	runID := uuid.NewString()
	run := &importRun{
		service:  s,
		kind:     kind,
		status:   status,
		request:  req,
		resolver: NewResolver(s.stores.ReferenceStores),
		logger:   s.logger.With().Str("runId", runID).Str("kind", string(kind)).Logger(),
		resp: &dto.CommitResponse{
			RunID:       runID,
			Kind:        string(kind),
			Total:       len(req.Rows),
			SkipReasons: []dto.SkipReason{},
			Notifications: dto.NotificationSummary{
				Failed: []dto.NotificationFailure{},
			},
		},
	}

	run.logger.Info().Int("rows", len(req.Rows)).Msg("Import started")
	for i := range req.Rows {
		run.row(ctx, i+1, req.Rows[i])
	}
	run.logger.Info().
		Int("total", run.resp.Total).
		Int("created", run.resp.Created).
		Int("skipped", run.resp.Skipped).
		Int("notified", run.resp.Notifications.Sent).
		Int("notifyFailed", len(run.resp.Notifications.Failed)).
		Msg("Import finished")

	return run.resp, nil
}

// importRun is the state of one Commit call.
type importRun struct {
	service  *importServiceImpl
	kind     timetable.Kind
	status   models.ExamStatus
	request  *dto.CommitRequest
	resolver *Resolver
	logger   zerolog.Logger
	resp     *dto.CommitResponse
}

func (r *importRun) row(ctx context.Context, n int, row dto.PreviewRow) {
	code := strings.ToUpper(strings.TrimSpace(row.ModuleCode))
	row.ModuleCode = code
	row.Venue = strings.TrimSpace(row.Venue)
	row.Lecturer = strings.TrimSpace(row.Lecturer)

	var err error
	switch {
	case code == "":
		err = errEmptyModuleCode
	case r.kind == timetable.KindSession:
		err = r.session(ctx, row)
	default:
		err = r.exam(ctx, row)
	}
	if err != nil {
		r.skip(n, row, err)
		return
	}
	r.resp.Created++
}

var errEmptyModuleCode = apperrors.NewValidationError("empty module code")

func (r *importRun) skip(n int, row dto.PreviewRow, err error) {
	reason := validation.FirstMessage(err)
	if errors.Is(err, apperrors.ErrDuplicateRecord) {
		reason = apperrors.ErrDuplicateRecord.Error()
	}
	r.resp.Skipped++
	r.resp.SkipReasons = append(r.resp.SkipReasons, dto.SkipReason{
		Row:        n,
		ModuleCode: row.ModuleCode,
		ExamDate:   strings.TrimSpace(row.ExamDate),
		ExamTime:   strings.TrimSpace(row.ExamTime),
		Venue:      row.Venue,
		Weekday:    strings.TrimSpace(row.Weekday),
		Reason:     reason,
	})
	r.logger.Debug().Err(err).
		Int("row", n).
		Str("moduleCode", row.ModuleCode).
		Str("examDate", row.ExamDate).
		Str("examTime", row.ExamTime).
		Str("venue", row.Venue).
		Str("reason", reason).
		Msg("Row skipped")
}

func (r *importRun) exam(ctx context.Context, row dto.PreviewRow) error {
	if err := validation.Struct(row); err != nil {
		return err
	}
	if row.ExamDate == "" {
		return apperrors.NewValidationError("exam_date is required")
	}
	date, err := time.Parse(timetable.DateLayout, row.ExamDate)
	if err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("invalid exam_date %q", row.ExamDate))
	}
	start, duration, err := r.times(row)
	if err != nil {
		return err
	}

	moduleID, err := r.resolver.Module(ctx, row.ModuleCode)
	if err != nil {
		return err
	}
	venueID, err := r.resolver.Venue(ctx, row.Venue)
	if err != nil {
		return err
	}

	exam := &models.Exam{
		ModuleID:        moduleID,
		VenueID:         venueID,
		ExamDate:        date,
		StartTime:       start.String(),
		DurationMinutes: duration,
		Status:          r.status,
	}
	exists, err := r.service.stores.Exams.Exists(ctx, exam.Slot())
	if err != nil {
		return fmt.Errorf("error checking for duplicate exam: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateRecord
	}
	if err := r.service.stores.Exams.Create(ctx, exam); err != nil {
		return err
	}

	fanout := r.service.notifier.FanOut(ctx, exam, row.ModuleCode, row.Venue)
	r.resp.Notifications.Sent += fanout.Sent
	for _, f := range fanout.Failed {
		r.resp.Notifications.Failed = append(r.resp.Notifications.Failed, dto.NotificationFailure{
			ExamID:    exam.ID,
			StudentID: f.StudentID,
			Error:     f.Err.Error(),
		})
	}
	return nil
}

func (r *importRun) session(ctx context.Context, row dto.PreviewRow) error {
	if err := validation.Struct(row); err != nil {
		return err
	}
	day, err := sessionDay(row)
	if err != nil {
		return err
	}
	start, duration, err := r.times(row)
	if err != nil {
		return err
	}

	moduleID, err := r.resolver.Module(ctx, row.ModuleCode)
	if err != nil {
		return err
	}
	venueID, err := r.resolver.Venue(ctx, row.Venue)
	if err != nil {
		return err
	}
	lecturerID, err := r.resolver.Lecturer(ctx, row.Lecturer)
	if err != nil {
		return err
	}
	programmeID, err := r.resolver.Programme(ctx, strings.TrimSpace(r.request.Programme))
	if err != nil {
		return err
	}

	session := &models.Session{
		ModuleID:    moduleID,
		LecturerID:  lecturerID,
		VenueID:     venueID,
		DayOfWeek:   day.String(),
		StartTime:   start.String(),
		EndTime:     start.Add(duration).String(),
		ProgrammeID: programmeID,
		YearLevel:   r.request.YearLevel,
		Semester:    r.request.Semester,
	}
	exists, err := r.service.stores.Sessions.Exists(ctx, session.Slot())
	if err != nil {
		return fmt.Errorf("error checking for duplicate session: %w", err)
	}
	if exists {
		return apperrors.ErrDuplicateRecord
	}
	return r.service.stores.Sessions.Create(ctx, session)
}

// sessionDay takes the row's weekday, falling back to the weekday of its date.
func sessionDay(row dto.PreviewRow) (time.Weekday, error) {
	if row.Weekday != "" {
		day, ok := validation.ParseWeekday(row.Weekday)
		if !ok {
			return 0, apperrors.NewValidationError(fmt.Sprintf("invalid weekday %q", row.Weekday))
		}
		return day, nil
	}
	if row.ExamDate != "" {
		date, err := time.Parse(timetable.DateLayout, row.ExamDate)
		if err != nil {
			return 0, apperrors.NewValidationError(fmt.Sprintf("invalid exam_date %q", row.ExamDate))
		}
		return date.Weekday(), nil
	}
	return 0, apperrors.NewValidationError("weekday or exam_date is required")
}

// times resolves the start and duration of a row. Duration comes from the
// row, else from its end time, else from the configured default.
func (r *importRun) times(row dto.PreviewRow) (timetable.Clock, int, error) {
	start, err := timetable.ParseClock(row.ExamTime)
	if err != nil {
		return 0, 0, apperrors.NewValidationError(fmt.Sprintf("invalid exam_time %q", row.ExamTime))
	}
	switch {
	case row.Duration > 0:
		return start, row.Duration, nil
	case row.EndTime != "":
		end, err := timetable.ParseClock(row.EndTime)
		if err != nil {
			return 0, 0, apperrors.NewValidationError(fmt.Sprintf("invalid end_time %q", row.EndTime))
		}
		d := timetable.MinutesBetween(start, end)
		if !timetable.PlausibleDuration(d) {
			return 0, 0, apperrors.NewValidationError(
				fmt.Sprintf("%s to %s is not a plausible duration", row.ExamTime, row.EndTime))
		}
		return start, d, nil
	default:
		return start, r.service.settings.DefaultDurationMinutes, nil
	}
}
