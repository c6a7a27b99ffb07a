package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/timetabler/internal/app/models"
	"github.com/yigit/timetabler/internal/pkg/timetable"
)

// NotificationService decides which students hear about a newly created exam.
type NotificationService interface {
	FanOut(ctx context.Context, exam *models.Exam, moduleCode, venue string) FanOutResult
}

// NotificationFailure is one notification that could not be recorded. A zero
// StudentID means the enrollment lookup itself failed.
type NotificationFailure struct {
	StudentID int64
	Err       error
}

// FanOutResult counts recorded notifications and lists failures.
type FanOutResult struct {
	Sent   int
	Failed []NotificationFailure
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	enrollments   EnrollmentStore
	notifications NotificationStore
	logger        zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	enrollments EnrollmentStore,
	notifications NotificationStore,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		enrollments:   enrollments,
		notifications: notifications,
		logger:        logger,
	}
}

// FanOut records one notification per actively enrolled student. Failures
// are logged and returned, never propagated. Students already notified about
// the exam are neither sent nor failed.
func (s *notificationServiceImpl) FanOut(ctx context.Context, exam *models.Exam, moduleCode, venue string) FanOutResult {
	var result FanOutResult

	students, err := s.enrollments.ActiveStudentIDs(ctx, exam.ModuleID)
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("examId", exam.ID).
			Int64("moduleId", exam.ModuleID).
			Msg("Failed to list enrollments for exam notification")
		result.Failed = append(result.Failed, NotificationFailure{Err: err})
		return result
	}

	message := ExamMessage(exam, moduleCode, venue)
	for _, studentID := range students {
		n := &models.Notification{StudentID: studentID, ExamID: exam.ID, Message: message}
		created, err := s.notifications.Create(ctx, n)
		if err != nil {
			s.logger.Warn().Err(err).
				Int64("examId", exam.ID).
				Int64("studentId", studentID).
				Msg("Failed to record exam notification")
			result.Failed = append(result.Failed, NotificationFailure{StudentID: studentID, Err: err})
			continue
		}
		if created {
			result.Sent++
		}
	}

	s.logger.Debug().
		Int64("examId", exam.ID).
		Int("students", len(students)).
		Int("sent", result.Sent).
		Int("failed", len(result.Failed)).
		Msg("Exam notifications recorded")
	return result
}

// ExamMessage renders the text stored with an exam notification.
func ExamMessage(exam *models.Exam, moduleCode, venue string) string {
	start := exam.StartTime
	if c, err := timetable.ParseClock(exam.StartTime); err == nil {
		start = fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
	}
	msg := fmt.Sprintf("%s exam scheduled on %s at %s", moduleCode, exam.ExamDate.Format(timetable.DateLayout), start)
	if venue != "" {
		msg += " in " + venue
	}
	return msg
}
