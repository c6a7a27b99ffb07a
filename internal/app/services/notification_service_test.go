package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/timetabler/internal/app/models"
)

func testExam() *models.Exam {
	return &models.Exam{
		ID:        7,
		ModuleID:  3,
		ExamDate:  time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00:00",
	}
}

func TestFanOut(t *testing.T) {
	h := newHarness()
	h.enrollments.byModule[3] = []int64{11, 12}
	svc := NewNotificationService(h.enrollments, h.notifications, zerolog.Nop())

	res := svc.FanOut(context.Background(), testExam(), "ACC321", "Main Hall")
	assert.Equal(t, 2, res.Sent)
	assert.Empty(t, res.Failed)

	n := h.notifications.rows[[2]int64{11, 7}]
	require.NotNil(t, n)
	assert.Equal(t, "ACC321 exam scheduled on 2025-11-03 at 09:00 in Main Hall", n.Message)

	// Students already notified about the exam are not counted again.
	res = svc.FanOut(context.Background(), testExam(), "ACC321", "Main Hall")
	assert.Equal(t, 0, res.Sent)
	assert.Empty(t, res.Failed)
}

func TestFanOut_EnrollmentLookupFails(t *testing.T) {
	h := newHarness()
	h.enrollments.err = errors.New("relation \"enrollments\" does not exist")
	svc := NewNotificationService(h.enrollments, h.notifications, zerolog.Nop())

	res := svc.FanOut(context.Background(), testExam(), "ACC321", "")
	assert.Equal(t, 0, res.Sent)
	require.Len(t, res.Failed, 1)
	assert.Zero(t, res.Failed[0].StudentID)
	assert.ErrorIs(t, res.Failed[0].Err, h.enrollments.err)
}

func TestExamMessage_NoVenue(t *testing.T) {
	assert.Equal(t, "ACC321 exam scheduled on 2025-11-03 at 09:00", ExamMessage(testExam(), "ACC321", ""))
}
