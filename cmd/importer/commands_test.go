package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
)

func writeDoc(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const tabularDoc = "Final_Exams_November_2025\n" +
	"2025/11/03ACC321_P_1_1AUDITING 321\n" +
	"STUDIES\t09:00 180 5 51403_0_006 LECTURE SEMINAR ROOM\n"

func TestDetect(t *testing.T) {
	out, err := run(t, "detect", writeDoc(t, tabularDoc))
	require.NoError(t, err)
	assert.Equal(t, "tabular\n", out)

	out, err = run(t, "detect", writeDoc(t, "ACC321 03/11/2025 09:00 Main Hall"))
	require.NoError(t, err)
	assert.Equal(t, "heuristic\n", out)
}

func TestPreview_Table(t *testing.T) {
	out, err := run(t, "preview", writeDoc(t, tabularDoc))
	require.NoError(t, err)
	assert.Contains(t, out, "Format: tabular  Kind: exam  Entries: 1")
	assert.Contains(t, out, "ACC321")
	assert.Contains(t, out, "LECTURE SEMINAR ROOM")
}

func TestPreview_JSON(t *testing.T) {
	out, err := run(t, "preview", "--json", writeDoc(t, "ACC321 03/11/2025 09:00-11:00 Main Hall"))
	require.NoError(t, err)

	var resp dto.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 120, resp.Rows[0].Duration)
	assert.Equal(t, "11:00:00", resp.Rows[0].EndTime)
}

func TestPreview_Errors(t *testing.T) {
	_, err := run(t, "preview", writeDoc(t, "Dear students,\nsee the notice board.\n"))
	assert.ErrorIs(t, err, apperrors.ErrNoEntriesDetected)

	_, err = run(t, "preview", "--format", "csv", writeDoc(t, tabularDoc))
	assert.ErrorIs(t, err, apperrors.ErrUnknownFormat)

	_, err = run(t, "preview", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeSummary(&out, &dto.CommitResponse{
		RunID:       "run-1",
		Kind:        "exam",
		Total:       3,
		Created:     2,
		Skipped:     1,
		SkipReasons: []dto.SkipReason{{
			Row: 3, ModuleCode: "ACC321", ExamDate: "2025-11-03", ExamTime: "09:00:00",
			Venue: "Hall A", Reason: "duplicate",
		}},
		Notifications: dto.NotificationSummary{
			Sent:   4,
			Failed: []dto.NotificationFailure{{ExamID: 1, StudentID: 9, Error: "connection reset"}},
		},
	}))

	s := out.String()
	assert.Contains(t, s, "Run run-1 (exam): 3 rows, 2 created, 1 skipped")
	assert.Contains(t, s, "Notifications: 4 recorded, 1 failed")
	assert.Contains(t, s, "row 3")
	assert.Contains(t, s, "duplicate")
	assert.Contains(t, s, "2025-11-03")
	assert.Contains(t, s, "09:00:00")
	assert.Contains(t, s, "Hall A")
}
