package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/timetabler/internal/app/models/dto"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
)

type stubImportService struct {
	previewReq *dto.PreviewRequest
	commitReq  *dto.CommitRequest
	preview    *dto.PreviewResponse
	commit     *dto.CommitResponse
	err        error
}

func (s *stubImportService) Preview(_ context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error) {
	s.previewReq = req
	return s.preview, s.err
}

func (s *stubImportService) Commit(_ context.Context, req *dto.CommitRequest) (*dto.CommitResponse, error) {
	s.commitReq = req
	return s.commit, s.err
}

func newImportRouter(svc *stubImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := NewImportController(svc)
	r.POST("/api/v1/imports/preview", c.Preview)
	r.POST("/api/v1/imports/commit", c.Commit)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestImportController_Preview(t *testing.T) {
	svc := &stubImportService{preview: &dto.PreviewResponse{
		Format: "heuristic",
		Kind:   "exam",
		Total:  1,
		Rows:   []dto.PreviewRow{{ModuleCode: "ACC321", ExamDate: "2025-11-03", ExamTime: "09:00:00"}},
	}}
	w := post(newImportRouter(svc), "/api/v1/imports/preview", `{"text":"ACC321 03/11/2025 09:00","kind":"exam"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACC321 03/11/2025 09:00", svc.previewReq.Text)

	var resp struct {
		Success bool                `json:"success"`
		Data    dto.PreviewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "2025-11-03", resp.Data.Rows[0].ExamDate)
}

func TestImportController_PreviewNoEntries(t *testing.T) {
	svc := &stubImportService{err: apperrors.ErrNoEntriesDetected}
	w := post(newImportRouter(svc), "/api/v1/imports/preview", `{"text":"hello"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"IMP_001"`)
}

func TestImportController_PreviewRejectsBadRequest(t *testing.T) {
	svc := &stubImportService{}
	w := post(newImportRouter(svc), "/api/v1/imports/preview", `{"text":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.previewReq, "service must not be called")
}

func TestImportController_Commit(t *testing.T) {
	svc := &stubImportService{commit: &dto.CommitResponse{
		RunID:       "run-1",
		Kind:        "exam",
		Total:       2,
		Created:     1,
		Skipped:     1,
		SkipReasons: []dto.SkipReason{{Row: 2, ModuleCode: "ACC321", Reason: "duplicate"}},
	}}
	body := `{"status":"final","rows":[
		{"module_code":"ACC321","exam_date":"2025-11-03","exam_time":"09:00:00","venue":"Hall A"},
		{"module_code":"ACC321","exam_date":"2025-11-03","exam_time":"09:00:00","venue":"Hall A"}]}`
	w := post(newImportRouter(svc), "/api/v1/imports/commit", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.commitReq.Rows, 2)
	assert.Equal(t, "final", svc.commitReq.Status)
	assert.Equal(t, "Hall A", svc.commitReq.Rows[1].Venue)

	var resp struct {
		Data dto.CommitResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "run-1", resp.Data.RunID)
	assert.Equal(t, "duplicate", resp.Data.SkipReasons[0].Reason)
}

func TestImportController_CommitErrors(t *testing.T) {
	rows := `"rows":[{"module_code":"ACC321","exam_date":"2025-11-03","exam_time":"09:00"}]`

	w := post(newImportRouter(&stubImportService{}), "/api/v1/imports/commit", `{"rows":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(newImportRouter(&stubImportService{}), "/api/v1/imports/commit", `{"status":"published",`+rows+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status must be one of: draft final")

	svc := &stubImportService{err: apperrors.ErrImportInProgress}
	w = post(newImportRouter(svc), "/api/v1/imports/commit", `{`+rows+`}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"IMP_002"`)
}
