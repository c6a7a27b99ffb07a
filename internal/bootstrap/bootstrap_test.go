package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/timetabler/internal/app/services"
	"github.com/yigit/timetabler/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestLoadConfigAndSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n  format: json\nimport:\n  default_exam_status: final\n"), 0o600))

	cfg, _, err := LoadConfigAndSetupLogger(path)
	require.NoError(t, err)
	assert.Equal(t, "final", cfg.Import.DefaultExamStatus)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestNewImportLocker_LocalOnlyWithoutPool(t *testing.T) {
	cfg := testConfig(t)
	_, ok := NewImportLocker(cfg, nil).(*services.LocalLocker)
	assert.True(t, ok)
}

func TestSetupRouter(t *testing.T) {
	cfg := testConfig(t)
	deps, err := BuildDependencies(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	router := SetupRouter(cfg, deps, zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	// Preview does not touch the database.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/preview",
		strings.NewReader(`{"text":"ACC321 03/11/2025 09:00-12:00 Main Hall"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"module_code":"ACC321"`)
	assert.Contains(t, w.Body.String(), `"venue":"Main Hall"`)
}
