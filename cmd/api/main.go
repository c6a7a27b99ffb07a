package main

import (
	"os"

	"github.com/yigit/timetabler/internal/pkg/logger"
	"github.com/yigit/timetabler/internal/server"
)

// @title Timetabler API
// @version 1.0
// @description Imports exam schedules and class timetables from document text
// @BasePath /api/v1
// @schemes http https

func main() {
	// CONFIG_PATH, else configs/config.yaml
	srv, err := server.NewServer("")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to start import API")
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Import API exited with error")
		os.Exit(1)
	}
}
