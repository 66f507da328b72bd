package main

import (
	"os"

	"arcv/internal/errors"
	"arcv/internal/logging"
)

// Exit codes: 0 success, 1 total failure, 2 configuration error,
// 3 partial failure (some projects were skipped).
const (
	exitFailure = 1
	exitConfig  = 2
	exitPartial = 3
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := logging.NewLogger(logging.Config{
			Format: logging.HumanFormat,
			Level:  logging.InfoLevel,
		})
		logger.Error("Command failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch errors.CodeOf(err) {
	case errors.ConfigInvalid:
		return exitConfig
	case errors.ClassificationFailed, errors.ArchiveFailed:
		return exitPartial
	default:
		return exitFailure
	}
}
