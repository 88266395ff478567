package app

import (
	"fmt"
	"io"
	"log"
	"os"
)

// setupLogging points the standard logger at path. Logging never goes to
// the terminal: with no path it is discarded.
func setupLogging(path string) (func(), error) {
	log.SetOutput(io.Discard)
	if path == "" {
		return func() {}, nil
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return func() {}, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(logFile)
	return func() {
		log.SetOutput(io.Discard)
		logFile.Close()
	}, nil
}
