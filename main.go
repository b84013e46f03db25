package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"student_manager/config"
	"student_manager/database"
	"student_manager/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize logging
	setupLogging()

	// Connect to database
	database.Connect()
	defer database.Close()

	cli := newCommandLine(database.DB, os.Stdout, storage.NewExportService())
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logrus.WithError(err).Error("Command failed")
			os.Stderr.WriteString("error: " + err.Error() + "\n")
		}
		database.Close()
		os.Exit(1)
	}
}

// setupLogging configures the logging system
func setupLogging() {
	// Configure logrus
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Set log level
	level, err := logrus.ParseLevel(config.AppConfig.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// Stdout belongs to command output, so development logs go to stderr
	if config.AppConfig.IsDevelopment() {
		logrus.SetOutput(os.Stderr)
		return
	}

	if err := os.MkdirAll(filepath.Dir(config.AppConfig.LogFile), 0755); err != nil {
		log.Printf("Warning: Could not create logs directory: %v", err)
		logrus.SetOutput(io.Discard)
		return
	}
	file, err := os.OpenFile(config.AppConfig.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Warning: Could not open log file: %v", err)
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetOutput(file)
}
