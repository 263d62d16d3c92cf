package logger

import (
	"log"
	"os"
)

var (
	// InfoLogger - operational events
	InfoLogger *log.Logger

	// ErrorLogger - failures worth alerting on
	ErrorLogger *log.Logger
)

// Init sets up the shared loggers. Call once from main before any use.
func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}
