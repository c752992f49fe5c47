package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

// New builds the process logger. Prod logs JSON lines, dev logs colored text
// with timestamps.
func New(stage string, level log.Level, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "battleship",
	})

	if stage == StageProd {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// Discard is used wherever no logger was injected.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
