package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Altinity/site-sync/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// Mode tells the logger whether the terminal form is drawing on the screen.
type Mode int

const (
	// ConsoleMode logs to the configured output as-is.
	ConsoleMode Mode = iota
	// FormMode keeps log lines off the terminal while the form is running.
	FormMode
)

// NewLogger instantiates and returns a new *zerolog.Logger writing to the
// configured output.
func NewLogger(mode Mode) *zerolog.Logger {
	return newLogger(newLogWriter(mode))
}

func newLogger(output io.Writer) *zerolog.Logger {
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.TimeFieldFormat = time.RFC3339

	// Writes never block the sync run; messages are dropped if the buffer fills.
	wr := diode.NewWriter(output, 1000, 10*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "dropped %d log messages\n", missed)
	})

	logger := zerolog.New(zerolog.MultiLevelWriter(wr)).With().Timestamp().Logger()

	if lvl, err := zerolog.ParseLevel(config.LoggingLevel.String()); err == nil {
		logger = logger.Level(lvl)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	return &logger
}
