package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/Altinity/site-sync/config"
	"github.com/rs/zerolog"
)

// newLogWriter selects an [io.Writer] for logging based on the application's
// configuration. When the terminal form owns the screen, stdout and stderr
// outputs are replaced by the form log file.
func newLogWriter(mode Mode) io.Writer {
	output := config.LoggingOutput.String()
	format := config.LoggingFormat.String()

	if mode == FormMode && (output == "stdout" || output == "stderr") {
		output = config.LoggingFormOutput.String()
	}

	switch format {
	case "json":
		switch output {
		case "stdout":
			return os.Stdout
		case "stderr":
			return os.Stderr
		default:
			return openLogFile(output)
		}

	case "text":
		switch output {
		case "stdout":
			return consoleWriter(os.Stdout, !config.LoggingColors.Bool())
		case "stderr":
			return consoleWriter(os.Stderr, !config.LoggingColors.Bool())
		default:
			// Escape codes are noise in a file.
			return consoleWriter(openLogFile(output), true)
		}
	}

	// Only warn if invalid values are set
	if output != "" && format != "" {
		fmt.Fprintln(os.Stderr, "[WARN] Unknown log format / output combination, defaulting to stdout")
	}

	return os.Stdout
}

func openLogFile(name string) io.Writer {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERROR] Failed to open log file:", err)
		fmt.Fprintln(os.Stderr, "[WARN] Defaulting to stderr")

		return os.Stderr
	}

	return f
}

// consoleWriter creates and returns a [zerolog.ConsoleWriter] that formats log
// messages for display in console environments.
func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: config.LoggingTimeFormat.String(),
		NoColor:    noColor,
	}

	writer.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.CallerFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}

	return writer
}
