package util

import (
	"bytes"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coreos/go-systemd/v22/journal"
	"github.com/go-logfmt/logfmt"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          Name,
	ReportTimestamp: true,
})

// Logger returns the process-wide logger.
func Logger() *log.Logger {
	return logger
}

// SetupLogging points the logger at w and, when journald is requested and
// reachable, mirrors every record to the journal as well. Mirrored records
// are written as logfmt so the journal priority can be read off the level key.
func SetupLogging(conf *AppConfig, w io.Writer) {
	if conf != nil && conf.Conf.WithJournald {
		if journal.Enabled() {
			logger.SetFormatter(log.LogfmtFormatter)
			w = io.MultiWriter(w, journalWriter{})
		} else {
			logger.Warn("journald requested but not available")
		}
	}
	logger.SetOutput(w)
	if os.Getenv(EnvPrefix+"DEBUG") == "true" {
		logger.SetLevel(log.DebugLevel)
	}
}

// journalWriter forwards logfmt records to journald.
type journalWriter struct{}

func (journalWriter) Write(p []byte) (int, error) {
	line := string(bytes.TrimRight(p, "\n"))
	if err := journal.Send(line, journalPriority(p), map[string]string{"SYSLOG_IDENTIFIER": Name}); err != nil {
		return 0, err
	}
	return len(p), nil
}

// journalPriority maps the level key of a logfmt record to a journald
// priority. Records without a readable level are logged at info.
func journalPriority(record []byte) journal.Priority {
	dec := logfmt.NewDecoder(bytes.NewReader(record))
	if !dec.ScanRecord() {
		return journal.PriInfo
	}
	for dec.ScanKeyval() {
		if string(dec.Key()) != "level" {
			continue
		}
		switch string(dec.Value()) {
		case "debug":
			return journal.PriDebug
		case "warn":
			return journal.PriWarning
		case "error":
			return journal.PriErr
		case "fatal":
			return journal.PriCrit
		}
		return journal.PriInfo
	}
	return journal.PriInfo
}
