// Package logger builds the single leveled logger that is created at startup
// and injected into every component.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	module     = "yamdb"
	timeFormat = "2006/01/02 15:04:05"
)

// New returns a logger writing to w at the given level name (DEBUG, INFO,
// NOTICE, WARNING, ERROR, CRITICAL). Unknown names fall back to INFO.
func New(level string, w io.Writer) *logging.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		lvl = logging.INFO
	}

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level:.4s} %{shortfile} - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveled)
	return log
}

// Discard returns a logger that drops everything; used in tests.
func Discard() *logging.Logger {
	return New("CRITICAL", io.Discard)
}
