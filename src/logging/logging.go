// Package logging contains the singleton logger used across the engine.
// It deliberately has little else since it's a dependency everywhere.
package logging

import (
	"os"

	"gopkg.in/op/go-logging.v1"
)

// Log is the singleton logger instance.
var Log = logging.MustGetLogger("games-framework")

// Level is a re-export of the library type.
type Level = logging.Level

// Re-exports of the log levels we use.
const (
	CRITICAL = logging.CRITICAL
	ERROR    = logging.ERROR
	WARNING  = logging.WARNING
	NOTICE   = logging.NOTICE
	INFO     = logging.INFO
	DEBUG    = logging.DEBUG
)

var format = logging.MustStringFormatter(
	"%{time:15:04:05.000} %{level:7s}: %{message}",
)

// Init sets up a single stderr backend at the given verbosity. Called
// once from a command's main; library packages only ever log through Log.
func Init(level Level) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
