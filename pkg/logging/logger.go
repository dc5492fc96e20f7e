package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// InitLogger sets up the shared logger. Debug mode switches to a human
// readable format with timestamps; otherwise logs are emitted as JSON.
func InitLogger(debug bool) {
	Log = logrus.New()
	Log.Out = os.Stdout

	if debug {
		Log.SetLevel(logrus.DebugLevel)
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		Log.SetLevel(logrus.InfoLevel)
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// L returns the shared logger, initializing a default one if InitLogger
// has not been called yet.
func L() *logrus.Logger {
	if Log == nil {
		InitLogger(false)
	}
	return Log
}
