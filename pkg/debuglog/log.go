package debuglog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Debug bool

func Log(format string, args ...interface{}) {
	if Debug {
		logrus.Debugf(format, args...)
	}
}

// Enable turns on debug logging for the rest of the process.
func Enable() {
	Debug = true
	logrus.SetLevel(logrus.DebugLevel)
}

func init() {
	if os.Getenv("SHREDDER_DEBUG") != "" {
		Enable()
	}
}
