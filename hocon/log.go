package hocon

import (
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// Logger is the package-wide structured logger, the way the teacher wires
// logrus through its cli/cmd package rather than the standard library's
// log. Callers embedding this module can redirect it (e.g. to a JSON
// formatter) before calling any Parse* entry point.
var Logger = logrus.New()

// newCorrelationID tags one parse invocation's log lines so a caller
// resolving many documents concurrently can tell them apart, the way the
// teacher's sqltest fixtures tag each test database with a fresh UUID.
func newCorrelationID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

func warnIncludeSkipped(fields logrus.Fields, format string, args ...any) {
	Logger.WithFields(fields).Warnf(format, args...)
}
