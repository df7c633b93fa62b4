package dashboard

import (
	"io"

	"github.com/sirupsen/logrus"
)

// discardLogger backs library code when the host wires no logger.
func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
