package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the process logger. Production gets JSON output
// for log shipping; debug gets human-readable text with timestamps.
func NewLogger(level string, production bool, output io.Writer) (*logrus.Logger, error) {
	if output == nil {
		output = os.Stdout
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(parsed)
	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger, nil
}
