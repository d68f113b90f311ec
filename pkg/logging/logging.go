package logging

import (
	"go.uber.org/zap"
)

// Setup builds the process logger and installs it as the zap global.
// Production output is JSON on stderr; debug switches to the development
// console encoder at debug level. On a build failure a no-op logger is
// returned along with the error.
func Setup(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
