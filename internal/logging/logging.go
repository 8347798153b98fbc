// Package logging builds the process logger. Output goes to stderr so it
// never interleaves with the terminal map rendering on stdout.
package logging

import "go.uber.org/zap"

// New returns the shared sugared logger. Debug mode switches to development
// encoding with debug-level output.
func New(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
