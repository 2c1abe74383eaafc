package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON production logger. verbose or LOG_LEVEL=debug lowers the
// level to debug.
func New(service string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose || strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "debug") {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log.With(zap.String("service", service)), nil
}
