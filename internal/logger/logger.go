// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New returns a development logger (console, debug level) unless mode is
// "prod" or "production", which selects JSON output at info level.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	case "", "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log mode %q (want dev or prod)", mode)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
