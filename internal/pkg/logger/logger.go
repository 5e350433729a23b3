package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a JSON production logger for prod-like environments and a
// human-readable development logger everywhere else.
func New(env string) (*zap.Logger, error) {
	if IsProdLike(env) {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

// OrNop lets constructors accept a nil logger.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
