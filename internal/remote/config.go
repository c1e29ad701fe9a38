package remote

import (
	"time"

	"go.uber.org/zap"
)

// Config holds the connection settings of the learning API.
type Config struct {
	BaseURL    string
	Org        string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	// Backoff is the wait before the first retry; it doubles per attempt.
	Backoff time.Duration
	// UserID is sent as X-User-ID when set. The bundled server uses it to
	// identify the learner; the hosted API ignores it.
	UserID int64
	// Logger receives notes about trail entries dropped on decode.
	Logger *zap.Logger
}

// DefaultConfig returns conservative client settings with no endpoint.
func DefaultConfig() Config {
	return Config{
		Org:        "default",
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		Backoff:    200 * time.Millisecond,
	}
}
