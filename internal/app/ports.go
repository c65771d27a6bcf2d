package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Logger receives structured controller events as key/value pairs.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
}

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// UUIDv7 returns a time-ordered UUIDv7 string, falling back to a random
// UUIDv4 if the v7 generator fails.
func UUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceIDs returns a generator of zero-padded, strictly increasing ids
// such as "t-000001". Ids sort lexically in creation order.
func SequenceIDs(prefix string) IDGenerator {
	var next uint64
	return func() string {
		next++
		return fmt.Sprintf("%s%06d", prefix, next)
	}
}

// noopLogger discards controller events.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
