package service

import (
	"context"
	"strings"
	"time"

	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/mykafka"
	"github.com/Skotchmaster/vehicle_api/internal/repo"
)

var (
	ErrNotFound = repo.ErrNotFound
	ErrConflict = repo.ErrConflict
)

const publishTimeout = 5 * time.Second

// ValidationError carries every failed rule, in the order they were checked.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// publish is best-effort: broker failures are logged and never reach the caller.
func publish(ctx context.Context, p mykafka.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
