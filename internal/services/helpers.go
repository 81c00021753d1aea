package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/study-portal/internal/events"
)

var timeNow = time.Now

// publishEvent sends an event and only logs when delivery fails.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "type", eventType, "error", err)
	}
}
