package ingestion

import (
	"context"

	"bsc-pair-indexer/internal/domain"
)

// EventSource provides raw pair events from an external feed.
type EventSource interface {
	// Subscribe returns a channel of raw pair events. Events arrive in feed
	// order; the Runner enforces the (block, logIndex) ordering contract.
	// The channel is closed when the context is cancelled or the feed ends.
	Subscribe(ctx context.Context) (<-chan domain.Event, error)
}
