package ingestion

import (
	"bsc-pair-indexer/internal/domain"
)

// Cursor tracks the highest (block, logIndex) coordinate applied so far.
// Handlers are not idempotent, so an event at or below the high-water mark
// must be dropped rather than reapplied.
type Cursor struct {
	Block    int64
	LogIndex int64

	started bool
}

// Admit reports whether the event is strictly past the high-water mark and,
// if so, advances the mark to it.
func (c *Cursor) Admit(meta *domain.EventMeta) bool {
	if c.started && compareCoordinates(meta.Block, meta.LogIndex, c.Block, c.LogIndex) <= 0 {
		return false
	}
	c.started = true
	c.Block = meta.Block
	c.LogIndex = meta.LogIndex
	return true
}

// compareCoordinates orders ledger coordinates by (block ASC, logIndex ASC).
func compareCoordinates(aBlock, aLog, bBlock, bLog int64) int {
	if aBlock != bBlock {
		if aBlock < bBlock {
			return -1
		}
		return 1
	}
	if aLog != bLog {
		if aLog < bLog {
			return -1
		}
		return 1
	}
	return 0
}
