package ingestion

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"bsc-pair-indexer/internal/domain"
)

// FileReplaySource replays events from a JSON-lines fixture, one event per
// line, for backfill and deterministic reruns. No feed dependency.
type FileReplaySource struct {
	path   string
	logger *log.Logger
}

// NewFileReplaySource creates a replay source over the given fixture file.
func NewFileReplaySource(path string, logger *log.Logger) *FileReplaySource {
	if logger == nil {
		logger = log.Default()
	}
	return &FileReplaySource{path: path, logger: logger}
}

// Subscribe streams the fixture's events in file order. The channel is closed
// at end of file or on context cancellation. A malformed line stops the
// replay; fixtures are trusted input and a gap would silently corrupt state.
func (s *FileReplaySource) Subscribe(ctx context.Context) (<-chan domain.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}

	eventsCh := make(chan domain.Event, 100)
	go func() {
		defer close(eventsCh)
		defer f.Close()

		count := 0
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			event, err := DecodeEvent(line)
			if err != nil {
				s.logger.Printf("[replay] stopping at line %d: %v", count+1, err)
				return
			}
			select {
			case eventsCh <- event:
				count++
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.logger.Printf("[replay] read failed after %d events: %v", count, err)
			return
		}
		s.logger.Printf("[replay] replayed %d events from %s", count, s.path)
	}()

	return eventsCh, nil
}
