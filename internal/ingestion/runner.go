package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/indexer"
	"bsc-pair-indexer/internal/observability"
)

// Runner drives the indexer from an event source. Processing is strictly
// sequential: one goroutine, one event at a time, which is what makes the
// handlers' unlocked read-modify-write sequences safe.
type Runner struct {
	source  EventSource
	indexer *indexer.Indexer
	cursor  Cursor
	logger  *log.Logger
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Source  EventSource
	Indexer *indexer.Indexer
	// StartBlock and StartLogIndex resume the ordering cursor after a
	// restart; zero values start from the beginning of the feed.
	StartBlock    int64
	StartLogIndex int64
	Logger        *log.Logger
}

// NewRunner creates an ingestion runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{source: opts.Source, indexer: opts.Indexer, logger: logger}
	if opts.StartBlock > 0 || opts.StartLogIndex > 0 {
		r.cursor = Cursor{Block: opts.StartBlock, LogIndex: opts.StartLogIndex}
		r.cursor.started = true
	}
	return r
}

// Run consumes the source until the context is cancelled or the feed ends.
// A closed channel is a normal end of feed (replay); it returns nil.
func (r *Runner) Run(ctx context.Context) error {
	eventsCh, err := r.source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	r.logger.Println("[runner] started")

	processed := 0
	for {
		select {
		case <-ctx.Done():
			r.logger.Printf("[runner] stopping after %d events", processed)
			return ctx.Err()
		case event, ok := <-eventsCh:
			if !ok {
				r.logger.Printf("[runner] feed ended after %d events", processed)
				return nil
			}
			if err := r.process(ctx, event); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				meta := event.Meta()
				r.logger.Printf("[runner] event at (%d, %d) failed: %v", meta.Block, meta.LogIndex, err)
				observability.RecordEventError(eventType(event))
				continue
			}
			processed++
		}
	}
}

// process applies one event, enforcing the ordering contract first.
func (r *Runner) process(ctx context.Context, event domain.Event) error {
	meta := event.Meta()
	if !r.cursor.Admit(meta) {
		r.logger.Printf("[runner] dropping out-of-order event at (%d, %d), high-water mark (%d, %d)",
			meta.Block, meta.LogIndex, r.cursor.Block, r.cursor.LogIndex)
		observability.RecordEventDropped()
		return nil
	}

	kind := eventType(event)
	start := time.Now()

	var outcome indexer.Outcome
	var err error
	switch ev := event.(type) {
	case *domain.TransferEvent:
		outcome, err = r.indexer.HandleTransfer(ctx, ev)
	case *domain.PairMintEvent:
		outcome, err = r.indexer.HandleMint(ctx, ev)
	case *domain.PairBurnEvent:
		outcome, err = r.indexer.HandleBurn(ctx, ev)
	case *domain.SwapRawEvent:
		outcome, err = r.indexer.HandleSwap(ctx, ev)
	case *domain.SyncEvent:
		outcome, err = r.indexer.HandleSync(ctx, ev)
	default:
		return fmt.Errorf("unhandled event type %T", event)
	}

	observability.ObserveHandlerLatency(kind, time.Since(start).Seconds())
	if err != nil {
		return err
	}

	observability.RecordEventProcessed(kind)
	if outcome.Skipped() {
		observability.RecordEventSkipped(kind, outcome.MissingKind)
	}
	observability.UpdateLastBlock(meta.Block)
	observability.MarkEventSuccess(meta.Timestamp)
	return nil
}

// eventType names an event for logs and metrics labels.
func eventType(event domain.Event) string {
	switch event.(type) {
	case *domain.TransferEvent:
		return TypeTransfer
	case *domain.PairMintEvent:
		return TypeMint
	case *domain.PairBurnEvent:
		return TypeBurn
	case *domain.SwapRawEvent:
		return TypeSwap
	case *domain.SyncEvent:
		return TypeSync
	default:
		return "unknown"
	}
}
