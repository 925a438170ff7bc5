// Package main runs the pair event indexer: it consumes the raw pair event
// feed (live WebSocket or file replay), reconstructs logical mints, burns and
// swaps, and maintains the pair/token/factory aggregates and time rollups.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bsc-pair-indexer/internal/indexer"
	"bsc-pair-indexer/internal/ingestion"
	"bsc-pair-indexer/internal/observability"
	"bsc-pair-indexer/internal/pricing"
	chstore "bsc-pair-indexer/internal/storage/clickhouse"
	"bsc-pair-indexer/internal/storage/memory"
	pgstore "bsc-pair-indexer/internal/storage/postgres"
)

func main() {
	mode := flag.String("mode", "live", "Ingestion mode: live or replay")
	wsEndpoint := flag.String("ws-endpoint", "", "WebSocket event feed endpoint")
	eventsFile := flag.String("events-file", "", "JSON-lines event fixture for replay mode")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN for the record archive (empty to disable)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")
	seedFile := flag.String("seed-file", "", "Seed fixture provisioning factory, tokens and pairs")
	startBlock := flag.Int64("start-block", 0, "Resume the ordering cursor after this block")
	startLogIndex := flag.Int64("start-log-index", 0, "Resume the ordering cursor after this log index")
	debug := flag.Bool("debug", false, "Log skipped events with missing prerequisites")

	wbnb := flag.String("wbnb", "", "Wrapped reference-currency token address")
	stables := flag.String("stables", "", "Comma-separated stablecoin addresses pinned to 1.0 USD")
	bnbStablePair := flag.String("bnb-stable-pair", "", "Pair whose reserve ratio defines the BNB/USD rate")
	routePairs := flag.String("route-pairs", "", "Comma-separated token=pair quote routes")

	flag.Parse()

	logger := log.New(os.Stdout, "[indexer] ", log.LstdFlags|log.Lshortfile)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err := run(ctx, logger, options{
		mode:          *mode,
		wsEndpoint:    *wsEndpoint,
		eventsFile:    *eventsFile,
		postgresDSN:   *postgresDSN,
		clickhouseDSN: *clickhouseDSN,
		useMemory:     *useMemory,
		seedFile:      *seedFile,
		startBlock:    *startBlock,
		startLogIndex: *startLogIndex,
		debug:         *debug,
		quote: pricing.QuoteConfig{
			WBNB:          *wbnb,
			Stables:       splitList(*stables),
			BNBStablePair: *bnbStablePair,
			RoutePairs:    parseRoutePairs(*routePairs),
		},
	})

	done <- err
	cancel()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Indexer failed: %v", err)
	}
	logger.Println("Shutdown complete")
}

type options struct {
	mode          string
	wsEndpoint    string
	eventsFile    string
	postgresDSN   string
	clickhouseDSN string
	useMemory     bool
	seedFile      string
	startBlock    int64
	startLogIndex int64
	debug         bool
	quote         pricing.QuoteConfig
}

func run(ctx context.Context, logger *log.Logger, opts options) error {
	stores, cleanup, err := buildStores(ctx, logger, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.seedFile != "" {
		fixture, err := ingestion.LoadSeedFile(opts.seedFile)
		if err != nil {
			return err
		}
		seedStores := ingestion.SeedStores{
			Pairs:   stores.Pairs,
			Tokens:  stores.Tokens,
			Factory: stores.Factory,
			Bundle:  stores.Bundle,
		}
		if err := ingestion.Seed(ctx, seedStores, fixture, logger); err != nil {
			return err
		}
	}

	oracle := pricing.NewQuoteOracle(stores.Pairs, opts.quote)
	if opts.quote.BNBStablePair == "" {
		logger.Println("No --bnb-stable-pair configured; all prices will derive to zero")
	}

	ixOpts := []indexer.Option{indexer.WithDebug(opts.debug)}

	var archive *chstore.RecordArchive
	if opts.clickhouseDSN != "" {
		conn, err := chstore.Connect(ctx, opts.clickhouseDSN)
		if err != nil {
			return fmt.Errorf("connect clickhouse: %w", err)
		}
		defer conn.Close()
		archive = chstore.NewRecordArchive(conn, chstore.DefaultArchiveBatchSize)
		ixOpts = append(ixOpts, indexer.WithRecordSink(archive))
		logger.Println("ClickHouse record archive enabled")
	}

	ix := indexer.New(stores, oracle, logger, ixOpts...)

	source, err := buildSource(logger, opts)
	if err != nil {
		return err
	}

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Source:        source,
		Indexer:       ix,
		StartBlock:    opts.startBlock,
		StartLogIndex: opts.startLogIndex,
		Logger:        logger,
	})

	runErr := runner.Run(ctx)

	if archive != nil {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer flushCancel()
		if err := archive.Flush(flushCtx); err != nil {
			logger.Printf("Final archive flush failed: %v", err)
		}
	}
	return runErr
}

// buildStores selects the storage backend. The cleanup closes whatever the
// backend opened.
func buildStores(ctx context.Context, logger *log.Logger, opts options) (indexer.Stores, func(), error) {
	if opts.useMemory {
		logger.Println("Using in-memory storage")
		return indexer.Stores{
			Pairs:        memory.NewPairStore(),
			Tokens:       memory.NewTokenStore(),
			Factory:      memory.NewFactoryStore(),
			Bundle:       memory.NewBundleStore(),
			Transactions: memory.NewTransactionStore(),
			Mints:        memory.NewMintStore(),
			Burns:        memory.NewBurnStore(),
			Swaps:        memory.NewSwapStore(),
			PairHours:    memory.NewPairHourDataStore(),
			PairDays:     memory.NewPairDayDataStore(),
			TokenDays:    memory.NewTokenDayDataStore(),
			FactoryDays:  memory.NewFactoryDayDataStore(),
		}, func() {}, nil
	}

	if opts.postgresDSN == "" {
		return indexer.Stores{}, nil, fmt.Errorf("either --postgres-dsn or --use-memory is required")
	}

	pool, err := pgstore.NewPool(ctx, opts.postgresDSN)
	if err != nil {
		return indexer.Stores{}, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pgstore.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return indexer.Stores{}, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Println("Connected to PostgreSQL")

	return indexer.Stores{
		Pairs:        pgstore.NewPairStore(pool),
		Tokens:       pgstore.NewTokenStore(pool),
		Factory:      pgstore.NewFactoryStore(pool),
		Bundle:       pgstore.NewBundleStore(pool),
		Transactions: pgstore.NewTransactionStore(pool),
		Mints:        pgstore.NewMintStore(pool),
		Burns:        pgstore.NewBurnStore(pool),
		Swaps:        pgstore.NewSwapStore(pool),
		PairHours:    pgstore.NewPairHourDataStore(pool),
		PairDays:     pgstore.NewPairDayDataStore(pool),
		TokenDays:    pgstore.NewTokenDayDataStore(pool),
		FactoryDays:  pgstore.NewFactoryDayDataStore(pool),
	}, pool.Close, nil
}

func buildSource(logger *log.Logger, opts options) (ingestion.EventSource, error) {
	switch opts.mode {
	case "live":
		if opts.wsEndpoint == "" {
			return nil, fmt.Errorf("--ws-endpoint is required in live mode")
		}
		return ingestion.NewWSEventSource(opts.wsEndpoint, nil, logger), nil
	case "replay":
		if opts.eventsFile == "" {
			return nil, fmt.Errorf("--events-file is required in replay mode")
		}
		return ingestion.NewFileReplaySource(opts.eventsFile, logger), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRoutePairs parses "token=pair,token=pair" quote route mappings.
func parseRoutePairs(s string) map[string]string {
	routes := make(map[string]string)
	for _, part := range splitList(s) {
		token, pair, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		routes[strings.TrimSpace(token)] = strings.TrimSpace(pair)
	}
	return routes
}
