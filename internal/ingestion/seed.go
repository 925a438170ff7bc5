package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// SeedFixture describes the entities that must exist before event processing
// begins. Pair and token creation is outside the event handlers, so a fresh
// deployment is provisioned from a fixture like this.
type SeedFixture struct {
	Factory  string          `json:"factory"`
	BNBPrice decimal.Decimal `json:"bnbPrice"`
	Tokens   []SeedToken     `json:"tokens"`
	Pairs    []SeedPair      `json:"pairs"`
}

// SeedToken is a token row in the fixture.
type SeedToken struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

// SeedPair is a pair row in the fixture.
type SeedPair struct {
	Address            string `json:"address"`
	Token0             string `json:"token0"`
	Token1             string `json:"token1"`
	CreatedAtBlock     int64  `json:"createdAtBlock"`
	CreatedAtTimestamp int64  `json:"createdAtTimestamp"`
}

// SeedStores bundles the stores the seeder writes to.
type SeedStores struct {
	Pairs   storage.PairStore
	Tokens  storage.TokenStore
	Factory storage.FactoryStore
	Bundle  storage.BundleStore
}

// LoadSeedFile reads and parses a seed fixture.
func LoadSeedFile(path string) (*SeedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var fixture SeedFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if fixture.Factory == "" {
		return nil, fmt.Errorf("seed file %s: factory address is required", path)
	}
	return &fixture, nil
}

// Seed provisions the fixture's entities. Existing rows are overwritten;
// seeding a live store mid-run would reset aggregates, so only seed fresh
// deployments.
func Seed(ctx context.Context, stores SeedStores, fixture *SeedFixture, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	if err := stores.Factory.Save(ctx, &domain.Factory{
		Address:   fixture.Factory,
		PairCount: int64(len(fixture.Pairs)),
	}); err != nil {
		return fmt.Errorf("seed factory: %w", err)
	}
	if err := stores.Bundle.Save(ctx, &domain.Bundle{BNBPrice: fixture.BNBPrice}); err != nil {
		return fmt.Errorf("seed bundle: %w", err)
	}

	for _, t := range fixture.Tokens {
		token := &domain.Token{
			Address:  t.Address,
			Symbol:   t.Symbol,
			Name:     t.Name,
			Decimals: t.Decimals,
		}
		if err := stores.Tokens.Save(ctx, token); err != nil {
			return fmt.Errorf("seed token %s: %w", t.Address, err)
		}
	}

	for _, p := range fixture.Pairs {
		pair := &domain.Pair{
			Address:            p.Address,
			Token0:             p.Token0,
			Token1:             p.Token1,
			CreatedAtBlock:     p.CreatedAtBlock,
			CreatedAtTimestamp: p.CreatedAtTimestamp,
		}
		if err := stores.Pairs.Save(ctx, pair); err != nil {
			return fmt.Errorf("seed pair %s: %w", p.Address, err)
		}
	}

	logger.Printf("[seed] provisioned factory %s, %d tokens, %d pairs",
		fixture.Factory, len(fixture.Tokens), len(fixture.Pairs))
	return nil
}
