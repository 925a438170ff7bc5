package ingestion

import (
	"encoding/json"
	"fmt"
	"math/big"

	"bsc-pair-indexer/internal/domain"
)

// Event type discriminators used by the JSON feed.
const (
	TypeTransfer = "transfer"
	TypeMint     = "mint"
	TypeBurn     = "burn"
	TypeSwap     = "swap"
	TypeSync     = "sync"
)

// eventEnvelope is the wire shape of a raw pair event. Integer token amounts
// are decimal strings to survive values beyond 64 bits.
type eventEnvelope struct {
	Type      string `json:"type"`
	Pair      string `json:"pair"`
	TxHash    string `json:"txHash"`
	TxFrom    string `json:"txFrom"`
	Block     int64  `json:"block"`
	Timestamp int64  `json:"timestamp"`
	LogIndex  int64  `json:"logIndex"`

	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Value string `json:"value,omitempty"`

	Sender  string `json:"sender,omitempty"`
	Amount0 string `json:"amount0,omitempty"`
	Amount1 string `json:"amount1,omitempty"`

	Amount0In  string `json:"amount0In,omitempty"`
	Amount1In  string `json:"amount1In,omitempty"`
	Amount0Out string `json:"amount0Out,omitempty"`
	Amount1Out string `json:"amount1Out,omitempty"`

	Reserve0 string `json:"reserve0,omitempty"`
	Reserve1 string `json:"reserve1,omitempty"`
}

// DecodeEvent parses one JSON feed message into a domain event.
func DecodeEvent(data []byte) (domain.Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return env.toDomain()
}

func (env *eventEnvelope) toDomain() (domain.Event, error) {
	meta := domain.EventMeta{
		PairAddress: env.Pair,
		TxHash:      env.TxHash,
		TxFrom:      env.TxFrom,
		Block:       env.Block,
		Timestamp:   env.Timestamp,
		LogIndex:    env.LogIndex,
	}
	if meta.PairAddress == "" || meta.TxHash == "" {
		return nil, fmt.Errorf("event %s at block %d: missing pair or txHash", env.Type, env.Block)
	}

	switch env.Type {
	case TypeTransfer:
		value, err := parseAmount(env.Value, "value")
		if err != nil {
			return nil, err
		}
		return &domain.TransferEvent{EventMeta: meta, From: env.From, To: env.To, Value: value}, nil
	case TypeMint:
		amount0, err := parseAmount(env.Amount0, "amount0")
		if err != nil {
			return nil, err
		}
		amount1, err := parseAmount(env.Amount1, "amount1")
		if err != nil {
			return nil, err
		}
		return &domain.PairMintEvent{EventMeta: meta, Sender: env.Sender, Amount0: amount0, Amount1: amount1}, nil
	case TypeBurn:
		amount0, err := parseAmount(env.Amount0, "amount0")
		if err != nil {
			return nil, err
		}
		amount1, err := parseAmount(env.Amount1, "amount1")
		if err != nil {
			return nil, err
		}
		return &domain.PairBurnEvent{EventMeta: meta, Amount0: amount0, Amount1: amount1}, nil
	case TypeSwap:
		amount0In, err := parseAmount(env.Amount0In, "amount0In")
		if err != nil {
			return nil, err
		}
		amount1In, err := parseAmount(env.Amount1In, "amount1In")
		if err != nil {
			return nil, err
		}
		amount0Out, err := parseAmount(env.Amount0Out, "amount0Out")
		if err != nil {
			return nil, err
		}
		amount1Out, err := parseAmount(env.Amount1Out, "amount1Out")
		if err != nil {
			return nil, err
		}
		return &domain.SwapRawEvent{
			EventMeta:  meta,
			Sender:     env.Sender,
			To:         env.To,
			Amount0In:  amount0In,
			Amount1In:  amount1In,
			Amount0Out: amount0Out,
			Amount1Out: amount1Out,
		}, nil
	case TypeSync:
		reserve0, err := parseAmount(env.Reserve0, "reserve0")
		if err != nil {
			return nil, err
		}
		reserve1, err := parseAmount(env.Reserve1, "reserve1")
		if err != nil {
			return nil, err
		}
		return &domain.SyncEvent{EventMeta: meta, Reserve0: reserve0, Reserve1: reserve1}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
}

// parseAmount parses a base-10 integer string. Empty means zero.
func parseAmount(s, field string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", field, s)
	}
	return n, nil
}
