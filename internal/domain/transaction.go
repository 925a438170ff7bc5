package domain

import "fmt"

// Transaction groups the logical Mint/Burn/Swap records reconstructed from a
// single ledger transaction. Created lazily on the first Transfer or Swap
// event for its hash, never deleted.
//
// Record identifiers are derived from explicit per-transaction counters, not
// from sequence length: a counter never decrements, even when a fee mint is
// absorbed and popped from the sequence, so reprocessing an event against
// already-mutated state produces an identifier mismatch instead of silently
// reusing a slot.
type Transaction struct {
	Hash      string
	Block     int64
	Timestamp int64

	Mints []string // ordered Mint record ids, append order
	Burns []string // ordered Burn record ids, append order
	Swaps []string // ordered Swap record ids, append order

	NextMint int64 // next mint sequence number, monotonically increasing
	NextBurn int64
	NextSwap int64
}

// NewTransaction creates an empty transaction for the given hash.
func NewTransaction(hash string, block, timestamp int64) *Transaction {
	return &Transaction{Hash: hash, Block: block, Timestamp: timestamp}
}

// NextMintID reserves and returns the next mint record identifier.
func (t *Transaction) NextMintID() string {
	id := recordID(t.Hash, t.NextMint)
	t.NextMint++
	return id
}

// NextBurnID reserves and returns the next burn record identifier.
func (t *Transaction) NextBurnID() string {
	id := recordID(t.Hash, t.NextBurn)
	t.NextBurn++
	return id
}

// NextSwapID reserves and returns the next swap record identifier.
func (t *Transaction) NextSwapID() string {
	id := recordID(t.Hash, t.NextSwap)
	t.NextSwap++
	return id
}

// AppendMint appends a mint record id to the mint sequence.
func (t *Transaction) AppendMint(id string) { t.Mints = append(t.Mints, id) }

// AppendBurn appends a burn record id to the burn sequence.
func (t *Transaction) AppendBurn(id string) { t.Burns = append(t.Burns, id) }

// AppendSwap appends a swap record id to the swap sequence.
func (t *Transaction) AppendSwap(id string) { t.Swaps = append(t.Swaps, id) }

// LastMint returns the most recently appended mint id, if any.
func (t *Transaction) LastMint() (string, bool) {
	if len(t.Mints) == 0 {
		return "", false
	}
	return t.Mints[len(t.Mints)-1], true
}

// LastBurn returns the most recently appended burn id, if any.
func (t *Transaction) LastBurn() (string, bool) {
	if len(t.Burns) == 0 {
		return "", false
	}
	return t.Burns[len(t.Burns)-1], true
}

// PopLastMint removes and returns the last mint id. Used when an open mint is
// reinterpreted as a fee distribution attached to a burn.
func (t *Transaction) PopLastMint() (string, bool) {
	if len(t.Mints) == 0 {
		return "", false
	}
	id := t.Mints[len(t.Mints)-1]
	t.Mints = t.Mints[:len(t.Mints)-1]
	return id, true
}

func recordID(hash string, seq int64) string {
	return fmt.Sprintf("%s-%d", hash, seq)
}
