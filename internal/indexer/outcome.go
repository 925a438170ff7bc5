package indexer

import "fmt"

// Entity kinds reported by skipped outcomes.
const (
	EntityPair        = "pair"
	EntityToken       = "token"
	EntityFactory     = "factory"
	EntityBundle      = "bundle"
	EntityTransaction = "transaction"
	EntityMint        = "mint"
	EntityBurn        = "burn"
)

// Outcome is the result of applying one event. A handler either applies the
// event fully (OK), or stops early because a prerequisite entity was missing
// (Skipped) — writes issued before the missing reference was discovered stay
// committed. Store I/O failures are ordinary errors, not outcomes.
type Outcome struct {
	// MissingKind and MissingKey identify the absent prerequisite when the
	// event was skipped. Both empty on success.
	MissingKind string
	MissingKey  string
}

// OK reports a fully applied event.
func OK() Outcome { return Outcome{} }

// SkippedMissing reports an event dropped because a prerequisite was absent.
func SkippedMissing(kind, key string) Outcome {
	return Outcome{MissingKind: kind, MissingKey: key}
}

// Skipped reports whether the event was dropped.
func (o Outcome) Skipped() bool { return o.MissingKind != "" }

func (o Outcome) String() string {
	if !o.Skipped() {
		return "ok"
	}
	return fmt.Sprintf("skipped: missing %s %s", o.MissingKind, o.MissingKey)
}
