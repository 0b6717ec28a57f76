// Package repo provides the persisted key-value slot backends the identity
// store writes its document into. A slot holds one opaque byte payload per
// key; the store owns serialization and treats every backend identically.
package repo

import (
	"context"
	"errors"
)

// ErrSlotEmpty indicates no payload has ever been saved under the key, or the
// key has been deleted.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a named persisted key-value slot with whole-payload load/replace
// semantics. Implementations: Postgres (service deployments), Badger (local
// embedded runs), Memory (tests).
type Slot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}
