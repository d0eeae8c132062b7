// Package dao defines the persistence interfaces goldserver caches
// compiled grammars and API keys behind, in the style of the teacher's
// server/dao package: a Store aggregate handing out one repository
// interface per entity, so callers never depend on which backing engine
// (in-memory or sqlite) is actually in use.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("entity not found")
	ErrAlreadyExists       = errors.New("entity with same identifying information already exists")
	ErrConstraintViolation = errors.New("database constraint violated")
)

// Store is the top-level persistence handle for goldserver.
type Store interface {
	Grammars() GrammarRepository
	APIKeys() APIKeyRepository
	Close() error
}

// Grammar is one cached, compiled grammar table (SPEC_FULL §11).
type Grammar struct {
	ID      uuid.UUID
	Name    string
	Created time.Time

	// TableData is the original compiled GOLD table bytes, kept so a
	// cache entry can be re-exported without the uploader resending it.
	TableData []byte

	// Compiled is the already-linked in-memory grammar table.Load
	// produced from TableData. The whole point of this cache is to not
	// re-run that decode on every parse request.
	Compiled *types.Grammar
}

// GrammarRepository persists Grammar cache entries.
type GrammarRepository interface {
	Create(ctx context.Context, name string, tableData []byte, compiled *types.Grammar) (Grammar, error)
	Get(ctx context.Context, id uuid.UUID) (Grammar, error)
	GetByName(ctx context.Context, name string) (Grammar, error)
	GetAll(ctx context.Context) ([]Grammar, error)
	Delete(ctx context.Context, id uuid.UUID) (Grammar, error)
}

// APIKey authorizes uploading and deleting grammars and managing API keys on
// a running goldserver. Parsing against an already-cached grammar never
// requires one.
type APIKey struct {
	ID      uuid.UUID
	Owner   string
	Key     string
	Created time.Time
}

// APIKeyRepository persists API keys.
type APIKeyRepository interface {
	Create(ctx context.Context, owner string) (APIKey, error)
	GetByKey(ctx context.Context, key string) (APIKey, error)
	GetAll(ctx context.Context) ([]APIKey, error)
	Delete(ctx context.Context, id uuid.UUID) (APIKey, error)
}
