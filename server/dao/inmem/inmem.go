// Package inmem is a non-persistent dao.Store backed by plain maps, used
// for local development and tests, mirroring the teacher's
// server/dao/inmem package.
package inmem

import "github.com/dekarrin/goldrun/server/dao"

// NewDatastore returns a dao.Store backed entirely by in-process memory.
// Nothing it holds survives process restart.
func NewDatastore() dao.Store {
	return &store{
		grammars: newGrammarsRepository(),
		keys:     newAPIKeysRepository(),
	}
}

type store struct {
	grammars *grammarsRepository
	keys     *apiKeysRepository
}

func (s *store) Grammars() dao.GrammarRepository { return s.grammars }
func (s *store) APIKeys() dao.APIKeyRepository   { return s.keys }
func (s *store) Close() error                    { return nil }
