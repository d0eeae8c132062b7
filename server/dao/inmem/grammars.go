package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/internal/util"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"
)

func newGrammarsRepository() *grammarsRepository {
	return &grammarsRepository{
		byID:      make(map[uuid.UUID]dao.Grammar),
		byNameIdx: make(map[string]uuid.UUID),
	}
}

type grammarsRepository struct {
	byID      map[uuid.UUID]dao.Grammar
	byNameIdx map[string]uuid.UUID
}

func (r *grammarsRepository) Create(ctx context.Context, name string, tableData []byte, compiled *types.Grammar) (dao.Grammar, error) {
	if _, exists := r.byNameIdx[name]; exists {
		return dao.Grammar{}, dao.ErrAlreadyExists
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	g := dao.Grammar{
		ID:        id,
		Name:      name,
		Created:   time.Now(),
		TableData: tableData,
		Compiled:  compiled,
	}
	r.byID[id] = g
	r.byNameIdx[name] = id
	return g, nil
}

func (r *grammarsRepository) Get(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g, ok := r.byID[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	return g, nil
}

func (r *grammarsRepository) GetByName(ctx context.Context, name string) (dao.Grammar, error) {
	id, ok := r.byNameIdx[name]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *grammarsRepository) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	all := make([]dao.Grammar, 0, len(r.byID))
	for _, g := range r.byID {
		all = append(all, g)
	}
	return util.SortBy(all, func(l, r dao.Grammar) bool {
		return l.Name < r.Name
	}), nil
}

func (r *grammarsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g, ok := r.byID[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byNameIdx, g.Name)
	return g, nil
}
