package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/dekarrin/goldrun/internal/util"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"
)

func newAPIKeysRepository() *apiKeysRepository {
	return &apiKeysRepository{
		byID:     make(map[uuid.UUID]dao.APIKey),
		byKeyIdx: make(map[string]uuid.UUID),
	}
}

type apiKeysRepository struct {
	byID     map[uuid.UUID]dao.APIKey
	byKeyIdx map[string]uuid.UUID
}

func (r *apiKeysRepository) Create(ctx context.Context, owner string) (dao.APIKey, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate ID: %w", err)
	}
	keyUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.APIKey{}, fmt.Errorf("could not generate key: %w", err)
	}

	k := dao.APIKey{
		ID:      id,
		Owner:   owner,
		Key:     keyUUID.String(),
		Created: time.Now(),
	}
	r.byID[id] = k
	r.byKeyIdx[k.Key] = id
	return k, nil
}

func (r *apiKeysRepository) GetByKey(ctx context.Context, key string) (dao.APIKey, error) {
	id, ok := r.byKeyIdx[key]
	if !ok {
		return dao.APIKey{}, dao.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *apiKeysRepository) GetAll(ctx context.Context) ([]dao.APIKey, error) {
	all := make([]dao.APIKey, 0, len(r.byID))
	for _, k := range r.byID {
		all = append(all, k)
	}
	return util.SortBy(all, func(l, r dao.APIKey) bool {
		return l.Created.Before(r.Created)
	}), nil
}

func (r *apiKeysRepository) Delete(ctx context.Context, id uuid.UUID) (dao.APIKey, error) {
	k, ok := r.byID[id]
	if !ok {
		return dao.APIKey{}, dao.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byKeyIdx, k.Key)
	return k, nil
}
