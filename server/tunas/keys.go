package tunas

import (
	"context"
	"errors"

	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"
)

// GetAllAPIKeys returns all API keys currently issued.
func (svc Service) GetAllAPIKeys(ctx context.Context) ([]dao.APIKey, error) {
	keys, err := svc.DB.APIKeys().GetAll(ctx)
	if err != nil {
		return nil, golderr.WrapDB("", err)
	}

	return keys, nil
}

// CreateAPIKey issues a new API key for the given owner. Returns the newly
// issued key, including its key material.
func (svc Service) CreateAPIKey(ctx context.Context, owner string) (dao.APIKey, error) {
	if owner == "" {
		return dao.APIKey{}, golderr.New("owner cannot be blank", golderr.ErrBadArgument)
	}

	k, err := svc.DB.APIKeys().Create(ctx, owner)
	if err != nil {
		return dao.APIKey{}, golderr.WrapDB("could not create API key", err)
	}

	return k, nil
}

// DeleteAPIKey revokes the API key with the given ID. It returns the revoked
// entry just after it was deleted.
func (svc Service) DeleteAPIKey(ctx context.Context, id string) (dao.APIKey, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.APIKey{}, golderr.New("ID is not valid", golderr.ErrBadArgument)
	}

	k, err := svc.DB.APIKeys().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.APIKey{}, golderr.ErrNotFound
		}
		return dao.APIKey{}, golderr.WrapDB("could not delete API key", err)
	}

	return k, nil
}
