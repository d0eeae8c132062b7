package tunas

import (
	"context"
	"errors"

	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"

	"github.com/dekarrin/goldrun"
)

// GetAllGrammars returns all grammars currently cached.
func (svc Service) GetAllGrammars(ctx context.Context) ([]dao.Grammar, error) {
	grammars, err := svc.DB.Grammars().GetAll(ctx)
	if err != nil {
		return nil, golderr.WrapDB("", err)
	}

	return grammars, nil
}

// GetGrammar returns the cached grammar with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no grammar with that ID
// exists, it will match golderr.ErrNotFound. If the error occurred due to an
// unexpected problem with the DB, it will match golderr.ErrDB. Finally, if
// there is an issue with one of the arguments, it will match
// golderr.ErrBadArgument.
func (svc Service) GetGrammar(ctx context.Context, id string) (dao.Grammar, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Grammar{}, golderr.New("ID is not valid", golderr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().Get(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, golderr.ErrNotFound
		}
		return dao.Grammar{}, golderr.WrapDB("could not get grammar", err)
	}

	return g, nil
}

// GetGrammarByName returns the cached grammar with the given name.
func (svc Service) GetGrammarByName(ctx context.Context, name string) (dao.Grammar, error) {
	g, err := svc.DB.Grammars().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, golderr.ErrNotFound
		}
		return dao.Grammar{}, golderr.WrapDB("could not get grammar", err)
	}

	return g, nil
}

// UploadGrammar decodes tableData as a compiled GOLD grammar table and
// caches the result under name. Returns the newly-cached entry.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If a grammar with that name
// is already cached, it will match golderr.ErrAlreadyExists. If tableData
// cannot be decoded, it will match golderr.ErrBadArgument. If the error
// occurred due to an unexpected problem with the DB, it will match
// golderr.ErrDB.
func (svc Service) UploadGrammar(ctx context.Context, name string, tableData []byte) (dao.Grammar, error) {
	if name == "" {
		return dao.Grammar{}, golderr.New("name cannot be blank", golderr.ErrBadArgument)
	}

	_, err := svc.DB.Grammars().GetByName(ctx, name)
	if err == nil {
		return dao.Grammar{}, golderr.New("a grammar with that name already exists", golderr.ErrAlreadyExists)
	} else if !errors.Is(err, dao.ErrNotFound) {
		return dao.Grammar{}, golderr.WrapDB("", err)
	}

	compiled, err := goldrun.LoadGrammar(tableData)
	if err != nil {
		return dao.Grammar{}, golderr.New("could not load grammar table: "+err.Error(), err, golderr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().Create(ctx, name, tableData, compiled)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Grammar{}, golderr.ErrAlreadyExists
		}
		return dao.Grammar{}, golderr.WrapDB("could not create grammar", err)
	}

	return g, nil
}

// DeleteGrammar deletes the cached grammar with the given ID. It returns the
// deleted entry just after it was deleted.
func (svc Service) DeleteGrammar(ctx context.Context, id string) (dao.Grammar, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Grammar{}, golderr.New("ID is not valid", golderr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, golderr.ErrNotFound
		}
		return dao.Grammar{}, golderr.WrapDB("could not delete grammar", err)
	}

	return g, nil
}

// ParseInput runs input through the lexer and parser of the cached grammar
// with the given ID and returns the outcome.
func (svc Service) ParseInput(ctx context.Context, id string, input string) (goldrun.ParseResult, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return goldrun.ParseResult{}, golderr.New("ID is not valid", golderr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().Get(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return goldrun.ParseResult{}, golderr.ErrNotFound
		}
		return goldrun.ParseResult{}, golderr.WrapDB("could not get grammar", err)
	}

	res := goldrun.Parse(ctx, g.Compiled, input)
	return res, nil
}
