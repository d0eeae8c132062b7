package tunas

import (
	"context"
	"testing"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/server/dao/inmem"
	"github.com/stretchr/testify/assert"
)

func Test_Service_GetGrammar(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := inmem.NewDatastore()
	svc := Service{DB: db}

	created, err := db.Grammars().Create(ctx, "expr", []byte{0xAB}, &types.Grammar{})
	assert.NoError(err)

	got, err := svc.GetGrammar(ctx, created.ID.String())
	assert.NoError(err)
	assert.Equal(created, got)
}

func Test_Service_GetGrammar_badID(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.GetGrammar(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, golderr.ErrBadArgument)
}

func Test_Service_GetGrammar_notFound(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.GetGrammar(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.ErrorIs(t, err, golderr.ErrNotFound)
}

func Test_Service_GetGrammarByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := inmem.NewDatastore()
	svc := Service{DB: db}

	created, err := db.Grammars().Create(ctx, "expr", nil, &types.Grammar{})
	assert.NoError(err)

	got, err := svc.GetGrammarByName(ctx, "expr")
	assert.NoError(err)
	assert.Equal(created, got)

	_, err = svc.GetGrammarByName(ctx, "nope")
	assert.ErrorIs(err, golderr.ErrNotFound)
}

func Test_Service_GetAllGrammars(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := inmem.NewDatastore()
	svc := Service{DB: db}

	_, err := db.Grammars().Create(ctx, "expr", nil, &types.Grammar{})
	assert.NoError(err)
	_, err = db.Grammars().Create(ctx, "other", nil, &types.Grammar{})
	assert.NoError(err)

	all, err := svc.GetAllGrammars(ctx)
	assert.NoError(err)
	assert.Len(all, 2)
}

func Test_Service_UploadGrammar_blankName(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.UploadGrammar(ctx, "", []byte{0x01})
	assert.ErrorIs(t, err, golderr.ErrBadArgument)
}

func Test_Service_UploadGrammar_malformedTable(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.UploadGrammar(ctx, "expr", []byte("not a real table"))
	assert.ErrorIs(t, err, golderr.ErrBadArgument)
}

func Test_Service_UploadGrammar_nameAlreadyExists(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := inmem.NewDatastore()
	svc := Service{DB: db}

	_, err := db.Grammars().Create(ctx, "expr", nil, &types.Grammar{})
	assert.NoError(err)

	_, err = svc.UploadGrammar(ctx, "expr", []byte("not a real table"))
	assert.ErrorIs(err, golderr.ErrAlreadyExists)
}

func Test_Service_DeleteGrammar(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := inmem.NewDatastore()
	svc := Service{DB: db}

	created, err := db.Grammars().Create(ctx, "expr", nil, &types.Grammar{})
	assert.NoError(err)

	deleted, err := svc.DeleteGrammar(ctx, created.ID.String())
	assert.NoError(err)
	assert.Equal(created, deleted)

	_, err = svc.GetGrammar(ctx, created.ID.String())
	assert.ErrorIs(err, golderr.ErrNotFound)
}

func Test_Service_DeleteGrammar_badID(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.DeleteGrammar(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, golderr.ErrBadArgument)
}

func Test_Service_ParseInput_badID(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.ParseInput(ctx, "not-a-uuid", "1 + 1")
	assert.ErrorIs(t, err, golderr.ErrBadArgument)
}

func Test_Service_ParseInput_notFound(t *testing.T) {
	ctx := context.Background()
	svc := Service{DB: inmem.NewDatastore()}

	_, err := svc.ParseInput(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "1 + 1")
	assert.ErrorIs(t, err, golderr.ErrNotFound)
}
