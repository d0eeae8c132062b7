package sqlite

import (
	"context"
	"testing"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_grammarsRepository_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.grammars.Create(ctx, "calculator", []byte{0x01, 0x02}, &types.Grammar{})
	assert.NoError(err)
	assert.Equal("calculator", created.Name)
	assert.Equal([]byte{0x01, 0x02}, created.TableData)
	assert.NotNil(created.Compiled)

	fetched, err := st.grammars.Get(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.ID, fetched.ID)
	assert.Equal("calculator", fetched.Name)
	assert.Equal([]byte{0x01, 0x02}, fetched.TableData)
}

func Test_grammarsRepository_Create_duplicateName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.grammars.Create(ctx, "calculator", nil, &types.Grammar{})
	assert.NoError(t, err)

	_, err = st.grammars.Create(ctx, "calculator", nil, &types.Grammar{})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func Test_grammarsRepository_Get_notFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	id, err := uuid.NewRandom()
	assert.NoError(t, err)

	_, err = st.grammars.Get(ctx, id)
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_grammarsRepository_GetByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.grammars.Create(ctx, "calculator", nil, &types.Grammar{})
	assert.NoError(err)

	fetched, err := st.grammars.GetByName(ctx, "calculator")
	assert.NoError(err)
	assert.Equal(created.ID, fetched.ID)
}

func Test_grammarsRepository_GetByName_notFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.grammars.GetByName(ctx, "no-such-grammar")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_grammarsRepository_GetAll_sortedByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.grammars.Create(ctx, "zebra", nil, &types.Grammar{})
	assert.NoError(err)
	_, err = st.grammars.Create(ctx, "alpha", nil, &types.Grammar{})
	assert.NoError(err)

	all, err := st.grammars.GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 2)
	assert.Equal("alpha", all[0].Name)
	assert.Equal("zebra", all[1].Name)
}

func Test_grammarsRepository_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.grammars.Create(ctx, "calculator", nil, &types.Grammar{})
	assert.NoError(err)

	deleted, err := st.grammars.Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = st.grammars.Get(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_grammarsRepository_Delete_notFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	id, err := uuid.NewRandom()
	assert.NoError(t, err)

	_, err = st.grammars.Delete(ctx, id)
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_grammarsRepository_Delete_nameReusableAfterDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.grammars.Create(ctx, "calculator", nil, &types.Grammar{})
	assert.NoError(t, err)

	_, err = st.grammars.Delete(ctx, created.ID)
	assert.NoError(t, err)

	_, err = st.grammars.Create(ctx, "calculator", nil, &types.Grammar{})
	assert.NoError(t, err)
}
