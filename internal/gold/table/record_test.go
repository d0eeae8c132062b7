package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_nextRecord_readsMarkerAndCount(t *testing.T) {
	assert := assert.New(t)

	data := []byte{'M', 'I', 0x02, 0x00, 'b', recSymbol, 'E'}
	r := newTagReader(data)

	rec, err := nextRecord(r)
	assert.NoError(err)
	assert.NotNil(rec)
	assert.Equal(2, rec.total)

	kind, err := rec.kind()
	assert.NoError(err)
	assert.Equal(byte(recSymbol), kind)

	assert.NoError(rec.empty())
	assert.NoError(rec.checkExact())
}

func Test_nextRecord_atEOF(t *testing.T) {
	r := newTagReader(nil)

	rec, err := nextRecord(r)
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func Test_nextRecord_badMarker(t *testing.T) {
	r := newTagReader([]byte{'X'})

	_, err := nextRecord(r)
	assert.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, MalformedRecord, loadErr.Kind)
}

func Test_multiRecord_checkExact_mismatch(t *testing.T) {
	data := []byte{'M', 'I', 0x02, 0x00, 'b', recSymbol}
	r := newTagReader(data)

	rec, err := nextRecord(r)
	assert.NoError(t, err)

	_, err = rec.kind()
	assert.NoError(t, err)

	err = rec.checkExact()
	assert.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, MalformedRecord, loadErr.Kind)
}

func Test_multiRecord_skipRest(t *testing.T) {
	assert := assert.New(t)

	data := []byte{'M', 'I', 0x03, 0x00, 'b', recSymbol, 'B', 1, 'E'}
	r := newTagReader(data)

	rec, err := nextRecord(r)
	assert.NoError(err)

	_, err = rec.kind()
	assert.NoError(err)

	assert.NoError(rec.skipRest())
	assert.NoError(rec.checkExact())
}

func Test_multiRecord_typedFields(t *testing.T) {
	assert := assert.New(t)

	data := append([]byte{'M', 'I', 0x04, 0x00}, []byte{'S'}...)
	data = append(data, utf16zBytes("expr")...)
	data = append(data, 'I', 0x07, 0x00)
	data = append(data, 'B', 1)
	data = append(data, 'E')

	r := newTagReader(data)
	rec, err := nextRecord(r)
	assert.NoError(err)

	s, err := rec.string_()
	assert.NoError(err)
	assert.Equal("expr", s)

	n, err := rec.int_()
	assert.NoError(err)
	assert.Equal(7, n)

	b, err := rec.bool_()
	assert.NoError(err)
	assert.True(b)

	assert.NoError(rec.empty())
	assert.NoError(rec.checkExact())
}
