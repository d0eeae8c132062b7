package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectCommandReader_ReadCommand(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("first\nsecond\n"))

	line, err := r.ReadCommand()
	assert.NoError(err)
	assert.Equal("first", line)

	line, err = r.ReadCommand()
	assert.NoError(err)
	assert.Equal("second", line)

	_, err = r.ReadCommand()
	assert.ErrorIs(err, io.EOF)
}

func Test_DirectCommandReader_skipsBlankLinesByDefault(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("\n\ncommand\n"))

	line, err := r.ReadCommand()
	assert.NoError(err)
	assert.Equal("command", line)
}

func Test_DirectCommandReader_trimsWhitespace(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("  spaced out  \n"))

	line, err := r.ReadCommand()
	assert.NoError(err)
	assert.Equal("spaced out", line)
}

func Test_DirectCommandReader_AllowBlank(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("\ncommand\n"))
	r.AllowBlank(true)

	line, err := r.ReadCommand()
	assert.NoError(err)
	assert.Equal("", line)

	line, err = r.ReadCommand()
	assert.NoError(err)
	assert.Equal("command", line)
}

func Test_DirectCommandReader_EOFWithNoFinalNewline(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("last"))

	line, err := r.ReadCommand()
	assert.NoError(err)
	assert.Equal("last", line)

	_, err = r.ReadCommand()
	assert.ErrorIs(err, io.EOF)
}

func Test_DirectCommandReader_Close(t *testing.T) {
	r := NewDirectReader(strings.NewReader(""))
	assert.NoError(t, r.Close())
}

func Test_DirectCommandReader_emptyInput(t *testing.T) {
	r := NewDirectReader(strings.NewReader(""))

	_, err := r.ReadCommand()
	assert.ErrorIs(t, err, io.EOF)
}
