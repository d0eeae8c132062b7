package golderr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New_Error(t *testing.T) {
	testCases := []struct {
		name   string
		msg    string
		causes []error
		expect string
	}{
		{
			name:   "message only",
			msg:    "something went wrong",
			expect: "something went wrong",
		},
		{
			name:   "message with one cause",
			msg:    "could not load grammar",
			causes: []error{errors.New("bad byte at offset 4")},
			expect: "could not load grammar: bad byte at offset 4",
		},
		{
			name:   "no message, cause only",
			causes: []error{ErrNotFound},
			expect: ErrNotFound.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := New(tc.msg, tc.causes...)

			assert.Equal(tc.expect, err.Error())
		})
	}
}

func Test_Error_Is(t *testing.T) {
	wrapped := New("could not create API key", ErrBadArgument)

	assert.True(t, errors.Is(wrapped, ErrBadArgument))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func Test_WrapDB(t *testing.T) {
	assert := assert.New(t)

	driverErr := errors.New("connection refused")
	err := WrapDB("could not get grammar", driverErr)

	assert.True(errors.Is(err, ErrDB))
	assert.True(errors.Is(err, driverErr))
	assert.Equal("could not get grammar: connection refused", err.Error())
}

func Test_WrapDB_blankMsg(t *testing.T) {
	assert := assert.New(t)

	driverErr := errors.New("disk full")
	err := WrapDB("", driverErr)

	assert.Equal("disk full", err.Error())
	assert.True(errors.Is(err, ErrDB))
}

func Test_Error_Unwrap(t *testing.T) {
	assert := assert.New(t)

	driverErr := errors.New("timeout")
	err := WrapDB("could not delete grammar", driverErr)

	unwrapped := err.Unwrap()
	assert.Len(unwrapped, 2)
	assert.Contains(unwrapped, driverErr)
	assert.Contains(unwrapped, ErrDB)
}

func Test_Error_Is_sameShapeEqual(t *testing.T) {
	assert := assert.New(t)

	a := New("ID is not valid", ErrBadArgument)
	b := New("ID is not valid", ErrBadArgument)

	assert.True(errors.Is(a, b))
}
