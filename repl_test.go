package goldrun

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Repl_RunUntilQuit_parsesUntilQuit(t *testing.T) {
	assert := assert.New(t)

	g, _ := idPairGrammar()
	in := bytes.NewBufferString("a b\nQUIT\n")
	var out bytes.Buffer

	r, err := NewRepl(g, in, &out, true)
	assert.NoError(err)
	if err != nil {
		return
	}

	err = r.RunUntilQuit()
	assert.NoError(err)

	output := out.String()
	assert.Contains(output, "goldi interactive grammar session")
	assert.Contains(output, "(direct input mode)")
	assert.Contains(output, "S")
	assert.Contains(output, "Goodbye")
}

func Test_Repl_RunUntilQuit_endsAtEOFWithoutQuit(t *testing.T) {
	assert := assert.New(t)

	g, _ := idPairGrammar()
	in := bytes.NewBufferString("a b\n")
	var out bytes.Buffer

	r, err := NewRepl(g, in, &out, true)
	assert.NoError(err)
	if err != nil {
		return
	}

	err = r.RunUntilQuit()
	assert.NoError(err)
	assert.Contains(out.String(), "Goodbye")
}

func Test_Repl_RunUntilQuit_reportsParseErrors(t *testing.T) {
	assert := assert.New(t)

	g, _ := idPairGrammar()
	in := bytes.NewBufferString("a\nQUIT\n")
	var out bytes.Buffer

	r, err := NewRepl(g, in, &out, true)
	assert.NoError(err)
	if err != nil {
		return
	}

	err = r.RunUntilQuit()
	assert.NoError(err)
	assert.Contains(out.String(), "parse error")
}

func Test_Repl_Close_errorsWhileRunning(t *testing.T) {
	g, _ := idPairGrammar()
	var out bytes.Buffer
	r, err := NewRepl(g, strings.NewReader(""), &out, true)
	assert.NoError(t, err)
	if err != nil {
		return
	}

	r.running = true
	assert.Error(t, r.Close())
}

func Test_Repl_Close_closesWhenNotRunning(t *testing.T) {
	g, _ := idPairGrammar()
	var out bytes.Buffer
	r, err := NewRepl(g, strings.NewReader(""), &out, true)
	assert.NoError(t, err)
	if err != nil {
		return
	}

	assert.NoError(t, r.Close())
}
