package table

import (
	"testing"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/stretchr/testify/assert"
)

func Test_promoteV1Groups_blockComment(t *testing.T) {
	assert := assert.New(t)

	raw := newRawTable(types.V1)
	raw.symbols[0] = rawSymbol{index: 0, name: "Comment Start", kind: types.GroupStart}
	raw.symbols[1] = rawSymbol{index: 1, name: "Comment End", kind: types.GroupEnd}

	promoteV1Groups(raw)

	assert.Len(raw.groups, 1)
	g := raw.groups[0]
	assert.Equal("Comment Start", g.name)
	assert.Equal(0, g.container)
	assert.Equal(0, g.start)
	assert.Equal(1, g.end)
	assert.Equal(types.Token, g.advance)
	assert.Equal(types.Closed, g.ending)
}

func Test_promoteV1Groups_lineCommentWithNewline(t *testing.T) {
	assert := assert.New(t)

	raw := newRawTable(types.V1)
	raw.symbols[0] = rawSymbol{index: 0, name: "Comment Line", kind: types.CommentLine}
	raw.symbols[1] = rawSymbol{index: 1, name: "NewLine", kind: types.Terminal}

	promoteV1Groups(raw)

	assert.Len(raw.groups, 1)
	g := raw.groups[0]
	assert.Equal("Comment Line", g.name)
	assert.Equal(0, g.container)
	assert.Equal(0, g.start)
	assert.Equal(1, g.end)
	assert.Equal(types.Character, g.advance)
	assert.Equal(types.Open, g.ending)
	assert.Empty(raw.warnings)
}

func Test_promoteV1Groups_lineCommentCaseInsensitiveNewline(t *testing.T) {
	assert := assert.New(t)

	raw := newRawTable(types.V1)
	raw.symbols[0] = rawSymbol{index: 0, name: "Comment Line", kind: types.CommentLine}
	raw.symbols[1] = rawSymbol{index: 1, name: "Newline", kind: types.Terminal}

	promoteV1Groups(raw)

	assert.Len(raw.groups, 1)
	assert.Equal(1, raw.groups[0].end)
}

func Test_promoteV1Groups_lineCommentWithoutNewlineWarns(t *testing.T) {
	assert := assert.New(t)

	raw := newRawTable(types.V1)
	raw.symbols[0] = rawSymbol{index: 0, name: "Comment Line", kind: types.CommentLine}

	promoteV1Groups(raw)

	assert.Empty(raw.groups)
	assert.Len(raw.warnings, 1)
	assert.Contains(raw.warnings[0], "Comment Line")
}

func Test_promoteV1Groups_multipleStartsPairWithDistinctEnds(t *testing.T) {
	assert := assert.New(t)

	raw := newRawTable(types.V1)
	raw.symbols[0] = rawSymbol{index: 0, name: "Start A", kind: types.GroupStart}
	raw.symbols[1] = rawSymbol{index: 1, name: "Start B", kind: types.GroupStart}
	raw.symbols[2] = rawSymbol{index: 2, name: "End A", kind: types.GroupEnd}
	raw.symbols[3] = rawSymbol{index: 3, name: "End B", kind: types.GroupEnd}

	promoteV1Groups(raw)

	assert.Len(raw.groups, 2)

	ends := map[int]bool{}
	for _, g := range raw.groups {
		ends[g.end] = true
	}
	assert.True(ends[2])
	assert.True(ends[3])
}

func Test_promoteV1Groups_noStartsOrCommentLines(t *testing.T) {
	raw := newRawTable(types.V1)
	raw.symbols[0] = rawSymbol{index: 0, name: "id", kind: types.Terminal}

	promoteV1Groups(raw)

	assert.Empty(t, raw.groups)
	assert.Empty(t, raw.warnings)
}

func Test_promoteV1Groups_appendsAfterExistingGroups(t *testing.T) {
	assert := assert.New(t)

	raw := newRawTable(types.V1)
	raw.groups[0] = rawGroup{index: 0, name: "existing"}
	raw.symbols[1] = rawSymbol{index: 1, name: "Comment Start", kind: types.GroupStart}
	raw.symbols[2] = rawSymbol{index: 2, name: "Comment End", kind: types.GroupEnd}

	promoteV1Groups(raw)

	assert.Len(raw.groups, 2)
	assert.Equal("existing", raw.groups[0].name)
	assert.Equal("Comment Start", raw.groups[1].name)
}
