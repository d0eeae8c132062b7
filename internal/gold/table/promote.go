package table

import (
	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/dekarrin/goldrun/internal/util"
)

// promoteV1Groups synthesizes groups for a v1 table, which carries
// GroupStart/GroupEnd/CommentLine symbols but no native group records
// (those were only added to the table format in v5) (§4.1, §9).
//
// Two patterns are promoted:
//
//  1. A GroupStart symbol paired with the nearest-following GroupEnd
//     symbol becomes a Closed, Token-advance, non-nestable block-comment
//     group (e.g. "/*" ... "*/").
//  2. A CommentLine symbol is paired with a symbol named "NewLine" or
//     "Newline" (case-insensitive, per EqualFoldName) if one exists,
//     becoming an Open, Character-advance, non-nestable line-comment
//     group whose end is that newline symbol. If no such symbol is
//     found, the line is recorded as a warning and no group is
//     synthesized for it; the CommentLine symbol then behaves as an
//     ordinary terminal, which is the documented degraded behavior for
//     this ambiguous case (§9 Open Questions).
//
// Every synthesized group is appended to raw.groups under a fresh index.
// A CommentLine symbol that gets a line-comment group is reclassified as
// GroupStart so the lexer opens that group on it; no other symbol is
// altered. Symbol.Group linking happens uniformly for both v1 and v5 in
// resolve.
func promoteV1Groups(raw *rawTable) {
	nextIndex := 0
	for i := range raw.groups {
		if i >= nextIndex {
			nextIndex = i + 1
		}
	}

	var starts, ends, commentLines []rawSymbol
	var newlineSym *rawSymbol
	for _, idx := range sortedIntKeys(raw.symbols) {
		s := raw.symbols[idx]
		switch s.kind {
		case types.GroupStart:
			starts = append(starts, s)
		case types.GroupEnd:
			ends = append(ends, s)
		case types.CommentLine:
			commentLines = append(commentLines, s)
		}
		if types.EqualFoldName(s.name, "NewLine") {
			sc := s
			newlineSym = &sc
		}
	}

	usedEnds := util.Set[int]{}
	for _, start := range starts {
		var end *rawSymbol
		for _, e := range ends {
			if usedEnds.Has(e.index) {
				continue
			}
			if e.index > start.index {
				ec := e
				end = &ec
				break
			}
		}
		if end == nil {
			continue
		}
		usedEnds.Add(end.index)
		raw.groups[nextIndex] = rawGroup{
			index:     nextIndex,
			name:      start.name,
			container: start.index,
			start:     start.index,
			end:       end.index,
			advance:   types.Token,
			ending:    types.Closed,
		}
		nextIndex++
	}

	for _, cl := range commentLines {
		if newlineSym == nil {
			raw.warnings = append(raw.warnings,
				"v1 CommentLine symbol \""+cl.name+"\" has no matching \"NewLine\" symbol; left un-promoted to a group")
			continue
		}
		raw.groups[nextIndex] = rawGroup{
			index:     nextIndex,
			name:      cl.name,
			container: cl.index,
			start:     cl.index,
			end:       newlineSym.index,
			advance:   types.Character,
			ending:    types.Open,
		}
		raw.symbols[cl.index] = rawSymbol{index: cl.index, name: cl.name, kind: types.GroupStart}
		nextIndex++
	}
}
