package types

// Charset is a predicate over a single input rune, used to label DFA edges.
// It is one of two variants depending on the table format version that
// produced it (§3):
//
//   - Enumerated, from v1 tables: an explicit set of runes.
//   - Ranges, from v5 tables: codepage-tagged half-open codepoint ranges.
//
// Exactly one of the two is populated; Ranges is considered present when
// Codepage != 0 or len(Ranges) > 0, i.e. Enumerated charsets always leave
// Ranges nil.
type Charset struct {
	Index int

	// Enumerated holds every rune in the set, for v1 charsets.
	Enumerated map[rune]bool

	// Codepage and Ranges hold a v5 charset: a codepage number and a list of
	// half-open [Start, End) codepoint ranges.
	Codepage int
	Ranges   []CharRange
}

// CharRange is a half-open range [Start, End) of codepage-specific codepoint
// values.
type CharRange struct {
	Start int
	End   int
}

// Matches reports whether r is a member of the charset.
func (cs Charset) Matches(r rune) bool {
	if cs.Enumerated != nil {
		return cs.Enumerated[r]
	}

	v := codepointInCodepage(r, cs.Codepage)
	for _, rg := range cs.Ranges {
		if v >= rg.Start && v < rg.End {
			return true
		}
	}
	return false
}

// codepointInCodepage converts r to the numeric value used for range
// membership tests under the given codepage. The only codepage in
// widespread use by GOLD v5 tables is Unicode (codepage 0), where the
// numeric value is simply the rune's codepoint; other codepage IDs are
// treated the same way since the table format does not ship per-codepage
// conversion tables of its own.
func codepointInCodepage(r rune, _ int) int {
	return int(r)
}
