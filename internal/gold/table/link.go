package table

import (
	"sort"
	"strconv"

	"github.com/dekarrin/goldrun/internal/gold/types"
)

// resolve is phase two of loading (§4.1): every raw* struct collected by
// phase one is walked into the pointer-linked object graph a
// *types.Grammar exposes. Every index reference is bounds-checked here;
// this is the only place an UnresolvedReference LoadError can be raised.
func resolve(raw *rawTable) (*types.Grammar, error) {
	g := &types.Grammar{
		Version:    raw.version,
		Warnings:   append([]string(nil), raw.warnings...),
		Parameters: map[string]string{},
	}

	symbolByIndex, err := resolveSymbols(raw, g)
	if err != nil {
		return nil, err
	}
	charsetByIndex, err := resolveCharsets(raw, g)
	if err != nil {
		return nil, err
	}
	if err := resolveDFA(raw, g, symbolByIndex, charsetByIndex); err != nil {
		return nil, err
	}
	ruleByIndex, err := resolveRules(raw, g, symbolByIndex)
	if err != nil {
		return nil, err
	}
	if err := resolveLALR(raw, g, symbolByIndex, ruleByIndex); err != nil {
		return nil, err
	}
	groupByIndex, err := resolveGroups(raw, g, symbolByIndex)
	if err != nil {
		return nil, err
	}
	linkGroupSymbols(symbolByIndex, groupByIndex, raw)

	if !raw.haveInitial {
		return nil, newLoadError(Inconsistent, 0, "table has no Initial States record")
	}
	dfaIdx, ok := dfaSlotOf(g.DFAStates, raw.dfaInitial)
	if !ok {
		return nil, newLoadError(UnresolvedReference, 0, "initial DFA state %d does not exist", raw.dfaInitial)
	}
	lalrIdx, ok := lalrSlotOf(g.LALRStates, raw.lalrInitial)
	if !ok {
		return nil, newLoadError(UnresolvedReference, 0, "initial LALR state %d does not exist", raw.lalrInitial)
	}
	g.DFAInitial = dfaIdx
	g.LALRInitial = lalrIdx

	for k, v := range raw.params {
		if k == "_start_symbol_index" {
			continue
		}
		g.Parameters[k] = v
	}
	if startIdxStr, ok := raw.params["_start_symbol_index"]; ok {
		if n, err := strconv.Atoi(startIdxStr); err == nil {
			if sym, ok := symbolByIndex[n]; ok {
				g.Parameters[types.ParamStartSymbol] = sym.Name
			}
		}
	}

	return g, nil
}

// sortedIntKeys returns the keys of a map[int]V in ascending order, since raw
// records may arrive out of index order.
func sortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func dfaSlotOf(slots []*types.DFAState, want int) (int, bool) {
	for i, s := range slots {
		if s.Index == want {
			return i, true
		}
	}
	return 0, false
}

func lalrSlotOf(slots []*types.LALRState, want int) (int, bool) {
	for i, s := range slots {
		if s.Index == want {
			return i, true
		}
	}
	return 0, false
}

func resolveSymbols(raw *rawTable, g *types.Grammar) (map[int]*types.Symbol, error) {
	byIndex := map[int]*types.Symbol{}
	for _, idx := range sortedIntKeys(raw.symbols) {
		rs := raw.symbols[idx]
		sym := &types.Symbol{Name: rs.name, Kind: rs.kind}
		g.Symbols = append(g.Symbols, sym)
		byIndex[idx] = sym
	}
	return byIndex, nil
}

func resolveCharsets(raw *rawTable, g *types.Grammar) (map[int]*types.Charset, error) {
	byIndex := map[int]*types.Charset{}
	for _, idx := range sortedIntKeys(raw.charsetsV1) {
		rc := raw.charsetsV1[idx]
		cs := &types.Charset{Index: idx, Enumerated: rc.runes}
		g.Charsets = append(g.Charsets, cs)
		byIndex[idx] = cs
	}
	for _, idx := range sortedIntKeys(raw.charsetsV5) {
		rc := raw.charsetsV5[idx]
		cs := &types.Charset{Index: idx, Codepage: rc.codepage, Ranges: rc.ranges}
		g.Charsets = append(g.Charsets, cs)
		byIndex[idx] = cs
	}
	return byIndex, nil
}

func resolveDFA(raw *rawTable, g *types.Grammar, symbols map[int]*types.Symbol, charsets map[int]*types.Charset) error {
	byIndex := map[int]*types.DFAState{}
	for _, idx := range sortedIntKeys(raw.dfaStates) {
		rs := raw.dfaStates[idx]
		st := &types.DFAState{Index: idx}
		if rs.accepting {
			sym, ok := symbols[rs.accepts]
			if !ok {
				return newLoadError(UnresolvedReference, 0, "DFA state %d accepts unknown symbol %d", idx, rs.accepts)
			}
			st.Accepts = sym
		}
		g.DFAStates = append(g.DFAStates, st)
		byIndex[idx] = st
	}
	for _, idx := range sortedIntKeys(raw.dfaStates) {
		rs := raw.dfaStates[idx]
		st := byIndex[idx]
		for _, re := range rs.edges {
			cs, ok := charsets[re.charset]
			if !ok {
				return newLoadError(UnresolvedReference, 0, "DFA state %d edge references unknown charset %d", idx, re.charset)
			}
			target, ok := byIndex[re.target]
			if !ok {
				return newLoadError(UnresolvedReference, 0, "DFA state %d edge references unknown target state %d", idx, re.target)
			}
			st.Edges = append(st.Edges, types.DFAEdge{Charset: cs, Target: target})
		}
	}
	return nil
}

func resolveRules(raw *rawTable, g *types.Grammar, symbols map[int]*types.Symbol) (map[int]*types.Rule, error) {
	byIndex := map[int]*types.Rule{}
	for _, idx := range sortedIntKeys(raw.rules) {
		rr := raw.rules[idx]
		produces, ok := symbols[rr.produces]
		if !ok {
			return nil, newLoadError(UnresolvedReference, 0, "rule %d produces unknown symbol %d", idx, rr.produces)
		}
		r := &types.Rule{Index: idx, Produces: produces}
		for _, si := range rr.consumes {
			sym, ok := symbols[si]
			if !ok {
				return nil, newLoadError(UnresolvedReference, 0, "rule %d consumes unknown symbol %d", idx, si)
			}
			r.Consumes = append(r.Consumes, sym)
		}
		g.Rules = append(g.Rules, r)
		byIndex[idx] = r
	}
	return byIndex, nil
}

func resolveLALR(raw *rawTable, g *types.Grammar, symbols map[int]*types.Symbol, rules map[int]*types.Rule) error {
	byIndex := map[int]*types.LALRState{}
	for _, idx := range sortedIntKeys(raw.lalrStates) {
		st := &types.LALRState{Index: idx, Actions: map[string]types.Action{}, Gotos: map[string]*types.LALRState{}}
		g.LALRStates = append(g.LALRStates, st)
		byIndex[idx] = st
	}
	for _, idx := range sortedIntKeys(raw.lalrStates) {
		rs := raw.lalrStates[idx]
		st := byIndex[idx]
		for _, ra := range rs.actions {
			sym, ok := symbols[ra.symbol]
			if !ok {
				return newLoadError(UnresolvedReference, 0, "LALR state %d action references unknown symbol %d", idx, ra.symbol)
			}
			switch ra.actionType {
			case rawActionShift:
				target, ok := byIndex[ra.target]
				if !ok {
					return newLoadError(UnresolvedReference, 0, "LALR state %d shift references unknown state %d", idx, ra.target)
				}
				st.Actions[sym.Name] = types.Action{Type: types.Shift, ShiftTarget: target}
			case rawActionReduce:
				rule, ok := rules[ra.target]
				if !ok {
					return newLoadError(UnresolvedReference, 0, "LALR state %d reduce references unknown rule %d", idx, ra.target)
				}
				st.Actions[sym.Name] = types.Action{Type: types.Reduce, ReduceRule: rule}
			case rawActionGoto:
				target, ok := byIndex[ra.target]
				if !ok {
					return newLoadError(UnresolvedReference, 0, "LALR state %d goto references unknown state %d", idx, ra.target)
				}
				st.Gotos[sym.Name] = target
			case rawActionAccept:
				st.Actions[sym.Name] = types.Action{Type: types.Accept}
			default:
				return newLoadError(MalformedRecord, 0, "LALR state %d has unknown action type %d", idx, ra.actionType)
			}
		}
	}
	return nil
}

func resolveGroups(raw *rawTable, g *types.Grammar, symbols map[int]*types.Symbol) (map[int]*types.Group, error) {
	byIndex := map[int]*types.Group{}
	for _, idx := range sortedIntKeys(raw.groups) {
		rg := raw.groups[idx]
		emitted, ok := symbols[rg.container]
		if !ok {
			return nil, newLoadError(UnresolvedReference, 0, "group %d emits unknown symbol %d", idx, rg.container)
		}
		start, ok := symbols[rg.start]
		if !ok {
			return nil, newLoadError(UnresolvedReference, 0, "group %d starts with unknown symbol %d", idx, rg.start)
		}
		end, ok := symbols[rg.end]
		if !ok {
			return nil, newLoadError(UnresolvedReference, 0, "group %d ends with unknown symbol %d", idx, rg.end)
		}
		grp := &types.Group{
			Index:   idx,
			Name:    rg.name,
			Emitted: emitted,
			Start:   start,
			End:     end,
			Advance: rg.advance,
			Ending:  rg.ending,
		}
		g.Groups = append(g.Groups, grp)
		byIndex[idx] = grp
	}
	for _, idx := range sortedIntKeys(raw.groups) {
		rg := raw.groups[idx]
		grp := byIndex[idx]
		for _, ni := range rg.nestable {
			nested, ok := byIndex[ni]
			if !ok {
				return nil, newLoadError(UnresolvedReference, 0, "group %d nests unknown group %d", idx, ni)
			}
			grp.Nestable = append(grp.Nestable, nested)
			grp.NestableNames = append(grp.NestableNames, nested.Name)
		}
	}
	return byIndex, nil
}

// linkGroupSymbols back-fills Symbol.Group for every GroupStart/GroupEnd
// symbol now that groups exist, including v1's synthesized ones.
func linkGroupSymbols(symbols map[int]*types.Symbol, groups map[int]*types.Group, raw *rawTable) {
	for _, idx := range sortedIntKeys(raw.groups) {
		rg := raw.groups[idx]
		grp := groups[idx]
		if s, ok := symbols[rg.start]; ok {
			s.Group = grp
		}
		if s, ok := symbols[rg.end]; ok && rg.end != rg.start {
			s.Group = grp
		}
		if s, ok := symbols[rg.container]; ok {
			s.Group = grp
		}
	}
}
