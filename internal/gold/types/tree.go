package types

import "strings"

// Tree-drawing prefixes, adapted from internal/ictiobus/types/tree.go's
// makeTreeLevelPrefix: ASCII box-drawing stand-ins so output is safe in any
// terminal encoding.
const (
	treeLevelEmpty    = "  "
	treeLevelContinue = "| "
	treeLevelLastNode = "+-"
	treeLevelMidNode  = "+-"
)

// ParseTree is a node of the tree produced by a successful parse (§3). A
// leaf wraps the Token it was shifted from; an internal node wraps the Rule
// it was reduced by and holds its children left-to-right.
type ParseTree struct {
	// Terminal is true for a leaf node (a shifted token).
	Terminal bool

	// Tok is populated when Terminal is true.
	Tok Token

	// Rule is populated when Terminal is false: the rule this node's
	// children were reduced under.
	Rule *Rule

	// Children holds this node's children left-to-right. Empty for a
	// terminal node, and also empty (not nil) for a reduction of an
	// empty-RHS rule.
	Children []*ParseTree
}

// Symbol returns the grammar symbol this node stands for: the token's
// symbol for a leaf, the produced symbol for an internal node.
func (t *ParseTree) Symbol() *Symbol {
	if t.Terminal {
		return t.Tok.Symbol
	}
	return t.Rule.Produces
}

// String renders the tree as an indented, line-per-node listing in the
// style of internal/ictiobus/types/tree.go's leveledStr.
func (t *ParseTree) String() string {
	var sb strings.Builder
	t.leveledStr(&sb, nil)
	return sb.String()
}

// leveledStr writes this node and its descendants to sb. levels[i] is true
// if the subtree at depth i still has more siblings to print after this
// one, which is what decides whether that column draws a continuing "| "
// or a blank "  ".
func (t *ParseTree) leveledStr(sb *strings.Builder, levels []bool) {
	for i, more := range levels {
		if i == len(levels)-1 {
			if more {
				sb.WriteString(treeLevelMidNode)
			} else {
				sb.WriteString(treeLevelLastNode)
			}
		} else if more {
			sb.WriteString(treeLevelContinue)
		} else {
			sb.WriteString(treeLevelEmpty)
		}
	}

	if t.Terminal {
		sb.WriteString(t.Tok.String())
	} else {
		sb.WriteString(t.Rule.Produces.Name)
	}
	sb.WriteByte('\n')

	for i, c := range t.Children {
		childMore := i < len(t.Children)-1
		c.leveledStr(sb, append(append([]bool{}, levels...), childMore))
	}
}

// Copy returns a deep copy of the tree.
func (t *ParseTree) Copy() *ParseTree {
	if t == nil {
		return nil
	}
	cp := &ParseTree{Terminal: t.Terminal, Tok: t.Tok, Rule: t.Rule}
	if t.Children != nil {
		cp.Children = make([]*ParseTree, len(t.Children))
		for i, c := range t.Children {
			cp.Children[i] = c.Copy()
		}
	}
	return cp
}

// Equal reports whether t and o have the same structure, symbols, and
// token content.
func (t *ParseTree) Equal(o *ParseTree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Terminal != o.Terminal {
		return false
	}
	if t.Terminal {
		if t.Tok.Symbol != o.Tok.Symbol || t.Tok.Literal != o.Tok.Literal {
			return false
		}
	} else {
		if t.Rule != o.Rule {
			return false
		}
	}
	if len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
