package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/chef/grammar"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// Tree is a concrete syntax tree produced by a parser. Interior nodes record
// the variable that was expanded and which of its alternatives was applied;
// leaf nodes record an accepted token. Each node exclusively owns its
// children.
type Tree struct {
	// Terminal is whether this node is a token leaf.
	Terminal bool

	// Var is the variable this node is an expansion of. Only meaningful when
	// Terminal is false.
	Var grammar.Var

	// Alt is the index of the alternative of Var's rule that was applied
	// here, for telling apart sub-alternatives of the same rule. Only
	// meaningful when Terminal is false.
	Alt int

	// Token is the accepted token. Only available when Terminal is true.
	Token grammar.Token

	// Children is all children of the node, in left-to-right order.
	Children []*Tree
}

// Leaves returns the tokens at the tree's leaves, in left-to-right order.
// For any accepted parse this reproduces the input token sequence.
func (t Tree) Leaves() []grammar.Token {
	if t.Terminal {
		return []grammar.Token{t.Token}
	}

	var toks []grammar.Token
	for i := range t.Children {
		toks = append(toks, t.Children[i].Leaves()...)
	}
	return toks
}

// Copy returns a duplicate, deeply-copied tree.
func (t Tree) Copy() Tree {
	newT := Tree{
		Terminal: t.Terminal,
		Var:      t.Var,
		Alt:      t.Alt,
		Token:    t.Token,
		Children: make([]*Tree, len(t.Children)),
	}

	for i := range t.Children {
		if t.Children[i] != nil {
			newChild := t.Children[i].Copy()
			newT.Children[i] = &newChild
		}
	}

	return newT
}

// String returns a prettified representation of the entire tree suitable for
// use in line-by-line comparisons of tree structure. The output does not show
// Alt, so trees that differ only in Alt render identically; Equal tells them
// apart.
func (t Tree) String() string {
	return t.leveledStr("", "")
}

func (t Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	if t.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %s)", t.Token))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", t.Var))
	}

	for i := range t.Children {
		sb.WriteRune('\n')
		var leveledFirstPrefix string
		var leveledContPrefix string
		if i+1 < len(t.Children) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix("")
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast("")
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		itemOut := t.Children[i].leveledStr(leveledFirstPrefix, leveledContPrefix)
		sb.WriteString(itemOut)
	}

	return sb.String()
}

// Equal returns whether the tree is equal to the given object. If the given
// object is not a Tree or *Tree, returns false, else returns whether the two
// trees have the exact same structure.
func (t Tree) Equal(o any) bool {
	other, ok := o.(Tree)
	if !ok {
		otherPtr, ok := o.(*Tree)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if t.Terminal != other.Terminal {
		return false
	} else if t.Terminal && t.Token != other.Token {
		return false
	} else if !t.Terminal && (t.Var != other.Var || t.Alt != other.Alt) {
		return false
	}

	if len(t.Children) != len(other.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}

	return true
}
