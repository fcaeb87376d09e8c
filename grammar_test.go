package cfgparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarInsertRejectsSelfUnit(t *testing.T) {
	g := NewGrammar()
	selfUnit := NewSymbolRule(SymbolFromNonterminal(NonterminalOf(g)))
	inserted, err := g.Insert(selfUnit)
	require.ErrorIs(t, err, ErrRedundantRule)
	assert.False(t, inserted)
	assert.True(t, g.IsEmpty())
}

func TestGrammarInsertDeduplicates(t *testing.T) {
	g := NewGrammar()
	r, _ := NewTerminalRule("a")
	ok1, err := g.Insert(r)
	require.NoError(t, err)
	assert.True(t, ok1)

	ok2, err := g.Insert(r)
	require.NoError(t, err)
	assert.False(t, ok2)
	assert.Equal(t, 1, g.Size())
}

func TestGrammarEraseAndClear(t *testing.T) {
	g := NewGrammar()
	r, _ := NewTerminalRule("a")
	_, _ = g.Insert(r)
	assert.True(t, g.Erase(r))
	assert.True(t, g.IsEmpty())
	assert.False(t, g.Erase(r))

	_, _ = g.Insert(r)
	g.Clear()
	assert.True(t, g.IsEmpty())
	assert.Equal(t, 0, g.Size())
}

func TestGrammarTerminalsAndNonterminals(t *testing.T) {
	g := NewGrammar()
	h := NewGrammar()
	rt, _ := NewTerminalRule("ab")
	rn := NewSymbolRule(SymbolFromNonterminal(NonterminalOf(h)))
	_, _ = g.Insert(rt)
	_, _ = g.Insert(rn)

	terms := g.Terminals()
	assert.Len(t, terms, 2)
	assert.True(t, terms[Terminal('a')])
	assert.True(t, terms[Terminal('b')])

	nts := g.Nonterminals()
	assert.Len(t, nts, 1)
	_, ok := nts[h]
	assert.True(t, ok)

	g.Erase(rn)
	nts = g.Nonterminals()
	assert.Len(t, nts, 0, "erase must invalidate the nonterminal cache")
}

func TestUnionAssignSkipsRedundant(t *testing.T) {
	g := NewGrammar()
	g.UnionAssign(g)
	assert.True(t, g.IsEmpty(), "G += G must be a silent no-op, not an error")

	h := NewGrammar()
	ra, _ := NewTerminalRule("a")
	_, _ = h.Insert(ra)
	g.UnionAssign(h)
	assert.Equal(t, 1, g.Size())
	assert.True(t, g.Contains(NewSymbolRule(SymbolFromNonterminal(NonterminalOf(h)))))
}

func TestConcatAssignAppendsToEveryRule(t *testing.T) {
	g := NewGrammar()
	h := NewGrammar()
	ra, _ := NewTerminalRule("a")
	rb, _ := NewTerminalRule("b")
	_, _ = g.Insert(ra)
	_, _ = g.Insert(rb)

	g.ConcatAssign(h)
	assert.Equal(t, 2, g.Size())
	hSym := SymbolFromNonterminal(NonterminalOf(h))
	for _, r := range g.Rules() {
		assert.Equal(t, 2, r.Len())
		assert.True(t, r.At(1).Equal(hSym))
	}
}

func TestDeepCopySubgraphIsIsomorphism(t *testing.T) {
	root := NewGrammar()
	child := NewGrammar()
	rc, _ := NewTerminalRule("c")
	_, _ = child.Insert(rc)
	ra, _ := NewTerminalRule("a")
	_, _ = root.Insert(ra)
	_, _ = root.Insert(NewSymbolRule(SymbolFromNonterminal(NonterminalOf(child))))

	images := DeepCopySubgraph(root)
	require.Len(t, images, 2)

	rootCopy := images[root]
	childCopy := images[child]
	require.NotNil(t, rootCopy)
	require.NotNil(t, childCopy)
	assert.NotEqual(t, root, rootCopy)
	assert.Equal(t, root.Size(), rootCopy.Size())
	assert.Equal(t, child.Size(), childCopy.Size())

	assert.True(t, rootCopy.Contains(ra))
	assert.True(t, rootCopy.Contains(NewSymbolRule(SymbolFromNonterminal(NonterminalOf(childCopy)))))
	assert.False(t, rootCopy.Contains(NewSymbolRule(SymbolFromNonterminal(NonterminalOf(child)))),
		"copied rules must reference the copy, not the original")
	assert.True(t, childCopy.Contains(rc))
}
