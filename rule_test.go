package cfgparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSym(b byte) Symbol {
	t, err := NewTerminal(b)
	if err != nil {
		panic(err)
	}
	return SymbolFromTerminal(t)
}

func TestNewTerminalRuleBuildsOneSymbolPerByte(t *testing.T) {
	r, err := NewTerminalRule("ab")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.At(0).Equal(mustSym('a')))
	assert.True(t, r.At(1).Equal(mustSym('b')))
}

func TestNewTerminalRuleRejectsInvalidByte(t *testing.T) {
	_, err := NewTerminalRule("a\x01b")
	require.ErrorIs(t, err, ErrInvalidTerminal)
}

func TestEmptyRuleIsEmpty(t *testing.T) {
	r := EmptyRule()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.IsUnit())
}

func TestIsUnitAndIsRedundantFor(t *testing.T) {
	g := NewGrammar()
	h := NewGrammar()
	unitSelf := NewSymbolRule(SymbolFromNonterminal(NonterminalOf(g)))
	unitOther := NewSymbolRule(SymbolFromNonterminal(NonterminalOf(h)))

	assert.True(t, unitSelf.IsUnit())
	assert.True(t, unitSelf.IsRedundantFor(g))
	assert.False(t, unitSelf.IsRedundantFor(h))
	assert.True(t, unitOther.IsUnit())
	assert.False(t, unitOther.IsRedundantFor(h))

	term, _ := NewTerminalRule("a")
	assert.False(t, term.IsUnit())
}

func TestRuleContainsAppendConcat(t *testing.T) {
	a := mustSym('a')
	b := mustSym('b')
	r := NewRule(a)
	assert.True(t, r.Contains(a))
	assert.False(t, r.Contains(b))

	r2 := r.Append(b)
	assert.Equal(t, 2, r2.Len())
	assert.Equal(t, 1, r.Len(), "Append must not mutate the receiver")

	r3 := NewRule(a).Concat(NewRule(b))
	assert.True(t, r3.Equal(r2))
}

func TestAppendString(t *testing.T) {
	r, err := NewRule().AppendString("xy")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.At(0).Equal(mustSym('x')))
	assert.True(t, r.At(1).Equal(mustSym('y')))
}

func TestPruneSymbol(t *testing.T) {
	a, b := mustSym('a'), mustSym('b')
	r := NewRule(a, b, a, b)
	pruned, removed := r.PruneSymbol(a)
	assert.Equal(t, 2, removed)
	assert.True(t, pruned.Equal(NewRule(b, b)))
}

func TestRuleEqualIsPositional(t *testing.T) {
	a, b := mustSym('a'), mustSym('b')
	assert.True(t, NewRule(a, b).Equal(NewRule(a, b)))
	assert.False(t, NewRule(a, b).Equal(NewRule(b, a)))
	assert.False(t, NewRule(a).Equal(NewRule(a, b)))
}

func TestRuleHashOrderSensitive(t *testing.T) {
	a, b := mustSym('a'), mustSym('b')
	r1 := NewRule(a, b)
	r2 := NewRule(b, a)
	assert.NotEqual(t, r1.hash(), r2.hash())
}
