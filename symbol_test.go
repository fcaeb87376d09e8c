package cfgparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTerminalRejectsOutOfRange(t *testing.T) {
	_, err := NewTerminal(0x19)
	require.ErrorIs(t, err, ErrInvalidTerminal)

	_, err = NewTerminal(0x7F)
	require.ErrorIs(t, err, ErrInvalidTerminal)

	tm, err := NewTerminal('a')
	require.NoError(t, err)
	assert.Equal(t, Terminal('a'), tm)
}

func TestSymbolEqualByTagAndPayload(t *testing.T) {
	a, _ := NewTerminal('a')
	b, _ := NewTerminal('b')
	sa1 := SymbolFromTerminal(a)
	sa2 := SymbolFromTerminal(a)
	sb := SymbolFromTerminal(b)

	assert.True(t, sa1.Equal(sa2))
	assert.False(t, sa1.Equal(sb))

	g1 := NewGrammar()
	g2 := NewGrammar()
	n1 := SymbolFromNonterminal(NonterminalOf(g1))
	n1b := SymbolFromNonterminal(NonterminalOf(g1))
	n2 := SymbolFromNonterminal(NonterminalOf(g2))

	assert.True(t, n1.Equal(n1b))
	assert.False(t, n1.Equal(n2))
	assert.False(t, n1.Equal(sa1))
}

func TestSymbolAccessorsPanicOnWrongTag(t *testing.T) {
	g := NewGrammar()
	nt := SymbolFromNonterminal(NonterminalOf(g))
	assert.Panics(t, func() { nt.Terminal() })

	a, _ := NewTerminal('a')
	term := SymbolFromTerminal(a)
	assert.Panics(t, func() { term.Nonterminal() })
}

func TestSymbolFromNonterminalPanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { SymbolFromNonterminal(Nonterminal{}) })
}

func TestNonterminalOfPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NonterminalOf(nil) })
}
