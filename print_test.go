package cfgparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterRendersNameAndUnderline(t *testing.T) {
	names := newNameBook()
	g := NewGrammar()
	names.Register(g, "S")
	r, _ := NewTerminalRule("ab")
	_, _ = g.Insert(r)

	pr := newPrinter(names, nil)
	out := pr.Render(g, "S")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "S -> "))
	assert.NotEmpty(t, lines[1])
}

func TestPrinterEmptyRuleToken(t *testing.T) {
	names := newNameBook()
	g := NewGrammar()
	names.Register(g, "S")
	_, _ = g.Insert(EmptyRule())

	pr := newPrinter(names, nil)
	out := pr.Render(g, "S")
	assert.Contains(t, out, "empty rule")
}

func TestPrinterUsesBracketsForOriginalAndParensForSynthetic(t *testing.T) {
	names := newNameBook()
	root := NewGrammar()
	names.Register(root, "S")
	names.NameSynthetic(root, "unused") // no-op, already registered

	synthetic := NewGrammar()
	names.NameSynthetic(synthetic, "pair")
	rc, _ := NewTerminalRule("c")
	_, _ = synthetic.Insert(rc)
	_, _ = root.Insert(NewSymbolRule(SymbolFromNonterminal(NonterminalOf(synthetic))))

	// A non-nil resolver that recognizes no node as an original-grammar copy
	// mimics PrintNormalized's behavior for a purely synthetic node.
	resolve := func(node *Grammar) (string, bool) { return "", false }
	pr := newPrinter(names, resolve)
	out := pr.Render(root, "S")
	assert.Contains(t, out, "(pair_")
	assert.NotContains(t, out, "[pair_")
}

func TestCompareRuleOrdersByNonterminalCountThenLength(t *testing.T) {
	index := map[*Grammar]int{}
	a, _ := NewTerminalRule("a")
	g := NewGrammar()
	index[g] = 0
	withNT := NewSymbolRule(SymbolFromNonterminal(NonterminalOf(g)))

	assert.Greater(t, compareRule(withNT, a, index), 0, "more nonterminals sorts first")

	long, _ := NewTerminalRule("aaa")
	short, _ := NewTerminalRule("aa")
	assert.Greater(t, compareRule(long, short, index), 0, "longer rule sorts first among equal nonterminal counts")
}

func TestSortRulesForPrintIsStableAndDeterministic(t *testing.T) {
	index := map[*Grammar]int{}
	r1, _ := NewTerminalRule("a")
	r2, _ := NewTerminalRule("aa")
	r3, _ := NewTerminalRule("aaa")
	sorted := sortRulesForPrint([]Rule{r1, r2, r3}, index)
	assert.True(t, sorted[0].Equal(r3))
	assert.True(t, sorted[1].Equal(r2))
	assert.True(t, sorted[2].Equal(r1))
}
