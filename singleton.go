package cfgparser

// singletonMap is the shared cache of synthetic nonterminals, one per
// terminal string ever seen while normalizing grammars within a single
// Parser, keeping the terminal-cluster replacement of P3 in CNF shape: a
// one-character key has the sole rule "-> c"; a k-character key (k >= 2) has
// the sole rule "-> prefix-nonterminal . last-char-nonterminal", built
// recursively so the map itself never leaves CNF. It is owned by the Parser
// and shared across every registry entry's normalization, per spec.md 4.4/P3
// and 4.5's ownership note.
type singletonMap struct {
	byString map[string]*Grammar
}

func newSingletonMap() *singletonMap {
	return &singletonMap{byString: map[string]*Grammar{}}
}

// GetOrCreate returns the synthetic nonterminal for the terminal string s,
// creating it (and any shorter prefix singleton it depends on) if absent.
// Every node it creates is given a synthetic diagnostic name in names.
func (m *singletonMap) GetOrCreate(s string, names *nameBook) *Grammar {
	if g, ok := m.byString[s]; ok {
		return g
	}
	if len(s) == 0 {
		panic("cfgparser: singletonMap.GetOrCreate(\"\")")
	}

	g := NewGrammar()
	m.byString[s] = g // register before recursing: cycles cannot occur, but this keeps future calls O(1)

	if len(s) == 1 {
		t := mustTerminal(s[0])
		_, _ = g.Insert(NewSymbolRule(SymbolFromTerminal(t)))
		names.NameSynthetic(g, "term")
		return g
	}

	prefix := m.GetOrCreate(s[:len(s)-1], names)
	last := m.GetOrCreate(s[len(s)-1:], names)
	rule := NewRule(
		SymbolFromNonterminal(NonterminalOf(prefix)),
		SymbolFromNonterminal(NonterminalOf(last)),
	)
	_, _ = g.Insert(rule)
	names.NameSynthetic(g, "cluster")
	return g
}

// pairKey identifies a binary-conversion pair nonterminal by the identity of
// its two constituent nonterminals.
type pairKey struct {
	prev, curr *Grammar
}

// pairMap deduplicates the synthetic "pair" nonterminals created while
// folding a long rule's tail into binary form (P3's pair folding step). It
// is scoped to a single normalization run: pair nodes are owned by the
// registry entry that triggered their creation, not shared across entries.
type pairMap struct {
	byPair map[pairKey]*Grammar
}

func newPairMap() *pairMap {
	return &pairMap{byPair: map[pairKey]*Grammar{}}
}

// GetOrCreate returns the pair nonterminal for (prev, curr), with the sole
// rule "-> prev curr", creating it if this exact pair has not been folded
// yet in this normalization run.
func (m *pairMap) GetOrCreate(prev, curr *Grammar, names *nameBook) *Grammar {
	key := pairKey{prev: prev, curr: curr}
	if g, ok := m.byPair[key]; ok {
		return g
	}
	g := NewGrammar()
	rule := NewRule(
		SymbolFromNonterminal(NonterminalOf(prev)),
		SymbolFromNonterminal(NonterminalOf(curr)),
	)
	_, _ = g.Insert(rule)
	names.NameSynthetic(g, "pair")
	m.byPair[key] = g
	return g
}
