package cfgparser

import "github.com/google/uuid"

// nameBook maps grammar nodes to stable diagnostic names, the way the
// original implementation's CfgPrinter kept a name_map alongside the
// grammar it printed. User-registered grammars get their registered name;
// synthetic nonterminals minted during normalization (singletons, pair
// nodes) get a short name derived from a uuid so that repeated print calls
// within one process render the same label for the same synthetic node.
type nameBook struct {
	names map[*Grammar]string
}

func newNameBook() *nameBook {
	return &nameBook{names: map[*Grammar]string{}}
}

// Register assigns a user-chosen name to g, overwriting any prior name.
func (b *nameBook) Register(g *Grammar, name string) {
	b.names[g] = name
}

// NameSynthetic assigns and returns a fresh diagnostic name for g, prefixed
// by kind (e.g. "singleton" or "pair"), if g has no name yet.
func (b *nameBook) NameSynthetic(g *Grammar, kind string) string {
	if name, ok := b.names[g]; ok {
		return name
	}
	id := uuid.New()
	name := kind + "_" + id.String()[:8]
	b.names[g] = name
	return name
}

// NameOf returns the diagnostic name for g, or "" if none has been assigned.
func (b *nameBook) NameOf(g *Grammar) string {
	return b.names[g]
}
