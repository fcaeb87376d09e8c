package cfgparser

import "github.com/pkg/errors"

// Grammar is a node in the grammar graph: a duplicate-free, order-insensitive
// set of production rules, plus cached sets of the terminals and
// nonterminals directly mentioned by those rules. Two grammars are equal iff
// they are the same node (pointer identity).
type Grammar struct {
	rules map[ruleKey][]Rule
	count int

	termsStale bool
	terminals  map[Terminal]bool

	ntsStale     bool
	nonterminals map[*Grammar]Nonterminal
}

// NewGrammar returns an empty grammar node.
func NewGrammar() *Grammar {
	return &Grammar{
		rules:        map[ruleKey][]Rule{},
		terminals:    map[Terminal]bool{},
		nonterminals: map[*Grammar]Nonterminal{},
	}
}

// Contains reports whether r is already present in g.
func (g *Grammar) Contains(r Rule) bool {
	for _, existing := range g.rules[r.key()] {
		if existing.Equal(r) {
			return true
		}
	}
	return false
}

// Insert adds r to g. It returns (false, ErrRedundantRule) if r is the
// self-unit rule g -> g, leaving g unchanged. Otherwise it returns whether r
// was newly inserted (false if it was already present).
func (g *Grammar) Insert(r Rule) (bool, error) {
	if r.IsRedundantFor(g) {
		return false, errors.Wrap(ErrRedundantRule, "Grammar.Insert")
	}
	if g.Contains(r) {
		return false, nil
	}
	k := r.key()
	g.rules[k] = append(g.rules[k], r)
	g.count++
	g.updateDerivedOnInsert(r)
	return true, nil
}

// Erase removes r from g, if present. It marks the derived sets stale
// (erasure cannot cheaply determine whether the removed symbols are still
// mentioned by some other rule).
func (g *Grammar) Erase(r Rule) bool {
	k := r.key()
	bucket := g.rules[k]
	for i, existing := range bucket {
		if existing.Equal(r) {
			bucket[i] = bucket[len(bucket)-1]
			g.rules[k] = bucket[:len(bucket)-1]
			if len(g.rules[k]) == 0 {
				delete(g.rules, k)
			}
			g.count--
			g.termsStale = true
			g.ntsStale = true
			return true
		}
	}
	return false
}

// Clear removes every rule from g.
func (g *Grammar) Clear() {
	g.rules = map[ruleKey][]Rule{}
	g.count = 0
	g.terminals = map[Terminal]bool{}
	g.nonterminals = map[*Grammar]Nonterminal{}
	g.termsStale = false
	g.ntsStale = false
}

// Size returns the number of rules in g.
func (g *Grammar) Size() int {
	return g.count
}

// IsEmpty reports whether g has no rules.
func (g *Grammar) IsEmpty() bool {
	return g.count == 0
}

// Rules returns every rule currently in g. The order is unspecified.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, 0, g.count)
	for _, bucket := range g.rules {
		out = append(out, bucket...)
	}
	return out
}

// Terminals returns the set of terminals mentioned by some rule in g,
// recomputing from scratch if the cache is stale.
func (g *Grammar) Terminals() map[Terminal]bool {
	if g.termsStale {
		g.recomputeDerived()
	}
	out := make(map[Terminal]bool, len(g.terminals))
	for t := range g.terminals {
		out[t] = true
	}
	return out
}

// Nonterminals returns the set of nonterminals mentioned by some rule in g,
// recomputing from scratch if the cache is stale.
func (g *Grammar) Nonterminals() map[*Grammar]Nonterminal {
	if g.ntsStale {
		g.recomputeDerived()
	}
	out := make(map[*Grammar]Nonterminal, len(g.nonterminals))
	for k, v := range g.nonterminals {
		out[k] = v
	}
	return out
}

func (g *Grammar) updateDerivedOnInsert(r Rule) {
	if g.termsStale && g.ntsStale {
		return
	}
	for _, sym := range r.symbols {
		if sym.IsTerminal() {
			if !g.termsStale {
				g.terminals[sym.Terminal()] = true
			}
		} else {
			if !g.ntsStale {
				nt := sym.Nonterminal()
				g.nonterminals[nt.Grammar()] = nt
			}
		}
	}
}

func (g *Grammar) recomputeDerived() {
	g.terminals = map[Terminal]bool{}
	g.nonterminals = map[*Grammar]Nonterminal{}
	for _, bucket := range g.rules {
		for _, r := range bucket {
			for _, sym := range r.symbols {
				if sym.IsTerminal() {
					g.terminals[sym.Terminal()] = true
				} else {
					nt := sym.Nonterminal()
					g.nonterminals[nt.Grammar()] = nt
				}
			}
		}
	}
	g.termsStale = false
	g.ntsStale = false
}

// UnionAssign implements G += H: inserts the unit rule G -> H, silently
// skipping if that rule would be redundant (H == G).
func (g *Grammar) UnionAssign(h *Grammar) {
	rule := NewSymbolRule(SymbolFromNonterminal(NonterminalOf(h)))
	if rule.IsRedundantFor(g) {
		return
	}
	_, _ = g.Insert(rule)
}

// ConcatAssign implements G *= H: replaces every rule r of G with r . H (H
// appended as a single nonterminal symbol), skipping any resulting rule that
// would be redundant.
func (g *Grammar) ConcatAssign(h *Grammar) {
	suffix := SymbolFromNonterminal(NonterminalOf(h))
	old := g.Rules()
	g.Clear()
	for _, r := range old {
		next := r.Append(suffix)
		if next.IsRedundantFor(g) {
			continue
		}
		_, _ = g.Insert(next)
	}
}

// DeepCopySubgraph deep-copies every grammar reachable from (and including)
// root, returning a mapping from each original node to its freshly allocated
// copy. Copied rules have the same symbol sequence as the original, with
// every nonterminal rewritten to point at the corresponding copy; terminal
// symbols are unchanged.
func DeepCopySubgraph(root *Grammar) map[*Grammar]*Grammar {
	images := map[*Grammar]*Grammar{}
	order := PreOrder(root)
	for _, g := range order {
		images[g] = NewGrammar()
	}
	for _, g := range order {
		copyNode := images[g]
		for _, r := range g.Rules() {
			copyNode.mustInsertImage(translateRule(r, images))
		}
	}
	return images
}

// mustInsertImage inserts a rule produced purely by translation (never
// redundant by construction unless the original already contained a
// redundant rule, which invariant I1 forbids) and panics on the impossible
// RedundantRule error, surfacing real bugs instead of hiding them.
func (g *Grammar) mustInsertImage(r Rule) {
	if _, err := g.Insert(r); err != nil {
		panic(errors.Wrap(err, "DeepCopySubgraph: source grammar violated I1"))
	}
}

func translateRule(r Rule, images map[*Grammar]*Grammar) Rule {
	symbols := make([]Symbol, len(r.symbols))
	for i, sym := range r.symbols {
		if sym.IsTerminal() {
			symbols[i] = sym
			continue
		}
		orig := sym.Nonterminal().Grammar()
		image, ok := images[orig]
		if !ok {
			panic("cfgparser: DeepCopySubgraph: nonterminal not reachable from root")
		}
		symbols[i] = SymbolFromNonterminal(NonterminalOf(image))
	}
	return Rule{symbols: symbols}
}
