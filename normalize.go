package cfgparser

import (
	"strings"

	"github.com/pkg/errors"
)

// NormalizedResult is the output of the normalization pipeline: a grammar N
// in Chomsky Normal Form, language-equivalent to the root grammar that was
// normalized, plus every synthetic (or copied) node reachable from N that
// the caller must now own.
type NormalizedResult struct {
	Root  *Grammar
	Owned []*Grammar

	// CopyOf maps each P0 deep-copy node (including Root) back to the
	// original node it was copied from, so a printer can tell a copy of a
	// named grammar apart from a singleton/pair synthetic minted in P3.
	CopyOf map[*Grammar]*Grammar
}

// Normalizer runs the five-pass CNF pipeline of spec.md 4.4 over a root
// grammar's reachable subgraph. A Normalizer holds the state that must be
// shared across every normalization run performed by one Parser: the
// terminal-string singleton cache.
type Normalizer struct {
	singletons *singletonMap
	names      *nameBook
}

// NewNormalizer builds a Normalizer sharing singletons and names with the
// rest of a Parser instance.
func NewNormalizer(singletons *singletonMap, names *nameBook) *Normalizer {
	return &Normalizer{singletons: singletons, names: names}
}

// Normalize runs P0-P4 over root, returning the CNF root and the set of
// nodes the caller (a registry entry) must now own. It never mutates root
// or any grammar reachable from it.
func (n *Normalizer) Normalize(root *Grammar) (*NormalizedResult, error) {
	if err := checkReachableNonempty(root); err != nil {
		return nil, err
	}

	// P0 — deep copy.
	images := DeepCopySubgraph(root)
	rootCopy := images[root]
	nodes := make([]*Grammar, 0, len(images))
	copyOf := make(map[*Grammar]*Grammar, len(images))
	for original, copyNode := range images {
		nodes = append(nodes, copyNode)
		copyOf[copyNode] = original
	}
	rootHadEpsilon := rootCopy.Contains(EmptyRule())

	tracer().Debugf("normalize: copied %d reachable nodes", len(nodes))

	// P1 — epsilon elimination.
	eliminateEpsilon(nodes)

	// P2 — unit elimination, post-order.
	eliminateUnits(rootCopy)

	// P3 — binary conversion.
	pairs := newPairMap()
	convertToBinary(nodes, n.singletons, pairs, n.names)

	// P4 — assembly.
	if rootHadEpsilon {
		if _, err := rootCopy.Insert(EmptyRule()); err != nil {
			return nil, errors.Wrap(err, "normalize: re-inserting root epsilon")
		}
	}

	owned := PreOrder(rootCopy)
	owned = removeNode(owned, rootCopy)

	return &NormalizedResult{Root: rootCopy, Owned: owned, CopyOf: copyOf}, nil
}

func removeNode(nodes []*Grammar, target *Grammar) []*Grammar {
	out := make([]*Grammar, 0, len(nodes))
	for _, n := range nodes {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// checkReachableNonempty enforces the normalization precondition: every
// nonterminal reachable from root has at least one rule.
func checkReachableNonempty(root *Grammar) error {
	for _, g := range PreOrder(root) {
		if g.IsEmpty() {
			return errors.Wrap(ErrEmptyReachableNonterminal, "normalize: precondition check")
		}
	}
	return nil
}

// eliminateEpsilon is P1: repeatedly erase the empty rule from every node
// that currently has it (root included) and prune all other rules mentioning
// that node, per spec.md 4.4/P1, until no node has the empty rule left. The
// root is never special-cased during the fixpoint itself — a root that is
// directly nullable and self- or mutually-referenced (e.g. D -> eps | DD)
// must have that nullability pruned into its referrers exactly like any
// other node's. Only the end state treats the root specially: Normalize
// restores its empty rule afterward if the original grammar derived epsilon.
func eliminateEpsilon(nodes []*Grammar) {
	erasedHistory := map[*Grammar]bool{}

	for {
		var erasable []*Grammar
		for _, n := range nodes {
			if n.Contains(EmptyRule()) {
				erasable = append(erasable, n)
			}
		}
		if len(erasable) == 0 {
			break
		}

		for _, x := range erasable {
			x.Erase(EmptyRule())
			erasedHistory[x] = true
		}

		for _, c := range nodes {
			for _, x := range erasable {
				pruneOccurrencesInto(c, x, erasedHistory)
			}
		}
	}
}

// pruneOccurrencesInto generates, for every rule of c mentioning x, every
// rule obtainable by deleting a non-empty subset of the occurrences of x,
// and inserts the ones that are new into c.
func pruneOccurrencesInto(c *Grammar, x *Grammar, erasedHistory map[*Grammar]bool) {
	target := SymbolFromNonterminal(NonterminalOf(x))
	for _, r := range c.Rules() {
		if !r.Contains(target) {
			continue
		}
		for _, variant := range pruneVariants(r, target) {
			if variant.IsEmpty() && erasedHistory[c] {
				continue
			}
			if variant.IsRedundantFor(c) {
				continue
			}
			_, _ = c.Insert(variant)
		}
	}
}

// pruneVariants returns every rule obtainable from r by deleting a
// non-empty subset of the occurrences of target: 2^k - 1 variants for k
// occurrences. Implemented by recursing over positions, branching on
// "delete this occurrence" vs "keep it" for every occurrence of target, and
// discarding the single branch that deletes nothing.
func pruneVariants(r Rule, target Symbol) []Rule {
	symbols := r.Symbols()
	var variants []Rule

	var walk func(idx int, acc []Symbol, deletedAny bool)
	walk = func(idx int, acc []Symbol, deletedAny bool) {
		if idx == len(symbols) {
			if deletedAny {
				variants = append(variants, NewRule(acc...))
			}
			return
		}
		s := symbols[idx]
		if s.Equal(target) {
			walk(idx+1, acc, true) // delete this occurrence
			kept := append(append([]Symbol{}, acc...), s)
			walk(idx+1, kept, deletedAny) // keep this occurrence
			return
		}
		kept := append(append([]Symbol{}, acc...), s)
		walk(idx+1, kept, deletedAny)
	}
	walk(0, nil, false)
	return variants
}

// eliminateUnits is P2: for every node, bottom-up, repeatedly inline the
// target of a unit rule and discard unit rules whose target has already been
// inlined, per spec.md 4.4/P2. keepOut only ever grows, so this terminates
// even across mutually unit-recursive nodes.
func eliminateUnits(root *Grammar) {
	for _, c := range PostOrder(root) {
		keepOut := map[*Grammar]bool{c: true}
		for {
			unit, ok := firstUnitRule(c)
			if !ok {
				break
			}
			target := unit.At(0).Nonterminal().Grammar()
			keepOut[target] = true

			for _, tr := range target.Rules() {
				if tr.IsRedundantFor(c) {
					continue
				}
				_, _ = c.Insert(tr)
			}

			for _, r := range c.Rules() {
				if r.IsUnit() && keepOut[r.At(0).Nonterminal().Grammar()] {
					c.Erase(r)
				}
			}
		}
	}
}

func firstUnitRule(g *Grammar) (Rule, bool) {
	for _, r := range g.Rules() {
		if r.IsUnit() {
			return r, true
		}
	}
	return Rule{}, false
}

// convertToBinary is P3: reshape every rule of length >= 2 that is not
// already exactly two nonterminals into CNF-binary form, via terminal-run
// clustering followed by left-associated pair folding.
func convertToBinary(nodes []*Grammar, singles *singletonMap, pairs *pairMap, names *nameBook) {
	for _, c := range nodes {
		for _, r := range c.Rules() {
			if !needsReshape(r) {
				continue
			}
			c.Erase(r)
			reshaped := reshapeRule(r, singles, pairs, names)
			if reshaped.IsRedundantFor(c) {
				continue
			}
			_, _ = c.Insert(reshaped)
		}
	}
}

func needsReshape(r Rule) bool {
	if r.Len() < 2 {
		return false
	}
	if r.Len() == 2 && r.At(0).IsNonterminal() && r.At(1).IsNonterminal() {
		return false
	}
	return true
}

func reshapeRule(r Rule, singles *singletonMap, pairs *pairMap, names *nameBook) Rule {
	clustered := clusterTerminalRuns(r, singles, names)
	if len(clustered) == 1 {
		// The whole rule was one contiguous terminal run of length >= 2.
		// Inline the singleton's own binary definition rather than adding
		// an extra unit-shaped hop through it.
		node := clustered[0].Nonterminal().Grammar()
		return node.Rules()[0]
	}
	return foldPairs(clustered, pairs, names)
}

// clusterTerminalRuns walks r left to right, replacing every maximal run of
// terminal symbols with a single nonterminal symbol drawn from singles.
func clusterTerminalRuns(r Rule, singles *singletonMap, names *nameBook) []Symbol {
	symbols := r.Symbols()
	out := make([]Symbol, 0, len(symbols))

	i := 0
	for i < len(symbols) {
		if symbols[i].IsNonterminal() {
			out = append(out, symbols[i])
			i++
			continue
		}
		var run strings.Builder
		for i < len(symbols) && symbols[i].IsTerminal() {
			run.WriteByte(byte(symbols[i].Terminal()))
			i++
		}
		node := singles.GetOrCreate(run.String(), names)
		out = append(out, SymbolFromNonterminal(NonterminalOf(node)))
	}
	return out
}

// foldPairs folds a sequence of m >= 2 nonterminal symbols into exactly two,
// by building left-associated pair nonterminals: P_1 = (s0, s1),
// P_2 = (P_1, s2), ..., with the final rule being (P_{m-2}, s_{m-1}).
func foldPairs(symbols []Symbol, pairs *pairMap, names *nameBook) Rule {
	if len(symbols) == 2 {
		return NewRule(symbols[0], symbols[1])
	}

	p := symbols[0].Nonterminal().Grammar()
	for i := 1; i <= len(symbols)-2; i++ {
		curr := symbols[i].Nonterminal().Grammar()
		p = pairs.GetOrCreate(p, curr, names)
	}
	last := symbols[len(symbols)-1]
	return NewRule(SymbolFromNonterminal(NonterminalOf(p)), last)
}
