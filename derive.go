package cfgparser

// derivKey identifies one memoized subproblem: does nonterminal node derive
// the given word.
type derivKey struct {
	node *Grammar
	word string
}

// derivationEngine runs the memoized recursive split-point search of
// spec.md 4.6 over a single normalized grammar. An engine is built fresh for
// each top-level Parse call; its memo is not meant to outlive one call.
type derivationEngine struct {
	memo map[derivKey]bool
}

func newDerivationEngine() *derivationEngine {
	return &derivationEngine{memo: map[derivKey]bool{}}
}

// Derive reports whether word is in the language generated by nt, within
// the CNF grammar nt belongs to.
func (e *derivationEngine) Derive(nt *Grammar, word string) bool {
	key := derivKey{node: nt, word: word}
	if v, ok := e.memo[key]; ok {
		return v
	}

	result := e.deriveUncached(nt, word)
	e.memo[key] = result
	return result
}

func (e *derivationEngine) deriveUncached(nt *Grammar, word string) bool {
	switch len(word) {
	case 0:
		return nt.Contains(EmptyRule())
	case 1:
		want := mustTerminal(word[0])
		for _, r := range nt.Rules() {
			if r.Len() == 1 && r.At(0).IsTerminal() && r.At(0).Terminal() == want {
				return true
			}
		}
		return false
	default:
		for _, r := range nt.Rules() {
			if r.Len() != 2 || !r.At(0).IsNonterminal() || !r.At(1).IsNonterminal() {
				continue
			}
			a := r.At(0).Nonterminal().Grammar()
			b := r.At(1).Nonterminal().Grammar()
			for split := 1; split < len(word); split++ {
				if e.Derive(a, word[:split]) && e.Derive(b, word[split:]) {
					return true
				}
			}
		}
		return false
	}
}

// Derive decides whether word is in the language of the CNF grammar rooted
// at root, using a fresh memoization table.
func Derive(root *Grammar, word string) bool {
	tracer().Debugf("derive: word=%q", word)
	engine := newDerivationEngine()
	result := engine.Derive(root, word)
	tracer().Debugf("derive: word=%q result=%v", word, result)
	return result
}
