package cfgparser

import "github.com/pkg/errors"

// Rule is an ordered sequence of symbols, the right-hand side of a
// production. The empty sequence denotes the epsilon-production.
type Rule struct {
	symbols []Symbol
}

// NewRule builds a rule from an ordered list of symbols.
func NewRule(symbols ...Symbol) Rule {
	cp := make([]Symbol, len(symbols))
	copy(cp, symbols)
	return Rule{symbols: cp}
}

// NewTerminalRule builds a rule where each byte of s becomes a terminal
// symbol, in order. Returns ErrInvalidTerminal if any byte is out of range.
func NewTerminalRule(s string) (Rule, error) {
	symbols := make([]Symbol, 0, len(s))
	for i := 0; i < len(s); i++ {
		t, err := NewTerminal(s[i])
		if err != nil {
			return Rule{}, errors.Wrapf(err, "NewTerminalRule: byte %d of %q", i, s)
		}
		symbols = append(symbols, SymbolFromTerminal(t))
	}
	return Rule{symbols: symbols}, nil
}

// NewSymbolRule builds a single-symbol rule.
func NewSymbolRule(s Symbol) Rule {
	return Rule{symbols: []Symbol{s}}
}

// EmptyRule is the epsilon-production.
func EmptyRule() Rule {
	return Rule{}
}

// Len returns the number of symbols in the rule.
func (r Rule) Len() int {
	return len(r.symbols)
}

// IsEmpty reports whether r is the epsilon-production.
func (r Rule) IsEmpty() bool {
	return len(r.symbols) == 0
}

// IsUnit reports whether r has length 1 and its sole symbol is a nonterminal.
func (r Rule) IsUnit() bool {
	return len(r.symbols) == 1 && r.symbols[0].IsNonterminal()
}

// IsRedundantFor reports whether r is the unit rule g -> g.
func (r Rule) IsRedundantFor(g *Grammar) bool {
	return r.IsUnit() && r.symbols[0].Nonterminal().Grammar() == g
}

// Symbols returns a copy of the rule's symbol sequence.
func (r Rule) Symbols() []Symbol {
	cp := make([]Symbol, len(r.symbols))
	copy(cp, r.symbols)
	return cp
}

// At returns the symbol at position i.
func (r Rule) At(i int) Symbol {
	return r.symbols[i]
}

// Contains reports whether s appears anywhere in r.
func (r Rule) Contains(s Symbol) bool {
	for _, sym := range r.symbols {
		if sym.Equal(s) {
			return true
		}
	}
	return false
}

// Append returns a new rule formed by appending s to r.
func (r Rule) Append(s Symbol) Rule {
	out := make([]Symbol, len(r.symbols)+1)
	copy(out, r.symbols)
	out[len(r.symbols)] = s
	return Rule{symbols: out}
}

// Concat returns a new rule formed by concatenating r and o.
func (r Rule) Concat(o Rule) Rule {
	out := make([]Symbol, 0, len(r.symbols)+len(o.symbols))
	out = append(out, r.symbols...)
	out = append(out, o.symbols...)
	return Rule{symbols: out}
}

// AppendString returns a new rule formed by appending each byte of s, as
// terminals, to r.
func (r Rule) AppendString(s string) (Rule, error) {
	tail, err := NewTerminalRule(s)
	if err != nil {
		return Rule{}, errors.Wrap(err, "Rule.AppendString")
	}
	return r.Concat(tail), nil
}

// Prune returns a copy of r with every symbol matching keep==false removed,
// plus the count of removed symbols.
func (r Rule) Prune(keep func(Symbol) bool) (Rule, int) {
	out := make([]Symbol, 0, len(r.symbols))
	removed := 0
	for _, sym := range r.symbols {
		if keep(sym) {
			out = append(out, sym)
		} else {
			removed++
		}
	}
	return Rule{symbols: out}, removed
}

// PruneSymbol removes every occurrence of target from r, returning the
// pruned rule and the count of occurrences removed.
func (r Rule) PruneSymbol(target Symbol) (Rule, int) {
	return r.Prune(func(s Symbol) bool { return !s.Equal(target) })
}

// Equal reports positional symbol equality.
func (r Rule) Equal(o Rule) bool {
	if len(r.symbols) != len(o.symbols) {
		return false
	}
	for i := range r.symbols {
		if !r.symbols[i].Equal(o.symbols[i]) {
			return false
		}
	}
	return true
}

// hash combines per-position symbol hashes with an avalanching mix so that
// order matters: {a, b} and {b, a} hash differently.
func (r Rule) hash() uint64 {
	const mixConst = 0x9e3779b97f4a7c15 // golden-ratio derived constant
	var seed uint64
	for _, sym := range r.symbols {
		h := sym.hash()
		seed ^= h + mixConst + (seed << 6) + (seed >> 2)
	}
	return seed
}

// key returns a comparable representation of r suitable for use as a map key
// inside a rule set. Two equal rules (by Equal) always produce the same key.
func (r Rule) key() ruleKey {
	k := ruleKey{hash: r.hash(), length: len(r.symbols)}
	return k
}

// ruleKey is a cheap, mostly-unique key for rule sets. Because distinct
// rules could in principle collide on hash, rule sets keep a bucket of rules
// per key and compare each bucket entry with Equal (see grammar.go).
type ruleKey struct {
	hash   uint64
	length int
}
