package cfgparser

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Terminal is a single printable ASCII character, [0x20, 0x7E].
type Terminal byte

// NewTerminal validates b and returns it as a Terminal.
func NewTerminal(b byte) (Terminal, error) {
	if b < 0x20 || b > 0x7E {
		return 0, errors.Wrapf(ErrInvalidTerminal, "byte %#02x outside [0x20, 0x7E]", b)
	}
	return Terminal(b), nil
}

func mustTerminal(b byte) Terminal {
	t, err := NewTerminal(b)
	if err != nil {
		panic(err)
	}
	return t
}

// Nonterminal is a non-owning reference to a Grammar node. It hashes and
// compares by the identity of the referenced node; a nil Nonterminal is
// never valid inside a Rule.
type Nonterminal struct {
	node *Grammar
}

// NonterminalOf wraps g as a Nonterminal reference. g must not be nil.
func NonterminalOf(g *Grammar) Nonterminal {
	if g == nil {
		panic("cfgparser: NonterminalOf(nil)")
	}
	return Nonterminal{node: g}
}

// IsZero reports whether nt is the zero value (no referenced grammar).
func (nt Nonterminal) IsZero() bool {
	return nt.node == nil
}

// Grammar returns the referenced grammar node.
func (nt Nonterminal) Grammar() *Grammar {
	return nt.node
}

// symbolKind tags the two cases of Symbol.
type symbolKind uint8

const (
	symbolTerminal symbolKind = iota
	symbolNonterminal
)

// Symbol is a tagged union of Terminal and Nonterminal. The zero value is not
// a valid Symbol; construct one with SymbolFromTerminal or
// SymbolFromNonterminal.
type Symbol struct {
	kind symbolKind
	term Terminal
	nt   Nonterminal
}

// SymbolFromTerminal wraps t as a terminal Symbol.
func SymbolFromTerminal(t Terminal) Symbol {
	return Symbol{kind: symbolTerminal, term: t}
}

// SymbolFromNonterminal wraps nt as a nonterminal Symbol. nt must not be zero.
func SymbolFromNonterminal(nt Nonterminal) Symbol {
	if nt.IsZero() {
		panic("cfgparser: SymbolFromNonterminal(zero Nonterminal)")
	}
	return Symbol{kind: symbolNonterminal, nt: nt}
}

// IsTerminal reports whether s wraps a Terminal.
func (s Symbol) IsTerminal() bool {
	return s.kind == symbolTerminal
}

// IsNonterminal reports whether s wraps a Nonterminal.
func (s Symbol) IsNonterminal() bool {
	return s.kind == symbolNonterminal
}

// Terminal returns the wrapped Terminal. Panics if s is not a terminal.
func (s Symbol) Terminal() Terminal {
	if s.kind != symbolTerminal {
		panic("cfgparser: Symbol.Terminal on nonterminal symbol")
	}
	return s.term
}

// Nonterminal returns the wrapped Nonterminal. Panics if s is not a nonterminal.
func (s Symbol) Nonterminal() Nonterminal {
	if s.kind != symbolNonterminal {
		panic("cfgparser: Symbol.Nonterminal on terminal symbol")
	}
	return s.nt
}

// Equal reports whether s and o denote the same symbol: equal tags, and
// either equal terminal bytes or identical referenced grammar nodes.
func (s Symbol) Equal(o Symbol) bool {
	if s.kind != o.kind {
		return false
	}
	if s.kind == symbolTerminal {
		return s.term == o.term
	}
	return s.nt.node == o.nt.node
}

// hash mixes the symbol's tag and payload into a 64-bit FNV-1a-style hash.
// The tag is mixed in before the payload, so it participates in the hash,
// not just the payload.
func (s Symbol) hash() uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211

	h := uint64(offset64)
	h = (h ^ uint64(s.kind)) * prime64
	if s.kind == symbolTerminal {
		h = (h ^ uint64(s.term)) * prime64
		return h
	}
	// Mix in the pointer identity of the referenced node.
	addr := uintptr(unsafe.Pointer(s.nt.node))
	h = (h ^ uint64(addr)) * prime64
	return h
}
