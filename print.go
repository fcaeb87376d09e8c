package cfgparser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

// resolveOriginal, when non-nil, maps a normalized-subgraph node back to the
// name of the originally-registered grammar it is a copy of. It returns
// false for purely synthetic (singleton/pair) nodes.
type resolveOriginal func(node *Grammar) (name string, ok bool)

// printer renders a reachable grammar subgraph the way the original
// implementation's CfgPrinter did: one block per nonterminal, each rule
// followed by an underline line, with terminal-derived color via pterm
// styles instead of raw fmt.Println.
type printer struct {
	names   *nameBook
	resolve resolveOriginal

	nonterminalStyle *pterm.Style
	terminalStyle    *pterm.Style
	underlineStyle   *pterm.Style
}

func newPrinter(names *nameBook, resolve resolveOriginal) *printer {
	return &printer{
		names:             names,
		resolve:           resolve,
		nonterminalStyle: pterm.NewStyle(pterm.FgCyan),
		terminalStyle:    pterm.NewStyle(pterm.FgDefault),
		underlineStyle:   pterm.NewStyle(pterm.FgGray),
	}
}

// Render renders root (named rootName) and every nonterminal reachable from
// it, in the order spec.md 6 describes.
func (pr *printer) Render(root *Grammar, rootName string) string {
	nodes := PreOrder(root)
	index := make(map[*Grammar]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	var sb strings.Builder
	for _, node := range nodes {
		name, _ := pr.label(node, root, rootName)
		sb.WriteString(pr.renderShallow(node, name, root, rootName, index))
	}
	return sb.String()
}

// label returns the diagnostic name for node and whether it should be
// rendered with original-grammar brackets ("[NAME]") as opposed to
// synthetic-grammar parens ("(NAME)").
func (pr *printer) label(node, root *Grammar, rootName string) (string, bool) {
	if node == root {
		return rootName, true
	}
	if pr.resolve != nil {
		if name, ok := pr.resolve(node); ok {
			return name, true
		}
	}
	if name := pr.names.NameOf(node); name != "" {
		return name, pr.resolve == nil
	}
	return "?", false
}

func (pr *printer) renderShallow(node *Grammar, name string, root *Grammar, rootName string, index map[*Grammar]int) string {
	rules := sortRulesForPrint(node.Rules(), index)
	padding := len(name) + 4

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" -> ")
	for i, r := range rules {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}
		text, underline := pr.renderRule(r, root, rootName, index)
		sb.WriteString(text)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(underline)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// renderRule renders one rule's symbols and its underline line.
func (pr *printer) renderRule(r Rule, root *Grammar, rootName string, index map[*Grammar]int) (text, underline string) {
	if r.IsEmpty() {
		const token = "empty rule"
		return pr.terminalStyle.Sprint(token), pr.underlineStyle.Sprint(strings.Repeat("^", len(token)))
	}

	var body, marks strings.Builder
	for _, s := range r.Symbols() {
		if s.IsTerminal() {
			ch := string(rune(s.Terminal()))
			body.WriteString(pr.terminalStyle.Sprint(ch))
			marks.WriteString(" ")
			continue
		}
		node := s.Nonterminal().Grammar()
		name, isOriginal := pr.label(node, root, rootName)
		bracketed := fmt.Sprintf("[%s]", name)
		if !isOriginal {
			bracketed = fmt.Sprintf("(%s)", name)
		}
		body.WriteString(pr.nonterminalStyle.Sprint(bracketed))
		marks.WriteString(strings.Repeat("^", len(bracketed)))
	}
	return body.String(), pr.underlineStyle.Sprint(marks.String())
}

// sortRulesForPrint orders rules by the comparator of spec.md 6/9,
// descending: more nonterminals first, then longer rules first, then
// symbol-wise lexicographic (nonterminal > terminal), with nonterminal ties
// broken by the pre-order index assigned to each node for this render.
func sortRulesForPrint(rules []Rule, index map[*Grammar]int) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareRule(sorted[i], sorted[j], index) > 0
	})
	return sorted
}

func countNonterminals(r Rule) int {
	n := 0
	for _, s := range r.Symbols() {
		if s.IsNonterminal() {
			n++
		}
	}
	return n
}

// compareRule returns >0 if a sorts before b (a is "greater"), <0 if after,
// 0 if equal under this comparator.
func compareRule(a, b Rule, index map[*Grammar]int) int {
	if na, nb := countNonterminals(a), countNonterminals(b); na != nb {
		return sign(na - nb)
	}
	if a.Len() != b.Len() {
		return sign(a.Len() - b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if c := compareSymbol(a.At(i), b.At(i), index); c != 0 {
			return c
		}
	}
	return 0
}

// compareSymbol returns >0 if a sorts before b. Nonterminals sort before
// terminals; among terminals, higher byte value sorts first; among
// nonterminals, lower pre-order index sorts first (an arbitrary but
// deterministic-per-render identity tiebreak).
func compareSymbol(a, b Symbol, index map[*Grammar]int) int {
	if a.IsNonterminal() != b.IsNonterminal() {
		if a.IsNonterminal() {
			return 1
		}
		return -1
	}
	if a.IsTerminal() {
		return sign(int(a.Terminal()) - int(b.Terminal()))
	}
	ia, ib := index[a.Nonterminal().Grammar()], index[b.Nonterminal().Grammar()]
	return sign(ib - ia)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
