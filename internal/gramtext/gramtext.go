// Package gramtext is cmd/cfgparse's grammar-source-file reader. It is a
// thin, CLI-only convenience format for building a cfgparser.Parser from a
// text file; it is not part of the library's public rule-construction
// surface (spec.md keeps that surface limited to Rule/Symbol literals).
//
// Each non-blank, non-comment line has the form:
//
//	Name -> alt1 | alt2 | ...
//
// Alternatives are separated by "|"; each alternative is a sequence of
// whitespace-separated tokens. A token "<Other>" references the nonterminal
// named Other, which may be any name appearing as some line's Name,
// including Name itself (self-recursion) or one declared later in the file
// (forward reference). The token "eps" denotes the epsilon-production when
// it is the alternative's only token; next to other tokens it is read like
// any other token. Any other token contributes one terminal symbol per
// byte, in order, so "ab" is two terminal symbols.
package gramtext

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	cfgparser "github.com/wylyK/cfg-parser"
)

// Load reads a grammar source from r and builds every named grammar it
// declares into p, returning the names in declaration order.
func Load(p *cfgparser.Parser, r io.Reader) ([]string, error) {
	lines, err := scan(r)
	if err != nil {
		return nil, errors.Wrap(err, "gramtext.Load")
	}

	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.name)
	}
	for _, name := range names {
		if _, err := p.Create(name); err != nil {
			return nil, errors.Wrapf(err, "gramtext.Load: declaring %q", name)
		}
	}

	for _, l := range lines {
		for _, alt := range l.alternatives {
			rule, err := toRule(p, alt)
			if err != nil {
				return nil, errors.Wrapf(err, "gramtext.Load: %q", l.name)
			}
			if err := p.Insert(l.name, rule); err != nil {
				return nil, errors.Wrapf(err, "gramtext.Load: %q", l.name)
			}
		}
	}
	return names, nil
}

type sourceLine struct {
	name         string
	alternatives [][]string
}

func scan(r io.Reader) ([]sourceLine, error) {
	var lines []sourceLine
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, ";") || strings.HasPrefix(raw, "#") {
			continue
		}
		name, body, ok := strings.Cut(raw, "->")
		if !ok {
			return nil, errors.Errorf("gramtext: missing '->' in line %q", raw)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.Errorf("gramtext: empty name in line %q", raw)
		}

		var alts [][]string
		for _, part := range strings.Split(body, "|") {
			alts = append(alts, strings.Fields(part))
		}
		lines = append(lines, sourceLine{name: name, alternatives: alts})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "gramtext: scan")
	}
	return lines, nil
}

func toRule(p *cfgparser.Parser, tokens []string) (cfgparser.Rule, error) {
	if len(tokens) == 1 && tokens[0] == "eps" {
		return cfgparser.EmptyRule(), nil
	}

	rule := cfgparser.EmptyRule()
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
			ref := tok[1 : len(tok)-1]
			nt, err := p.Get(ref)
			if err != nil {
				return cfgparser.Rule{}, errors.Wrapf(err, "toRule: reference %q", tok)
			}
			rule = rule.Append(cfgparser.SymbolFromNonterminal(nt))
			continue
		}
		next, err := rule.AppendString(tok)
		if err != nil {
			return cfgparser.Rule{}, errors.Wrapf(err, "toRule: terminal run %q", tok)
		}
		rule = next
	}
	return rule, nil
}
