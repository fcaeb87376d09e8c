// Package cfgparser builds context-free grammars programmatically, reduces
// them to Chomsky Normal Form, and decides membership of a word in the
// language of a named grammar.
//
// A Parser holds a set of named grammars whose rules mix literal characters
// with references to other named grammars, including themselves. Given a
// name and a word, Parser.Parse answers whether the word derives from that
// grammar.
package cfgparser
