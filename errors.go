package cfgparser

import "github.com/pkg/errors"

// Sentinel errors identifying the taxonomy from the error handling design.
// Callers should compare with errors.Is; wrapped context is added with
// errors.Wrap/Wrapf at the call site that detects the condition.
var (
	// ErrInvalidTerminal is returned when constructing a terminal from a byte
	// outside the printable ASCII range [0x20, 0x7E].
	ErrInvalidTerminal = errors.New("cfgparser: invalid terminal")

	// ErrEmptyName is returned when an empty string is used as a grammar name.
	ErrEmptyName = errors.New("cfgparser: empty grammar name")

	// ErrDuplicateName is returned by Create when the name is already registered.
	ErrDuplicateName = errors.New("cfgparser: duplicate grammar name")

	// ErrUnknownName is returned when a name has not been registered.
	ErrUnknownName = errors.New("cfgparser: unknown grammar name")

	// ErrRedundantRule is returned by Insert when the rule is the self-unit
	// rule G -> G.
	ErrRedundantRule = errors.New("cfgparser: redundant rule G -> G")

	// ErrForeignNonterminal is returned when a rule references a nonterminal
	// not owned by the parser performing the operation.
	ErrForeignNonterminal = errors.New("cfgparser: foreign nonterminal")

	// ErrEmptyReachableNonterminal is returned by normalization when some
	// nonterminal reachable from the root grammar has no rules at all.
	ErrEmptyReachableNonterminal = errors.New("cfgparser: reachable nonterminal has no rules")

	// ErrIO is returned when a batch file cannot be opened or read.
	ErrIO = errors.New("cfgparser: io error")
)
