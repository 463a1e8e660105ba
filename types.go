package automata

// State is an opaque identifier for an automaton state. States carry no
// meaning beyond identity; two automata may reuse the same names without
// relation.
type State string

// Symbol is an opaque identifier for an input, stack, or tape symbol.
type Symbol string

// Epsilon is the distinguished "consume nothing" symbol. It is a valid
// transition key only in NFA and DPDA tables; DFA and DTM tables reject it.
const Epsilon Symbol = ""

// Move is a tape head direction for Turing machine rules.
type Move int

const (
	Left Move = iota
	Right
	Stay
)

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	case Stay:
		return "S"
	}
	return "?"
}

// NewStateSet builds a state set from the given members.
func NewStateSet(states ...State) map[State]bool {
	set := make(map[State]bool, len(states))
	for _, s := range states {
		set[s] = true
	}
	return set
}

// NewSymbolSet builds a symbol set from the given members.
func NewSymbolSet(symbols ...Symbol) map[Symbol]bool {
	set := make(map[Symbol]bool, len(symbols))
	for _, s := range symbols {
		set[s] = true
	}
	return set
}

// Input splits a string into one Symbol per rune. Convenience for automata
// whose alphabet is single-character symbols.
func Input(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(r))
	}
	return syms
}

var (
	_ Machine = (*DFA)(nil)
	_ Machine = (*NFA)(nil)
	_ Machine = (*DPDA)(nil)
	_ Machine = (*DTM)(nil)
)

// Machine is the capability contract shared by all automaton variants.
type Machine interface {
	// Validate checks the description against the structural contract,
	// failing fast on the first violation.
	Validate() error

	// Diagnose runs the full structural contract and reports every
	// violation found, combined into one error.
	Diagnose() error

	// Accepts reports whether the machine accepts the input. Failure
	// conditions during the run (rejection, undeclared symbols) collapse
	// to false; structural validation failures propagate as errors.
	Accepts(input []Symbol) (bool, error)
}
