package automata

import "errors"

// Sentinel errors for the validation and execution contract. All errors
// returned by this package wrap one of these and can be tested with
// errors.Is.
var (
	// ErrInvalidState is returned when a transition references a state
	// that is not in the declared state set.
	ErrInvalidState = errors.New("state not in state set")

	// ErrInvalidSymbol is returned when a transition or an input sequence
	// references a symbol that is not in the relevant declared alphabet.
	ErrInvalidSymbol = errors.New("symbol not in alphabet")

	// ErrMissingState is returned when a reachable state has no
	// transition row at all in a variant that requires one.
	ErrMissingState = errors.New("state missing from transition table")

	// ErrMissingSymbol is returned when a reachable state's transition
	// row lacks an entry for a declared alphabet symbol.
	ErrMissingSymbol = errors.New("symbol missing from transition row")

	// ErrMissingTransition is returned when execution needs a transition
	// that the table does not define.
	ErrMissingTransition = errors.New("no transition defined")

	// ErrInitialState is returned when the initial state (or initial
	// stack symbol) violates the structural contract.
	ErrInitialState = errors.New("invalid initial state")

	// ErrFinalState is returned when the final-states set violates the
	// structural contract.
	ErrFinalState = errors.New("invalid final state")

	// ErrDeterminismViolation is returned when a deterministic variant
	// defines two transitions enabled by the same trigger.
	ErrDeterminismViolation = errors.New("determinism violation")

	// ErrRejected is reported by a Run once the entire input has been
	// consumed and the halting configuration is not accepting.
	ErrRejected = errors.New("input rejected")

	// ErrStepLimit is reported by a Run when a caller-imposed step budget
	// (WithStepLimit) is exhausted before the machine halts.
	ErrStepLimit = errors.New("step limit exceeded")
)
