package automata

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/formalang/automata/internal/setutil"
)

// NFA is a non-deterministic finite automaton description. Transition rows
// map a symbol (or Epsilon) to the set of possible successor states; missing
// entries mean "no move", so the table need not be total.
type NFA struct {
	States      map[State]bool
	Alphabet    map[Symbol]bool
	Transitions map[State]map[Symbol][]State
	Initial     State
	Final       map[State]bool
}

// NFAConfiguration is one step of an NFA run: the epsilon closure of every
// state the machine could be in, sorted for determinism.
type NFAConfiguration struct {
	States []State
}

// Accepting reports whether the configuration intersects n's final states.
func (c NFAConfiguration) Accepting(n *NFA) bool {
	return setutil.Intersects(setutil.FromSlice(c.States), n.Final)
}

// Validate checks the description, failing fast on the first violation in
// contract order.
func (n *NFA) Validate() error {
	if errs := n.problems(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Diagnose runs every check and reports all violations at once.
func (n *NFA) Diagnose() error {
	return multierr.Combine(n.problems()...)
}

func (n *NFA) problems() []error {
	var errs []error

	if !n.States[n.Initial] {
		errs = append(errs, fmt.Errorf("%w: initial state %q not in state set", ErrInitialState, n.Initial))
	}
	for _, s := range setutil.Sorted(n.Final) {
		if !n.States[s] {
			errs = append(errs, fmt.Errorf("%w: final state %q not in state set", ErrFinalState, s))
		}
	}
	if n.Alphabet[Epsilon] {
		errs = append(errs, fmt.Errorf("%w: epsilon must not be declared in the alphabet", ErrInvalidSymbol))
	}

	for _, from := range setutil.SortedKeys(n.Transitions) {
		if !n.States[from] {
			errs = append(errs, fmt.Errorf("%w: transition from undeclared state %q", ErrInvalidState, from))
		}
		row := n.Transitions[from]
		for _, sym := range setutil.SortedKeys(row) {
			if sym != Epsilon && !n.Alphabet[sym] {
				errs = append(errs, fmt.Errorf("%w: transition on undeclared symbol %q from state %q", ErrInvalidSymbol, sym, from))
			}
			for _, to := range row[sym] {
				if !n.States[to] {
					errs = append(errs, fmt.Errorf("%w: transition to undeclared state %q", ErrInvalidState, to))
				}
			}
		}
	}

	return errs
}

// Execute runs the NFA over input. Each configuration is the epsilon closure
// of the set of states reachable after consuming the input prefix; the run
// starts with the closure of the initial state. Rejection is only decided
// once the whole input is consumed, since a branch that is empty now can
// never revive but one that is live may still reach acceptance.
//
// Execute assumes a validated description.
func (n *NFA) Execute(input []Symbol, opts ...ExecOption) (*Run[NFAConfiguration], error) {
	cfg := newExecConfig(opts...)
	if err := checkInput(input, n.Alphabet); err != nil {
		return nil, err
	}

	cur := n.EpsilonClosure(map[State]bool{n.Initial: true})
	pos := -1
	return newRun(func() (NFAConfiguration, bool, error) {
		if pos < 0 {
			pos = 0
			cfg.log.V(1).Info("run start", "states", setutil.Key(cur))
			return NFAConfiguration{States: setutil.Sorted(cur)}, true, nil
		}
		if pos >= len(input) {
			if !setutil.Intersects(cur, n.Final) {
				return NFAConfiguration{}, false, fmt.Errorf("%w: no live branch in a final state", ErrRejected)
			}
			return NFAConfiguration{}, false, nil
		}
		sym := input[pos]
		pos++
		cur = n.EpsilonClosure(n.move(cur, sym))
		cfg.log.V(1).Info("step", "symbol", sym, "states", setutil.Key(cur))
		return NFAConfiguration{States: setutil.Sorted(cur)}, true, nil
	}), nil
}

// move returns the union of the transition images of every state in from on
// sym, without epsilon closure.
func (n *NFA) move(from map[State]bool, sym Symbol) map[State]bool {
	out := make(map[State]bool)
	for s := range from {
		for _, to := range n.Transitions[s][sym] {
			out[to] = true
		}
	}
	return out
}

// Accepts reports whether the NFA accepts input. Run failures collapse to
// false; structural validation failures propagate.
func (n *NFA) Accepts(input []Symbol) (bool, error) {
	if err := n.Validate(); err != nil {
		return false, err
	}
	run, err := n.Execute(input)
	if err != nil {
		return false, nil
	}
	for run.Next() {
	}
	return run.Err() == nil, nil
}

// Copy returns a deep, independent clone of the description.
func (n *NFA) Copy() *NFA {
	transitions := make(map[State]map[Symbol][]State, len(n.Transitions))
	for from, row := range n.Transitions {
		newRow := make(map[Symbol][]State, len(row))
		for sym, targets := range row {
			newRow[sym] = slices.Clone(targets)
		}
		transitions[from] = newRow
	}
	return &NFA{
		States:      setutil.Clone(n.States),
		Alphabet:    setutil.Clone(n.Alphabet),
		Transitions: transitions,
		Initial:     n.Initial,
		Final:       setutil.Clone(n.Final),
	}
}
