package automata

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/formalang/automata/internal/setutil"
)

// DFA is a deterministic finite automaton description. The transition table
// must be total over every reachable non-final state and every alphabet
// symbol; validation reports missing entries rather than letting a run
// silently reject.
type DFA struct {
	States      map[State]bool
	Alphabet    map[Symbol]bool
	Transitions map[State]map[Symbol]State
	Initial     State
	Final       map[State]bool
}

// DFAConfiguration is one step of a DFA run: just the current state.
type DFAConfiguration struct {
	State State
}

// Accepting reports whether the configuration is accepting for d.
func (c DFAConfiguration) Accepting(d *DFA) bool {
	return d.Final[c.State]
}

// Validate checks the description, failing fast on the first violation in
// contract order.
func (d *DFA) Validate() error {
	if errs := d.problems(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Diagnose runs every check and reports all violations at once.
func (d *DFA) Diagnose() error {
	return multierr.Combine(d.problems()...)
}

func (d *DFA) problems() []error {
	var errs []error

	if !d.States[d.Initial] {
		errs = append(errs, fmt.Errorf("%w: initial state %q not in state set", ErrInitialState, d.Initial))
	}
	for _, s := range setutil.Sorted(d.Final) {
		if !d.States[s] {
			errs = append(errs, fmt.Errorf("%w: final state %q not in state set", ErrFinalState, s))
		}
	}
	if d.Alphabet[Epsilon] {
		errs = append(errs, fmt.Errorf("%w: epsilon is not a valid DFA alphabet symbol", ErrInvalidSymbol))
	}

	for _, from := range setutil.SortedKeys(d.Transitions) {
		if !d.States[from] {
			errs = append(errs, fmt.Errorf("%w: transition from undeclared state %q", ErrInvalidState, from))
		}
		row := d.Transitions[from]
		for _, sym := range setutil.SortedKeys(row) {
			if !d.Alphabet[sym] {
				errs = append(errs, fmt.Errorf("%w: transition on undeclared symbol %q from state %q", ErrInvalidSymbol, sym, from))
			}
			if to := row[sym]; !d.States[to] {
				errs = append(errs, fmt.Errorf("%w: transition to undeclared state %q", ErrInvalidState, to))
			}
		}
	}

	// Totality over reachable input. Final states may omit entries; a run
	// that needs one fails with ErrMissingTransition instead.
	for _, s := range setutil.Sorted(d.reachable()) {
		if d.Final[s] {
			continue
		}
		row, ok := d.Transitions[s]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: reachable state %q has no transitions", ErrMissingState, s))
			continue
		}
		for _, sym := range setutil.Sorted(d.Alphabet) {
			if _, ok := row[sym]; !ok {
				errs = append(errs, fmt.Errorf("%w: state %q has no transition on %q", ErrMissingSymbol, s, sym))
			}
		}
	}

	return errs
}

// reachable returns the states reachable from the initial state over the
// transition table, including the initial state itself.
func (d *DFA) reachable() map[State]bool {
	seen := map[State]bool{d.Initial: true}
	queue := []State{d.Initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range setutil.SortedKeys(d.Transitions[cur]) {
			next := d.Transitions[cur][sym]
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Execute runs the DFA over input, returning a lazy Run that yields the
// initial configuration and then one configuration per symbol consumed.
// Input symbols outside the alphabet fail immediately; a non-accepting halt
// surfaces as ErrRejected on the Run only after all input is consumed.
//
// Execute assumes a validated description.
func (d *DFA) Execute(input []Symbol, opts ...ExecOption) (*Run[DFAConfiguration], error) {
	cfg := newExecConfig(opts...)
	if err := checkInput(input, d.Alphabet); err != nil {
		return nil, err
	}

	cur := d.Initial
	pos := -1
	return newRun(func() (DFAConfiguration, bool, error) {
		if pos < 0 {
			pos = 0
			cfg.log.V(1).Info("run start", "state", cur)
			return DFAConfiguration{State: cur}, true, nil
		}
		if pos >= len(input) {
			if !d.Final[cur] {
				return DFAConfiguration{}, false, fmt.Errorf("%w: halted in non-final state %q", ErrRejected, cur)
			}
			return DFAConfiguration{}, false, nil
		}
		sym := input[pos]
		next, ok := d.Transitions[cur][sym]
		if !ok {
			return DFAConfiguration{}, false, fmt.Errorf("%w: state %q on symbol %q", ErrMissingTransition, cur, sym)
		}
		pos++
		cfg.log.V(1).Info("step", "from", cur, "symbol", sym, "to", next)
		cur = next
		return DFAConfiguration{State: cur}, true, nil
	}), nil
}

// Accepts reports whether the DFA accepts input. Run failures collapse to
// false; structural validation failures propagate.
func (d *DFA) Accepts(input []Symbol) (bool, error) {
	if err := d.Validate(); err != nil {
		return false, err
	}
	run, err := d.Execute(input)
	if err != nil {
		return false, nil
	}
	for run.Next() {
	}
	return run.Err() == nil, nil
}

// Copy returns a deep, independent clone of the description. Mutating the
// copy's sets or transition table never affects the original.
func (d *DFA) Copy() *DFA {
	transitions := make(map[State]map[Symbol]State, len(d.Transitions))
	for from, row := range d.Transitions {
		transitions[from] = setutil.CloneMap(row)
	}
	return &DFA{
		States:      setutil.Clone(d.States),
		Alphabet:    setutil.Clone(d.Alphabet),
		Transitions: transitions,
		Initial:     d.Initial,
		Final:       setutil.Clone(d.Final),
	}
}

// checkInput verifies every input symbol is declared in the alphabet.
func checkInput(input []Symbol, alphabet map[Symbol]bool) error {
	for i, sym := range input {
		if !alphabet[sym] {
			return fmt.Errorf("%w: input symbol %q at position %d", ErrInvalidSymbol, sym, i)
		}
	}
	return nil
}
