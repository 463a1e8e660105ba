package automata

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/formalang/automata/internal/setutil"
)

// TMRule is the outcome of a DTM transition: write a symbol under the head,
// move the head, and change state.
type TMRule struct {
	Next  State
	Write Symbol
	Move  Move
}

// DTM is a deterministic Turing machine description. The tape alphabet is a
// superset of the input alphabet and additionally contains the blank
// symbol. A state with no transition row halts the machine; a run is
// accepted iff the halting state is final.
type DTM struct {
	States        map[State]bool
	InputAlphabet map[Symbol]bool
	TapeAlphabet  map[Symbol]bool
	Blank         Symbol
	Transitions   map[State]map[Symbol]TMRule
	Initial       State
	Final         map[State]bool
}

// DTMConfiguration is one step of a DTM run. Tape is an independent
// snapshot of the visited cells; Head indexes into Tape.
type DTMConfiguration struct {
	State State
	Tape  []Symbol
	Head  int
}

// Validate checks the description, failing fast on the first violation in
// contract order.
func (t *DTM) Validate() error {
	if errs := t.problems(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Diagnose runs every check and reports all violations at once.
func (t *DTM) Diagnose() error {
	return multierr.Combine(t.problems()...)
}

func (t *DTM) problems() []error {
	var errs []error

	if !t.States[t.Initial] {
		errs = append(errs, fmt.Errorf("%w: initial state %q not in state set", ErrInitialState, t.Initial))
	}
	for _, s := range setutil.Sorted(t.Final) {
		if !t.States[s] {
			errs = append(errs, fmt.Errorf("%w: final state %q not in state set", ErrFinalState, s))
		}
	}
	if t.InputAlphabet[Epsilon] || t.TapeAlphabet[Epsilon] {
		errs = append(errs, fmt.Errorf("%w: epsilon is not a valid tape symbol", ErrInvalidSymbol))
	}

	for _, from := range setutil.SortedKeys(t.Transitions) {
		if !t.States[from] {
			errs = append(errs, fmt.Errorf("%w: transition from undeclared state %q", ErrInvalidState, from))
		}
		row := t.Transitions[from]
		for _, sym := range setutil.SortedKeys(row) {
			if !t.TapeAlphabet[sym] {
				errs = append(errs, fmt.Errorf("%w: transition on undeclared tape symbol %q from state %q", ErrInvalidSymbol, sym, from))
			}
			rule := row[sym]
			if !t.States[rule.Next] {
				errs = append(errs, fmt.Errorf("%w: transition to undeclared state %q", ErrInvalidState, rule.Next))
			}
			if !t.TapeAlphabet[rule.Write] {
				errs = append(errs, fmt.Errorf("%w: write of undeclared tape symbol %q", ErrInvalidSymbol, rule.Write))
			}
		}
	}

	if !t.TapeAlphabet[t.Blank] {
		errs = append(errs, fmt.Errorf("%w: blank symbol %q not in tape alphabet", ErrInvalidSymbol, t.Blank))
	}
	if t.InputAlphabet[t.Blank] {
		errs = append(errs, fmt.Errorf("%w: blank symbol %q must not be in the input alphabet", ErrInvalidSymbol, t.Blank))
	}
	for _, sym := range setutil.Sorted(t.InputAlphabet) {
		if !t.TapeAlphabet[sym] {
			errs = append(errs, fmt.Errorf("%w: input symbol %q not in tape alphabet", ErrInvalidSymbol, sym))
		}
	}

	return errs
}

// Execute runs the DTM over input. The input is written left-aligned with
// the head on the first cell; unvisited cells read as the blank symbol, and
// the visited range grows by one cell whenever the head crosses a boundary.
// The machine halts when no transition exists for (state, head symbol);
// ErrRejected surfaces iff the halting state is not final. The engine never
// detects looping; bound a possibly-divergent machine with WithStepLimit.
//
// Execute assumes a validated description.
func (t *DTM) Execute(input []Symbol, opts ...ExecOption) (*Run[DTMConfiguration], error) {
	cfg := newExecConfig(opts...)
	if err := checkInput(input, t.InputAlphabet); err != nil {
		return nil, err
	}

	cells := slices.Clone(input)
	if len(cells) == 0 {
		cells = []Symbol{t.Blank}
	}
	cur := t.Initial
	head := 0
	started := false
	steps := 0
	return newRun(func() (DTMConfiguration, bool, error) {
		if !started {
			started = true
			cfg.log.V(1).Info("run start", "state", cur, "tape", cells)
			return DTMConfiguration{State: cur, Tape: slices.Clone(cells), Head: head}, true, nil
		}

		sym := cells[head]
		rule, ok := t.Transitions[cur][sym]
		if !ok {
			if !t.Final[cur] {
				return DTMConfiguration{}, false, fmt.Errorf("%w: halted in non-final state %q", ErrRejected, cur)
			}
			return DTMConfiguration{}, false, nil
		}
		if cfg.stepLimit > 0 && steps >= cfg.stepLimit {
			return DTMConfiguration{}, false, fmt.Errorf("%w: after %d steps", ErrStepLimit, steps)
		}
		steps++

		cells[head] = rule.Write
		switch rule.Move {
		case Left:
			if head == 0 {
				cells = append([]Symbol{t.Blank}, cells...)
			} else {
				head--
			}
		case Right:
			head++
			if head == len(cells) {
				cells = append(cells, t.Blank)
			}
		}
		cfg.log.V(1).Info("step", "from", cur, "read", sym, "write", rule.Write, "move", rule.Move, "to", rule.Next)
		cur = rule.Next
		return DTMConfiguration{State: cur, Tape: slices.Clone(cells), Head: head}, true, nil
	}), nil
}

// Accepts reports whether the DTM accepts input, i.e. halts in a final
// state. Run failures collapse to false; structural validation failures
// propagate. Accepts does not return on a machine that never halts.
func (t *DTM) Accepts(input []Symbol) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	run, err := t.Execute(input)
	if err != nil {
		return false, nil
	}
	for run.Next() {
	}
	return run.Err() == nil, nil
}

// Copy returns a deep, independent clone of the description.
func (t *DTM) Copy() *DTM {
	transitions := make(map[State]map[Symbol]TMRule, len(t.Transitions))
	for from, row := range t.Transitions {
		transitions[from] = setutil.CloneMap(row)
	}
	return &DTM{
		States:        setutil.Clone(t.States),
		InputAlphabet: setutil.Clone(t.InputAlphabet),
		TapeAlphabet:  setutil.Clone(t.TapeAlphabet),
		Blank:         t.Blank,
		Transitions:   transitions,
		Initial:       t.Initial,
		Final:         setutil.Clone(t.Final),
	}
}
