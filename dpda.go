package automata

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/formalang/automata/internal/setutil"
)

// PDAKey is a DPDA transition trigger: current state, input symbol (or
// Epsilon for a move that consumes no input), and current stack top.
type PDAKey struct {
	State State
	Input Symbol
	Top   Symbol
}

// PDARule is the outcome of a DPDA transition. Applying it pops the stack
// top and pushes Push in the order given, so the first listed symbol ends up
// deepest. An empty Push is a bare pop.
type PDARule struct {
	Next State
	Push []Symbol
}

// AcceptMode selects the DPDA acceptance convention.
type AcceptMode int

const (
	// AcceptFinalState accepts iff the machine is in a final state after
	// consuming the whole input. Stack contents do not matter.
	AcceptFinalState AcceptMode = iota

	// AcceptEmptyStack accepts iff the stack is empty after consuming
	// the whole input. Callers with an empty final-states set select
	// this mode.
	AcceptEmptyStack
)

// DPDA is a deterministic pushdown automaton description. Determinism is a
// validation-time property: defining both an epsilon-input and a
// real-symbol transition for the same (state, stack top) is rejected with
// ErrDeterminismViolation, never resolved by a priority order.
type DPDA struct {
	States             map[State]bool
	Alphabet           map[Symbol]bool
	StackAlphabet      map[Symbol]bool
	Transitions        map[PDAKey]PDARule
	Initial            State
	InitialStackSymbol Symbol
	Final              map[State]bool
	AcceptMode         AcceptMode
}

// DPDAConfiguration is one step of a DPDA run. Stack is an independent
// snapshot, bottom first, top last.
type DPDAConfiguration struct {
	State State
	Stack []Symbol
}

// Validate checks the description, failing fast on the first violation in
// contract order.
func (p *DPDA) Validate() error {
	if errs := p.problems(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Diagnose runs every check and reports all violations at once.
func (p *DPDA) Diagnose() error {
	return multierr.Combine(p.problems()...)
}

func (p *DPDA) problems() []error {
	var errs []error

	if !p.States[p.Initial] {
		errs = append(errs, fmt.Errorf("%w: initial state %q not in state set", ErrInitialState, p.Initial))
	}
	for _, s := range setutil.Sorted(p.Final) {
		if !p.States[s] {
			errs = append(errs, fmt.Errorf("%w: final state %q not in state set", ErrFinalState, s))
		}
	}
	if p.Alphabet[Epsilon] {
		errs = append(errs, fmt.Errorf("%w: epsilon must not be declared in the input alphabet", ErrInvalidSymbol))
	}
	if p.StackAlphabet[Epsilon] {
		errs = append(errs, fmt.Errorf("%w: epsilon must not be declared in the stack alphabet", ErrInvalidSymbol))
	}

	keys := sortedPDAKeys(p.Transitions)
	for _, k := range keys {
		if !p.States[k.State] {
			errs = append(errs, fmt.Errorf("%w: transition from undeclared state %q", ErrInvalidState, k.State))
		}
		if k.Input != Epsilon && !p.Alphabet[k.Input] {
			errs = append(errs, fmt.Errorf("%w: transition on undeclared input symbol %q", ErrInvalidSymbol, k.Input))
		}
		if !p.StackAlphabet[k.Top] {
			errs = append(errs, fmt.Errorf("%w: transition on undeclared stack symbol %q", ErrInvalidSymbol, k.Top))
		}
		rule := p.Transitions[k]
		if !p.States[rule.Next] {
			errs = append(errs, fmt.Errorf("%w: transition to undeclared state %q", ErrInvalidState, rule.Next))
		}
		for _, sym := range rule.Push {
			if !p.StackAlphabet[sym] {
				errs = append(errs, fmt.Errorf("%w: push of undeclared stack symbol %q", ErrInvalidSymbol, sym))
			}
		}
	}

	if !p.StackAlphabet[p.InitialStackSymbol] {
		errs = append(errs, fmt.Errorf("%w: initial stack symbol %q not in stack alphabet", ErrInitialState, p.InitialStackSymbol))
	}

	// Determinism: an epsilon-input transition and a real-symbol
	// transition enabled by the same (state, stack top) would make two
	// moves simultaneously available.
	for _, k := range keys {
		if k.Input == Epsilon {
			continue
		}
		if _, ok := p.Transitions[PDAKey{State: k.State, Input: Epsilon, Top: k.Top}]; ok {
			errs = append(errs, fmt.Errorf("%w: state %q with stack top %q has both epsilon and %q transitions",
				ErrDeterminismViolation, k.State, k.Top, k.Input))
		}
	}

	return errs
}

// Execute runs the DPDA over input. The stack starts holding only the
// initial stack symbol; each applied transition, epsilon moves included,
// yields one configuration. After the input is exhausted the machine keeps
// following epsilon moves until acceptance or no move applies. Divergent
// epsilon cycles are the caller's concern; bound them with WithStepLimit.
//
// Execute assumes a validated description.
func (p *DPDA) Execute(input []Symbol, opts ...ExecOption) (*Run[DPDAConfiguration], error) {
	cfg := newExecConfig(opts...)
	if err := checkInput(input, p.Alphabet); err != nil {
		return nil, err
	}

	cur := p.Initial
	stack := []Symbol{p.InitialStackSymbol}
	pos := -1
	steps := 0
	return newRun(func() (DPDAConfiguration, bool, error) {
		if pos < 0 {
			pos = 0
			cfg.log.V(1).Info("run start", "state", cur, "stack", stack)
			return DPDAConfiguration{State: cur, Stack: slices.Clone(stack)}, true, nil
		}
		if pos >= len(input) && p.accepting(cur, stack) {
			return DPDAConfiguration{}, false, nil
		}
		if cfg.stepLimit > 0 && steps >= cfg.stepLimit {
			return DPDAConfiguration{}, false, fmt.Errorf("%w: after %d steps", ErrStepLimit, steps)
		}

		rule, consumed, ok := p.enabled(cur, stack, input, pos)
		if !ok {
			return DPDAConfiguration{}, false, fmt.Errorf("%w: halted in state %q with %d of %d symbols consumed",
				ErrRejected, cur, pos, len(input))
		}
		pos += consumed
		steps++
		stack = append(stack[:len(stack)-1], rule.Push...)
		cfg.log.V(1).Info("step", "from", cur, "to", rule.Next, "consumed", consumed, "stack", stack)
		cur = rule.Next
		return DPDAConfiguration{State: cur, Stack: slices.Clone(stack)}, true, nil
	}), nil
}

// enabled returns the single transition available in the current
// configuration, with the number of input symbols it consumes. The
// real-symbol transition is consulted first; validation guarantees the
// epsilon alternative is never simultaneously defined.
func (p *DPDA) enabled(cur State, stack []Symbol, input []Symbol, pos int) (PDARule, int, bool) {
	if len(stack) == 0 {
		return PDARule{}, 0, false
	}
	top := stack[len(stack)-1]
	if pos < len(input) {
		if rule, ok := p.Transitions[PDAKey{State: cur, Input: input[pos], Top: top}]; ok {
			return rule, 1, true
		}
	}
	rule, ok := p.Transitions[PDAKey{State: cur, Input: Epsilon, Top: top}]
	return rule, 0, ok
}

func (p *DPDA) accepting(cur State, stack []Symbol) bool {
	if p.AcceptMode == AcceptEmptyStack {
		return len(stack) == 0
	}
	return p.Final[cur]
}

// Accepts reports whether the DPDA accepts input. Run failures collapse to
// false; structural validation failures propagate.
func (p *DPDA) Accepts(input []Symbol) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	run, err := p.Execute(input)
	if err != nil {
		return false, nil
	}
	for run.Next() {
	}
	return run.Err() == nil, nil
}

// Copy returns a deep, independent clone of the description.
func (p *DPDA) Copy() *DPDA {
	transitions := make(map[PDAKey]PDARule, len(p.Transitions))
	for k, rule := range p.Transitions {
		transitions[k] = PDARule{Next: rule.Next, Push: slices.Clone(rule.Push)}
	}
	return &DPDA{
		States:             setutil.Clone(p.States),
		Alphabet:           setutil.Clone(p.Alphabet),
		StackAlphabet:      setutil.Clone(p.StackAlphabet),
		Transitions:        transitions,
		Initial:            p.Initial,
		InitialStackSymbol: p.InitialStackSymbol,
		Final:              setutil.Clone(p.Final),
		AcceptMode:         p.AcceptMode,
	}
}

func sortedPDAKeys(table map[PDAKey]PDARule) []PDAKey {
	keys := make([]PDAKey, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		if keys[i].Input != keys[j].Input {
			return keys[i].Input < keys[j].Input
		}
		return keys[i].Top < keys[j].Top
	})
	return keys
}
