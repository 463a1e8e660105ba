package automata

import (
	"strconv"
	"strings"

	"github.com/formalang/automata/internal/setutil"
)

// Minimize returns the minimal DFA accepting the same language as d, built
// in two phases: unreachable states are pruned by breadth-first traversal
// from the initial state, then the survivors are partitioned by Moore
// refinement until a fixed point. Two states end up in the same block iff no
// input suffix distinguishes their acceptance behavior.
//
// Output states are named by the sorted member list of their block, so the
// result is reproducible across runs. The input DFA is left untouched; the
// returned DFA is validated.
func (d *DFA) Minimize() (*DFA, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	reachable := d.reachable()
	states := setutil.Sorted(reachable)
	symbols := setutil.Sorted(d.Alphabet)

	// Initial partition: final vs non-final. A side that is empty simply
	// has no states carrying its block index.
	block := make(map[State]int, len(states))
	blocks := 1
	for _, s := range states {
		if d.Final[s] {
			block[s] = 1
			blocks = 2
		}
	}
	if blocks == 2 && len(block) == len(states) {
		// No non-final reachable state: the non-final block is empty.
		blocks = 1
	}

	// Refine: split any block whose members disagree on the tuple of
	// target blocks per symbol. Missing entries (allowed on final states)
	// are part of the signature, so members of one block agree on
	// presence as well as destination.
	for {
		next := make(map[State]int, len(states))
		index := make(map[string]int)
		for _, s := range states {
			var sig strings.Builder
			sig.WriteString(strconv.Itoa(block[s]))
			for _, sym := range symbols {
				sig.WriteByte('|')
				if to, ok := d.Transitions[s][sym]; ok {
					sig.WriteString(strconv.Itoa(block[to]))
				} else {
					sig.WriteByte('-')
				}
			}
			key := sig.String()
			idx, ok := index[key]
			if !ok {
				idx = len(index)
				index[key] = idx
			}
			next[s] = idx
		}
		if len(index) == blocks {
			break
		}
		block = next
		blocks = len(index)
	}

	// Collect block membership.
	members := make(map[int]map[State]bool, blocks)
	for _, s := range states {
		if members[block[s]] == nil {
			members[block[s]] = make(map[State]bool)
		}
		members[block[s]][s] = true
	}
	name := make(map[int]State, blocks)
	for idx, set := range members {
		name[idx] = State(setutil.Key(set))
	}

	min := &DFA{
		States:      make(map[State]bool, blocks),
		Alphabet:    setutil.Clone(d.Alphabet),
		Transitions: make(map[State]map[Symbol]State, blocks),
		Initial:     name[block[d.Initial]],
		Final:       make(map[State]bool),
	}

	for idx, set := range members {
		from := name[idx]
		min.States[from] = true

		// All members agree on acceptance and on transitions, so any
		// representative works; take the smallest for determinism.
		rep := setutil.Sorted(set)[0]
		if d.Final[rep] {
			min.Final[from] = true
		}
		row := make(map[Symbol]State)
		for _, sym := range symbols {
			if to, ok := d.Transitions[rep][sym]; ok {
				row[sym] = name[block[to]]
			}
		}
		min.Transitions[from] = row
	}

	return min, nil
}
