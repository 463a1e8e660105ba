package automata

import "github.com/formalang/automata/internal/setutil"

// EpsilonClosure returns the smallest superset of from that is closed under
// epsilon transitions: if q is in the set and q has an epsilon transition to
// r, then r is in the set. Computed as a worklist fixed point; no state is
// revisited once settled.
func (n *NFA) EpsilonClosure(from map[State]bool) map[State]bool {
	closure := setutil.Clone(from)
	queue := setutil.Sorted(from)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, to := range n.Transitions[cur][Epsilon] {
			if !closure[to] {
				closure[to] = true
				queue = append(queue, to)
			}
		}
	}
	return closure
}

// ToDFA converts the NFA into a language-equivalent DFA via subset
// construction. Each reachable subset of NFA states becomes one DFA state,
// named by its sorted member list, so equal subsets are interned to the
// identical state and the output is deterministic across runs. The input NFA
// is left untouched; the returned DFA is validated.
//
// Termination is bounded by the number of distinct reachable subsets, at
// most 2^|States|. The empty subset, when reachable, becomes an ordinary
// trap state with self-loops on every symbol, keeping the result total.
func (n *NFA) ToDFA() (*DFA, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	d := &DFA{
		States:      make(map[State]bool),
		Alphabet:    setutil.Clone(n.Alphabet),
		Transitions: make(map[State]map[Symbol]State),
		Final:       make(map[State]bool),
	}

	symbols := setutil.Sorted(n.Alphabet)
	start := n.EpsilonClosure(map[State]bool{n.Initial: true})

	// Interning table: canonical subset key -> DFA state.
	intern := map[string]State{setutil.Key(start): State(setutil.Key(start))}
	d.Initial = intern[setutil.Key(start)]
	d.States[d.Initial] = true
	if setutil.Intersects(start, n.Final) {
		d.Final[d.Initial] = true
	}

	queue := []map[State]bool{start}
	for len(queue) > 0 {
		members := queue[0]
		queue = queue[1:]
		from := intern[setutil.Key(members)]
		row := make(map[Symbol]State, len(symbols))

		for _, sym := range symbols {
			target := n.EpsilonClosure(n.move(members, sym))
			key := setutil.Key(target)
			to, seen := intern[key]
			if !seen {
				to = State(key)
				intern[key] = to
				d.States[to] = true
				if setutil.Intersects(target, n.Final) {
					d.Final[to] = true
				}
				queue = append(queue, target)
			}
			row[sym] = to
		}
		d.Transitions[from] = row
	}

	return d, nil
}
