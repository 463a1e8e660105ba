package automata

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// abNFA accepts strings that start and end with "a" and contain no
// consecutive "b"s.
func abNFA() *NFA {
	return &NFA{
		States:   NewStateSet("q0", "q1", "q2"),
		Alphabet: NewSymbolSet("a", "b"),
		Transitions: map[State]map[Symbol][]State{
			"q0": {"a": {"q1"}},
			"q1": {"a": {"q1"}, Epsilon: {"q2"}},
			"q2": {"b": {"q0"}},
		},
		Initial: "q0",
		Final:   NewStateSet("q1"),
	}
}

func TestNFAAccepts(t *testing.T) {
	n := abNFA()
	assert.NoError(t, n.Validate())

	tests := []struct {
		input string
		want  bool
	}{
		{"aba", true},
		{"abba", false},
		{"a", true},
		{"aa", true},
		{"ab", false},
		{"b", false},
		{"", false},
		{"ababa", true},
		{"abab", false},
	}
	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := n.Accepts(Input(tt.input))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNFAEpsilonClosure(t *testing.T) {
	n := abNFA()

	t.Run("follows epsilon transitions", func(t *testing.T) {
		got := n.EpsilonClosure(map[State]bool{"q1": true})
		assert.Equal(t, NewStateSet("q1", "q2"), got)
	})

	t.Run("no epsilon means identity", func(t *testing.T) {
		got := n.EpsilonClosure(map[State]bool{"q0": true})
		assert.Equal(t, NewStateSet("q0"), got)
	})

	t.Run("transitive chain settles at fixed point", func(t *testing.T) {
		chain := &NFA{
			States:   NewStateSet("a", "b", "c"),
			Alphabet: NewSymbolSet("x"),
			Transitions: map[State]map[Symbol][]State{
				"a": {Epsilon: {"b"}},
				"b": {Epsilon: {"c"}},
				"c": {Epsilon: {"a"}}, // cycle must not loop forever
			},
			Initial: "a",
			Final:   NewStateSet("c"),
		}
		got := chain.EpsilonClosure(map[State]bool{"a": true})
		assert.Equal(t, NewStateSet("a", "b", "c"), got)
	})
}

func TestNFAExecute(t *testing.T) {
	n := abNFA()

	t.Run("configurations are epsilon closures", func(t *testing.T) {
		run, err := n.Execute(Input("ab"))
		assert.NoError(t, err)

		var configs []NFAConfiguration
		for run.Next() {
			configs = append(configs, run.Configuration())
		}
		assert.Equal(t, []NFAConfiguration{
			{States: []State{"q0"}},
			{States: []State{"q1", "q2"}},
			{States: []State{"q0"}},
		}, configs)
		assert.True(t, errors.Is(run.Err(), ErrRejected))
	})

	t.Run("dead set does not end the run early", func(t *testing.T) {
		run, err := n.Execute(Input("ba"))
		assert.NoError(t, err)

		var configs []NFAConfiguration
		for run.Next() {
			configs = append(configs, run.Configuration())
		}
		// Both symbols are consumed even though the set dies on "b".
		assert.Equal(t, 3, len(configs))
		assert.Equal(t, 0, len(configs[1].States))
		assert.True(t, errors.Is(run.Err(), ErrRejected))
	})

	t.Run("undeclared input symbol fails before execution", func(t *testing.T) {
		_, err := n.Execute(Input("ac"))
		assert.True(t, errors.Is(err, ErrInvalidSymbol))
	})
}

func TestNFAValidate(t *testing.T) {
	t.Run("initial state not declared", func(t *testing.T) {
		n := abNFA()
		n.Initial = "q9"
		assert.True(t, errors.Is(n.Validate(), ErrInitialState))
	})

	t.Run("epsilon transition target must be declared", func(t *testing.T) {
		n := abNFA()
		n.Transitions["q1"][Epsilon] = []State{"q9"}
		assert.True(t, errors.Is(n.Validate(), ErrInvalidState))
	})

	t.Run("epsilon key itself is legal", func(t *testing.T) {
		assert.NoError(t, abNFA().Validate())
	})

	t.Run("partial rows are legal", func(t *testing.T) {
		// q0 has no "b" entry; NFAs need no totality.
		assert.NoError(t, abNFA().Validate())
	})
}

func TestNFACopy(t *testing.T) {
	n := abNFA()
	c := n.Copy()

	assert.Equal(t, n.States, c.States)
	assert.Equal(t, n.Transitions, c.Transitions)

	c.Transitions["q0"]["a"][0] = "q2"
	c.Transitions["q2"]["b"] = append(c.Transitions["q2"]["b"], "q1")
	assert.Equal(t, []State{"q1"}, n.Transitions["q0"]["a"])
	assert.Equal(t, []State{"q0"}, n.Transitions["q2"]["b"])
}
