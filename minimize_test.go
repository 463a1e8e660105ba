package automata

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMinimize(t *testing.T) {
	// Accepts strings ending in "1". s1 and s2 are behaviorally equivalent,
	// s3 is unreachable.
	d := &DFA{
		States:   NewStateSet("s0", "s1", "s2", "s3"),
		Alphabet: NewSymbolSet("0", "1"),
		Transitions: map[State]map[Symbol]State{
			"s0": {"0": "s0", "1": "s1"},
			"s1": {"0": "s0", "1": "s2"},
			"s2": {"0": "s0", "1": "s1"},
			"s3": {"0": "s3", "1": "s3"},
		},
		Initial: "s0",
		Final:   NewStateSet("s1", "s2"),
	}

	min, err := d.Minimize()
	assert.NoError(t, err)

	t.Run("result validates", func(t *testing.T) {
		assert.NoError(t, min.Validate())
	})

	t.Run("unreachable states pruned, equivalent states merged", func(t *testing.T) {
		assert.Equal(t, 2, len(min.States))
		assert.True(t, min.States["{s1,s2}"])
		assert.Equal(t, State("{s0}"), min.Initial)
		assert.True(t, min.Final["{s1,s2}"])
	})

	t.Run("language preserved", func(t *testing.T) {
		for _, input := range allInputs([]Symbol{"0", "1"}, 6) {
			want, err := d.Accepts(input)
			assert.NoError(t, err)
			got, err := min.Accepts(input)
			assert.NoError(t, err)
			if want != got {
				t.Fatalf("disagree on %q: original=%v minimized=%v", input, want, got)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		again, err := min.Minimize()
		assert.NoError(t, err)
		assert.Equal(t, len(min.States), len(again.States))
	})

	t.Run("input DFA untouched", func(t *testing.T) {
		assert.Equal(t, 4, len(d.States))
		assert.Equal(t, State("s1"), d.Transitions["s0"]["1"])
	})
}

func TestMinimizeMergesNonObvious(t *testing.T) {
	// oddOnesDFA's q0 and q2 agree on every suffix even though only q1 is
	// final; Moore refinement must merge them.
	min, err := oddOnesDFA().Minimize()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(min.States))
	assert.True(t, min.States["{q0,q2}"])
	assert.True(t, min.Final["{q1}"])

	for _, input := range allInputs([]Symbol{"0", "1"}, 6) {
		want, err := oddOnesDFA().Accepts(input)
		assert.NoError(t, err)
		got, err := min.Accepts(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMinimizeEdgeCases(t *testing.T) {
	t.Run("no final states", func(t *testing.T) {
		d := &DFA{
			States:   NewStateSet("a", "b"),
			Alphabet: NewSymbolSet("x"),
			Transitions: map[State]map[Symbol]State{
				"a": {"x": "b"},
				"b": {"x": "a"},
			},
			Initial: "a",
			Final:   NewStateSet(),
		}
		min, err := d.Minimize()
		assert.NoError(t, err)
		assert.Equal(t, 1, len(min.States))
		assert.Equal(t, 0, len(min.Final))
	})

	t.Run("all states final", func(t *testing.T) {
		d := &DFA{
			States:   NewStateSet("a", "b"),
			Alphabet: NewSymbolSet("x"),
			Transitions: map[State]map[Symbol]State{
				"a": {"x": "b"},
				"b": {"x": "a"},
			},
			Initial: "a",
			Final:   NewStateSet("a", "b"),
		}
		min, err := d.Minimize()
		assert.NoError(t, err)
		assert.Equal(t, 1, len(min.States))
		assert.True(t, min.Final[min.Initial])
	})

	t.Run("already minimal", func(t *testing.T) {
		d := oddOnesDFA()
		min, err := d.Minimize()
		assert.NoError(t, err)
		again, err := min.Minimize()
		assert.NoError(t, err)
		assert.Equal(t, len(min.States), len(again.States))
	})

	t.Run("invalid input propagates", func(t *testing.T) {
		d := oddOnesDFA()
		d.Initial = "nope"
		_, err := d.Minimize()
		assert.Error(t, err)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		a, err := oddOnesDFA().Minimize()
		assert.NoError(t, err)
		b, err := oddOnesDFA().Minimize()
		assert.NoError(t, err)
		assert.Equal(t, a.States, b.States)
		assert.Equal(t, a.Transitions, b.Transitions)
	})
}

func TestMinimizeSeparatorInStateNames(t *testing.T) {
	// The merged block {a, b} and the block of the state literally named
	// "a,b" must come out as two distinct states.
	d := &DFA{
		States:   NewStateSet("p", "a", "b", "a,b"),
		Alphabet: NewSymbolSet("x", "y", "z"),
		Transitions: map[State]map[Symbol]State{
			"p":   {"x": "a", "y": "b", "z": "a,b"},
			"a":   {"x": "p", "y": "p", "z": "p"},
			"b":   {"x": "p", "y": "p", "z": "p"},
			"a,b": {"x": "a,b", "y": "a,b", "z": "a,b"},
		},
		Initial: "p",
		Final:   NewStateSet("a,b"),
	}
	assert.NoError(t, d.Validate())

	min, err := d.Minimize()
	assert.NoError(t, err)
	assert.NoError(t, min.Validate())

	assert.Equal(t, 3, len(min.States))
	assert.True(t, min.States[`{a,b}`])
	assert.True(t, min.States[`{a\,b}`])
	assert.True(t, min.Final[`{a\,b}`])
	assert.False(t, min.Final[`{a,b}`])

	for _, input := range allInputs([]Symbol{"x", "y", "z"}, 4) {
		want, err := d.Accepts(input)
		assert.NoError(t, err)
		got, err := min.Accepts(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMinimizeAfterSubsetConstruction(t *testing.T) {
	// The full pipeline: NFA -> DFA -> minimal DFA.
	n := abNFA()
	d, err := n.ToDFA()
	assert.NoError(t, err)
	min, err := d.Minimize()
	assert.NoError(t, err)

	assert.True(t, len(min.States) <= len(d.States))
	for _, input := range allInputs([]Symbol{"a", "b"}, 6) {
		want, err := n.Accepts(input)
		assert.NoError(t, err)
		got, err := min.Accepts(input)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
