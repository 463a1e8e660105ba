package setutil

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSorted(t *testing.T) {
	set := map[string]bool{"b": true, "a": true, "c": true}
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(set))
	assert.Equal(t, []string{}, Sorted(map[string]bool{}))
}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]bool
		want string
	}{
		{
			name: "empty set",
			set:  map[string]bool{},
			want: "{}",
		},
		{
			name: "singleton",
			set:  map[string]bool{"q0": true},
			want: "{q0}",
		},
		{
			name: "members sorted",
			set:  map[string]bool{"q2": true, "q0": true, "q1": true},
			want: "{q0,q1,q2}",
		},
		{
			name: "separator inside a member is escaped",
			set:  map[string]bool{"a,b": true},
			want: `{a\,b}`,
		},
		{
			name: "backslash inside a member is escaped",
			set:  map[string]bool{`a\b`: true},
			want: `{a\\b}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.set))
		})
	}
}

func TestKeyCanonical(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "x": true}
	assert.Equal(t, Key(a), Key(b))
}

func TestKeyInjective(t *testing.T) {
	// Members may contain the separator; the two-member set {a, b} and
	// the singleton {"a,b"} must not share a key.
	two := map[string]bool{"a": true, "b": true}
	one := map[string]bool{"a,b": true}
	assert.NotEqual(t, Key(two), Key(one))

	// Same for escaped backslashes near a separator.
	left := map[string]bool{`a\`: true, "b": true}
	joined := map[string]bool{`a\,b`: true}
	assert.NotEqual(t, Key(left), Key(joined))
}

func TestIntersects(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	assert.True(t, Intersects(a, map[string]bool{"y": true}))
	assert.False(t, Intersects(a, map[string]bool{"z": true}))
	assert.False(t, Intersects(a, map[string]bool{}))
	assert.False(t, Intersects(map[string]bool{}, map[string]bool{}))
}

func TestClone(t *testing.T) {
	orig := map[string]bool{"a": true}
	c := Clone(orig)
	c["b"] = true
	assert.False(t, orig["b"])
}

func TestFromSlice(t *testing.T) {
	set := FromSlice([]string{"a", "b", "a"})
	assert.Equal(t, map[string]bool{"a": true, "b": true}, set)
}
