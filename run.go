package automata

// Run is a lazy, finite, non-restartable sequence of configurations produced
// by stepwise execution. The zero-th configuration is the machine before any
// input is consumed.
//
// A Run computes each configuration on demand when Next is called; consuming
// a partial run (stopping early) is safe and leaves nothing to release.
type Run[C any] struct {
	// step produces the next configuration. ok=false ends the run; a
	// non-nil error also ends the run and is surfaced via Err.
	step func() (C, bool, error)

	current C
	err     error
	done    bool
}

func newRun[C any](step func() (C, bool, error)) *Run[C] {
	return &Run[C]{step: step}
}

// Next advances the run to the next configuration.
// Returns true if a configuration is available, false if the run is over.
func (r *Run[C]) Next() bool {
	if r.done {
		return false
	}
	c, ok, err := r.step()
	if err != nil {
		r.err = err
		r.done = true
		return false
	}
	if !ok {
		r.done = true
		return false
	}
	r.current = c
	return true
}

// Configuration returns the current configuration.
// Only valid after Next() returns true. The returned value is an independent
// snapshot; it never aliases the engine's working memory.
func (r *Run[C]) Configuration() C {
	return r.current
}

// Err returns the error that ended the run, if any. ErrRejected means the
// machine consumed all input and halted in a non-accepting configuration.
func (r *Run[C]) Err() error {
	return r.err
}

// Collect drains the run and returns all remaining configurations together
// with the run's final error.
func (r *Run[C]) Collect() ([]C, error) {
	var out []C
	for r.Next() {
		out = append(out, r.Configuration())
	}
	return out, r.Err()
}
