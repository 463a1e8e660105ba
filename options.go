package automata

import "github.com/go-logr/logr"

// ExecOption configures a single Execute call.
type ExecOption func(*execConfig)

type execConfig struct {
	log       logr.Logger
	stepLimit int
}

// WithLogger sets the logger used to trace a run. Engines log one line per
// step at verbosity 1. The default logger discards everything.
var WithLogger = func(log logr.Logger) ExecOption {
	return func(c *execConfig) {
		c.log = log
	}
}

// WithStepLimit imposes a step budget on a run. When the budget is exhausted
// before the machine halts, the Run ends with ErrStepLimit. Zero means no
// limit. This is a caller-side guard for machines that may not halt (DPDA
// epsilon cycles, DTM loops); the engines themselves never detect looping.
var WithStepLimit = func(n int) ExecOption {
	return func(c *execConfig) {
		c.stepLimit = n
	}
}

func newExecConfig(opts ...ExecOption) *execConfig {
	cfg := &execConfig{
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
