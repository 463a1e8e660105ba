// Package automata implements deterministic and non-deterministic finite
// automata (DFA/NFA), deterministic pushdown automata (DPDA), and
// deterministic Turing machines (DTM) with a shared contract for
// construction, validation, stepwise execution, conversion, and minimization.
//
// # Overview
//
// Every automaton variant is a plain description struct with exported fields
// (state set, alphabet(s), transition table, initial state, final states).
// Descriptions are inert data: engines never mutate them, and all working
// state lives inside a Run. The package separates description from execution:
//
// 1. **Description**: build the struct, then call Validate (or Diagnose)
// 2. **Execution**: Execute returns a lazy Run of configurations
//
// # Basic Usage
//
//	d := &automata.DFA{
//	    States:   automata.NewStateSet("even", "odd"),
//	    Alphabet: automata.NewSymbolSet("1"),
//	    Transitions: map[automata.State]map[automata.Symbol]automata.State{
//	        "even": {"1": "odd"},
//	        "odd":  {"1": "even"},
//	    },
//	    Initial: "even",
//	    Final:   automata.NewStateSet("odd"),
//	}
//
//	ok, err := d.Accepts(automata.Input("11"))
//
// # Stepwise Execution
//
// Execute returns a pull-based Run. The first configuration is the state of
// the machine before any input is consumed; each Next advances one step.
// Configurations are independent value snapshots: retaining one across steps
// is safe, the engine never aliases its working memory into them.
//
//	run, err := d.Execute(automata.Input("11"))
//	for run.Next() {
//	    fmt.Println(run.Configuration().State)
//	}
//	if err := run.Err(); err != nil { ... }
//
// Stopping early is safe and releases nothing; a Run holds no resources.
//
// # Conversion and Minimization
//
// NFA.ToDFA performs subset construction with epsilon closure; DFA.Minimize
// removes unreachable states and merges Myhill-Nerode-equivalent ones. Both
// return a brand-new validated description and leave their input untouched.
// Output state names are derived from sorted member lists, so conversion and
// minimization are deterministic across runs.
//
// # Error Handling
//
// All validation errors wrap sentinel errors (ErrInitialState,
// ErrInvalidSymbol, ErrDeterminismViolation, ...) that can be checked with
// errors.Is. Validate fails fast on the first violation in contract order;
// Diagnose reports every violation at once.
//
// # Thread Safety
//
// Descriptions are safe for concurrent reads once built. A Run is not safe
// for concurrent use; each goroutine should execute its own Run.
package automata
