package bp

import "errors"

var (
	// ErrTopology is returned by NewFactorGraph when an edge id is missing,
	// out of range, or referenced more than once among variable or function
	// neighbor lists, or when a function's neighbor count doesn't match its
	// kind's arity.
	ErrTopology = errors.New("bp: invalid factor graph topology")

	// ErrPrecondition is returned by NewFactorGraph when a node's payload
	// doesn't satisfy its kind's precondition: a CST value array whose
	// length isn't n_runs, a LOOKUP table whose length isn't nc or that
	// isn't a bijection on 0..nc-1, or a variable prior whose shape doesn't
	// match its kind.
	ErrPrecondition = errors.New("bp: precondition violated")
)
