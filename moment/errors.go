package moment

import "errors"

var (
	// ErrInvalidParams is returned by New when ns or d is not positive.
	ErrInvalidParams = errors.New("moment: ns and d must be positive")

	// ErrInvalidLabel is returned by Update when a label is outside {0,1}.
	ErrInvalidLabel = errors.New("moment: label must be 0 or 1")

	// ErrShapeMismatch is returned by Update when traces and labels disagree
	// in row count, or a trace row's length does not equal ns.
	ErrShapeMismatch = errors.New("moment: traces shape does not match ns")
)
