package classifier

import "github.com/pkg/errors"

var (
	// ErrConfiguration marks dimensionality mismatches between strategies
	// and their declared input/output sizes, and qubit references outside
	// the classifier's allocation. Raised at build time, before any backend
	// call, never silently coerced.
	ErrConfiguration = errors.New("configuration mismatch")

	// ErrState marks out-of-order use of the classifier session: executing
	// before any circuit has been built, or testing without a weight vector.
	ErrState = errors.New("invalid classifier state")

	// ErrNumeric marks post-processing output outside the domain the
	// objective requires, e.g. a probability below 0 or above 1.
	ErrNumeric = errors.New("numeric domain violation")
)
