package facet

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps one of them.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrChainAccess    = errors.New("chain access failure")
	ErrResolution     = errors.New("resolution failure")
)

var (
	ErrInvalidTypeMarker    = fmt.Errorf("%w: invalid facet transaction type", ErrMalformedInput)
	ErrMalformedTransaction = fmt.Errorf("%w: malformed facet transaction", ErrMalformedInput)
	ErrUnresolvedL2Block    = fmt.Errorf("%w: unresolved facet block", ErrResolution)
)
