package ports

import "errors"

// ErrUnavailable marks lookups that cannot succeed for the given input:
// unknown places, unroutable pairs, modes without coverage. Callers fall
// back to a not-available result instead of retrying.
var ErrUnavailable = errors.New("result unavailable")
