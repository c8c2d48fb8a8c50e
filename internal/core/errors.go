package core

import "errors"

// ErrCapacityExceeded marks a transient provider refusal that is worth retrying.
var ErrCapacityExceeded = errors.New("provider capacity exceeded")
