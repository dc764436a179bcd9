package persist

import "errors"

// Sentinel errors that persist can produce.
var (
	ErrNameUnresolved     = errors.New("persist: save target has no resolvable name")
	ErrSerialization      = errors.New("persist: JSON encode/decode failed")
	ErrIO                 = errors.New("persist: file operation failed")
	ErrCorruptCurrentState = errors.New("persist: current_state has an unrecognized type")
)
