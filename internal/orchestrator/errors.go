package orchestrator

import "errors"

// ErrInvalidState is returned when a load succeeded but the decoded
// structure is malformed for the operation attempted — e.g. a
// WorkspaceState with no window_states passed to RestoreWorkspace.
var ErrInvalidState = errors.New("orchestrator: invalid state")
