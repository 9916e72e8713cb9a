package state

import "github.com/querygate/querygate/internal/state"

// State exposes the internal daemon state for use with API handlers.
type State = state.State
