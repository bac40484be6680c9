package tempo

import "errors"

var (
	// ErrShutdown is passed to a DelayUntil continuation whose poll observed
	// a shut-down scheduler. The suspension is aborted, not resumed.
	ErrShutdown = errors.New("tempo: scheduler is shut down")

	// ErrEmptyChain is returned when building a chain with no transitions.
	ErrEmptyChain = errors.New("tempo: transition chain is empty")

	// ErrChainSealed is recorded on a builder used after its animator started
	// a session with it.
	ErrChainSealed = errors.New("tempo: transition chain is sealed by a running session")

	// ErrAnimatorRunning is recorded on a builder obtained from Invoke while
	// the animator had a session in flight.
	ErrAnimatorRunning = errors.New("tempo: animator is running")
)
