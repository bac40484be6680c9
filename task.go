package tempo

// Task is a handle to a unit of scheduled work. Every scheduling call in
// tempo returns one.
//
// Cancel marks the task completed and releases the underlying host
// primitive (timer, frame request). Cancelling a completed task is a no-op.
type Task interface {
	Completed() bool
	Cancel()
}

// taskState is the completion flag and release hook shared by the task
// kinds. Callbacks must consult done before doing visible work, since a
// host primitive may already have queued them when Cancel ran.
type taskState struct {
	done    bool
	release func()
}

func (s *taskState) Completed() bool { return s.done }

func (s *taskState) Cancel() {
	if s.done {
		return
	}
	s.done = true
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// finish marks the task completed because its work ran, not because it was
// cancelled.
// It reports false if the task was already done.
func (s *taskState) finish() bool {
	if s.done {
		return false
	}
	s.done = true
	s.release = nil
	return true
}
