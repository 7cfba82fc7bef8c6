package fsm

import "errors"

// ErrNoSession is returned by Advance when the user has no active dialog.
var ErrNoSession = errors.New("fsm: no active session")

// PreconditionError reports a backend-confirmed conflict (already exists /
// not found) that re-entering the same input cannot fix. The engine
// terminates the workflow and clears the session instead of re-prompting.
type PreconditionError struct {
	Reply string
}

func (e *PreconditionError) Error() string {
	return "fsm: precondition failed: " + e.Reply
}

// Precondition builds a PreconditionError carrying the user-visible reply.
func Precondition(reply string) error {
	return &PreconditionError{Reply: reply}
}
