// Package fsm holds the per-user conversation store and the state machine
// engine driving multi-step dialogs. A workflow is an ordered step table;
// each step owns one state tag and one validator, and the last step triggers
// the workflow's finish callback. The session is cleared on every terminal
// path so a user is never left in a dangling conversation.
package fsm

// State identifies a single step of a dialog workflow.
type State string

// StateIdle indicates there is no active conversation with the user.
const StateIdle State = "idle"

// Session stores the current workflow position and accumulated field values
// for one user. Fields only ever hold values validated by steps of the
// workflow the session belongs to.
type Session struct {
	State  State             `json:"state"`
	Fields map[string]string `json:"fields"`
}

func newSession(state State) *Session {
	return &Session{State: state, Fields: make(map[string]string)}
}

func (s *Session) clone() *Session {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return &Session{State: s.State, Fields: fields}
}
