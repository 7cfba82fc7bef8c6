package fsm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tajik-krasava/RPP/internal/logger"
)

// CheckFunc verifies a backend precondition after a step's input validated.
// Returning a PreconditionError terminates the workflow with its reply; any
// other error terminates it as a backend failure.
type CheckFunc func(ctx context.Context, fields map[string]string) error

// FinishFunc completes a workflow with the accumulated, normalized fields
// and returns the user-visible reply.
type FinishFunc func(ctx context.Context, userID int64, fields map[string]string) (string, error)

// Step is one dialog turn: it owns exactly one state tag and one validator.
type Step struct {
	State State
	// Field names the session key the validated value is stored under.
	Field string
	// Prompt is sent when the workflow enters this step.
	Prompt string
	// InvalidReply is re-issued when validation fails; state stays put.
	InvalidReply string
	Validate     ValidateFunc
	// Check is optional and runs after validation with the updated fields.
	Check CheckFunc
}

// Workflow is a strict linear chain of steps ending in one backend call.
type Workflow struct {
	Name   string
	Steps  []Step
	Finish FinishFunc
}

// Outcome kinds returned by Advance.
const (
	// OutcomeNext: input valid, dialog advanced to the next step.
	OutcomeNext = iota + 1
	// OutcomeInvalid: input rejected, state and fields untouched.
	OutcomeInvalid
	// OutcomeDone: terminal step reached or precondition failed; the
	// session has been cleared.
	OutcomeDone
)

// Outcome describes the result of one Advance call.
type Outcome struct {
	Kind  int
	Reply string
	// Workflow names the workflow the input belonged to.
	Workflow string
	// State is the session state after the call; empty on OutcomeDone.
	State State
}

type stepRef struct {
	workflow *Workflow
	index    int
}

// Engine routes raw input to the step matching the user's session state.
type Engine struct {
	store Store
	steps map[State]stepRef
}

// NewEngine constructs an engine over the given session store.
func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		steps: make(map[State]stepRef),
	}
}

// Register adds a workflow's steps to the routing table. State tags must be
// unique across all registered workflows.
func (e *Engine) Register(wf *Workflow) error {
	if wf == nil || len(wf.Steps) == 0 {
		return fmt.Errorf("fsm: workflow %q has no steps", nameOf(wf))
	}
	if wf.Finish == nil {
		return fmt.Errorf("fsm: workflow %q has no finish", wf.Name)
	}
	for i, step := range wf.Steps {
		if step.State == "" || step.State == StateIdle {
			return fmt.Errorf("fsm: workflow %q step %d has invalid state", wf.Name, i)
		}
		if step.Validate == nil {
			return fmt.Errorf("fsm: workflow %q state %s has no validator", wf.Name, step.State)
		}
		if _, taken := e.steps[step.State]; taken {
			return fmt.Errorf("fsm: state %s registered twice", step.State)
		}
		e.steps[step.State] = stepRef{workflow: wf, index: i}
	}
	return nil
}

// Start opens the workflow for the user, replacing any active session, and
// returns the first step's prompt.
func (e *Engine) Start(ctx context.Context, userID int64, wf *Workflow) (string, error) {
	first := wf.Steps[0]
	if err := e.store.Set(ctx, userID, newSession(first.State)); err != nil {
		return "", err
	}
	logger.FSM.Debug("workflow started",
		slog.String("event", "fsm.start"),
		slog.Int64("user_id", userID),
		slog.String("workflow", wf.Name),
		slog.String("state", string(first.State)),
	)
	return first.Prompt, nil
}

// InProgress reports whether the user has an active dialog.
func (e *Engine) InProgress(ctx context.Context, userID int64) bool {
	session, err := e.store.Get(ctx, userID)
	return err == nil && session != nil
}

// Abandon drops the user's session, if any. Issuing a new command while a
// dialog is active goes through here: the old session is discarded wholesale.
func (e *Engine) Abandon(ctx context.Context, userID int64) error {
	return e.store.Clear(ctx, userID)
}

// Advance feeds one raw input into the user's current step.
func (e *Engine) Advance(ctx context.Context, userID int64, raw string) (Outcome, error) {
	session, err := e.store.Get(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}
	if session == nil {
		return Outcome{}, ErrNoSession
	}

	ref, ok := e.steps[session.State]
	if !ok {
		// A state with no registered step cannot make progress; drop it.
		_ = e.store.Clear(ctx, userID)
		return Outcome{}, fmt.Errorf("fsm: unregistered state %s: %w", session.State, ErrNoSession)
	}
	step := ref.workflow.Steps[ref.index]

	value, err := step.Validate(raw)
	if err != nil {
		logger.FSM.Debug("input rejected",
			slog.String("event", "fsm.invalid"),
			slog.Int64("user_id", userID),
			slog.String("workflow", ref.workflow.Name),
			slog.String("state", string(session.State)),
			slog.String("err", err.Error()),
		)
		return Outcome{
			Kind:     OutcomeInvalid,
			Reply:    step.InvalidReply,
			Workflow: ref.workflow.Name,
			State:    session.State,
		}, nil
	}

	fields := session.clone().Fields
	if step.Field != "" {
		fields[step.Field] = value
	}

	if step.Check != nil {
		if err := step.Check(ctx, fields); err != nil {
			return e.terminate(ctx, userID, ref.workflow, err)
		}
	}

	if ref.index == len(ref.workflow.Steps)-1 {
		reply, err := ref.workflow.Finish(ctx, userID, fields)
		// The session is cleared no matter how the backend call went.
		if clearErr := e.store.Clear(ctx, userID); clearErr != nil && err == nil {
			err = clearErr
		}
		if err != nil {
			return Outcome{Kind: OutcomeDone, Workflow: ref.workflow.Name},
				fmt.Errorf("fsm: finish %s: %w", ref.workflow.Name, err)
		}
		logger.FSM.Debug("workflow finished",
			slog.String("event", "fsm.done"),
			slog.Int64("user_id", userID),
			slog.String("workflow", ref.workflow.Name),
		)
		return Outcome{Kind: OutcomeDone, Reply: reply, Workflow: ref.workflow.Name}, nil
	}

	next := ref.workflow.Steps[ref.index+1]
	if err := e.store.Set(ctx, userID, &Session{State: next.State, Fields: fields}); err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:     OutcomeNext,
		Reply:    next.Prompt,
		Workflow: ref.workflow.Name,
		State:    next.State,
	}, nil
}

func (e *Engine) terminate(ctx context.Context, userID int64, wf *Workflow, cause error) (Outcome, error) {
	if clearErr := e.store.Clear(ctx, userID); clearErr != nil {
		logger.FSM.Error("session clear failed",
			slog.String("event", "fsm.clear"),
			slog.Int64("user_id", userID),
			slog.String("err", clearErr.Error()),
		)
	}

	var pre *PreconditionError
	if errors.As(cause, &pre) {
		logger.FSM.Debug("workflow terminated by precondition",
			slog.String("event", "fsm.precondition"),
			slog.Int64("user_id", userID),
			slog.String("workflow", wf.Name),
		)
		return Outcome{Kind: OutcomeDone, Reply: pre.Reply, Workflow: wf.Name}, nil
	}
	return Outcome{Kind: OutcomeDone, Workflow: wf.Name}, fmt.Errorf("fsm: check %s: %w", wf.Name, cause)
}

func nameOf(wf *Workflow) string {
	if wf == nil {
		return "<nil>"
	}
	return wf.Name
}
