package fsm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func testWorkflow(finish FinishFunc, check CheckFunc) *Workflow {
	return &Workflow{
		Name: "add",
		Steps: []Step{
			{
				State:        "add-name",
				Field:        "name",
				Prompt:       "enter name",
				InvalidReply: "bad name",
				Validate:     CurrencyName,
				Check:        check,
			},
			{
				State:        "add-rate",
				Field:        "rate",
				Prompt:       "enter rate",
				InvalidReply: "bad rate",
				Validate:     PositiveDecimal,
			},
		},
		Finish: finish,
	}
}

func newTestEngine(t *testing.T, wf *Workflow) *Engine {
	t.Helper()
	engine := NewEngine(NewMemoryStore())
	if err := engine.Register(wf); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return engine
}

func TestEngineHappyPath(t *testing.T) {
	ctx := context.Background()

	var gotFields map[string]string
	wf := testWorkflow(func(_ context.Context, _ int64, fields map[string]string) (string, error) {
		gotFields = fields
		return "done", nil
	}, nil)
	engine := newTestEngine(t, wf)

	prompt, err := engine.Start(ctx, 1, wf)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if prompt != "enter name" {
		t.Fatalf("Start prompt = %q", prompt)
	}

	out, err := engine.Advance(ctx, 1, "usd")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if out.Kind != OutcomeNext || out.Reply != "enter rate" || out.State != "add-rate" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	out, err = engine.Advance(ctx, 1, "90,5")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if out.Kind != OutcomeDone || out.Reply != "done" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	if gotFields["name"] != "USD" || gotFields["rate"] != "90.5" {
		t.Fatalf("finish fields = %+v", gotFields)
	}
	if engine.InProgress(ctx, 1) {
		t.Fatal("session survived a finished workflow")
	}
}

func TestEngineInvalidInputKeepsState(t *testing.T) {
	ctx := context.Background()
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "done", nil
	}, nil)
	engine := newTestEngine(t, wf)

	if _, err := engine.Start(ctx, 1, wf); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := engine.Advance(ctx, 1, "usd"); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	out, err := engine.Advance(ctx, 1, "not a number")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if out.Kind != OutcomeInvalid || out.Reply != "bad rate" || out.State != "add-rate" {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	// The step still accepts a corrected value.
	out, err = engine.Advance(ctx, 1, "2")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if out.Kind != OutcomeDone {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestEnginePreconditionTerminates(t *testing.T) {
	ctx := context.Background()
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		t.Fatal("finish must not run after a failed precondition")
		return "", nil
	}, func(context.Context, map[string]string) error {
		return Precondition("already there")
	})
	engine := newTestEngine(t, wf)

	if _, err := engine.Start(ctx, 1, wf); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out, err := engine.Advance(ctx, 1, "usd")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if out.Kind != OutcomeDone || out.Reply != "already there" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if engine.InProgress(ctx, 1) {
		t.Fatal("session survived a precondition failure")
	}
}

func TestEngineCheckFailureClearsSession(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend down")
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "done", nil
	}, func(context.Context, map[string]string) error {
		return boom
	})
	engine := newTestEngine(t, wf)

	if _, err := engine.Start(ctx, 1, wf); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out, err := engine.Advance(ctx, 1, "usd")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped check error, got %v", err)
	}
	if out.Kind != OutcomeDone {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if engine.InProgress(ctx, 1) {
		t.Fatal("session survived a failed check")
	}
}

func TestEngineFinishErrorClearsSession(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("insert failed")
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "", boom
	}, nil)
	engine := newTestEngine(t, wf)

	if _, err := engine.Start(ctx, 1, wf); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := engine.Advance(ctx, 1, "usd"); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	_, err := engine.Advance(ctx, 1, "2")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped finish error, got %v", err)
	}
	if engine.InProgress(ctx, 1) {
		t.Fatal("session survived a failed finish")
	}
}

func TestEngineAdvanceWithoutSession(t *testing.T) {
	ctx := context.Background()
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "done", nil
	}, nil)
	engine := newTestEngine(t, wf)

	if _, err := engine.Advance(ctx, 1, "usd"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestEngineStartReplacesSession(t *testing.T) {
	ctx := context.Background()

	second := &Workflow{
		Name: "other",
		Steps: []Step{
			{
				State:        "other-value",
				Field:        "value",
				Prompt:       "enter value",
				InvalidReply: "bad value",
				Validate:     Decimal,
			},
		},
		Finish: func(_ context.Context, _ int64, fields map[string]string) (string, error) {
			return fmt.Sprintf("got %s", fields["value"]), nil
		},
	}
	first := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "done", nil
	}, nil)

	engine := newTestEngine(t, first)
	if err := engine.Register(second); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := engine.Start(ctx, 1, first); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := engine.Advance(ctx, 1, "usd"); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	// Opening another dialog mid-way discards the first wholesale.
	if _, err := engine.Start(ctx, 1, second); err != nil {
		t.Fatalf("Start: %v", err)
	}
	out, err := engine.Advance(ctx, 1, "5")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if out.Kind != OutcomeDone || out.Reply != "got 5" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestEngineRegisterRejectsDuplicateState(t *testing.T) {
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "done", nil
	}, nil)
	engine := newTestEngine(t, wf)

	dup := &Workflow{
		Name: "dup",
		Steps: []Step{
			{State: "add-name", Field: "x", Validate: Decimal},
		},
		Finish: func(context.Context, int64, map[string]string) (string, error) {
			return "", nil
		},
	}
	if err := engine.Register(dup); err == nil {
		t.Fatal("expected duplicate-state registration to fail")
	}
}

func TestEngineAbandon(t *testing.T) {
	ctx := context.Background()
	wf := testWorkflow(func(context.Context, int64, map[string]string) (string, error) {
		return "done", nil
	}, nil)
	engine := newTestEngine(t, wf)

	if _, err := engine.Start(ctx, 1, wf); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := engine.Abandon(ctx, 1); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if engine.InProgress(ctx, 1) {
		t.Fatal("session survived Abandon")
	}
}
