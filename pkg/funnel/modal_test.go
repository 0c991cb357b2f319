package funnel

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-leadflow/pkg/flow"
	"github.com/goliatone/go-leadflow/pkg/services"
	"github.com/goliatone/go-leadflow/pkg/track"
)

func TestHandleModalClose_OutsideModalFlowIsANoOp(t *testing.T) {
	ctx := context.Background()
	memory := track.NewMemory()
	fn, _ := newTestFunnel(t, WithTracker(memory))

	closed, err := fn.Modal().HandleModalClose(ctx)
	if err != nil {
		t.Fatalf("HandleModalClose: %v", err)
	}
	if closed {
		t.Fatal("nothing was open, so nothing should report closed")
	}
	if got := fn.State(); got != flow.StateDefault {
		t.Fatalf("state moved to %q", got)
	}
	if n := len(memory.Named(flow.InvalidTransitionEvent)); n != 0 {
		t.Fatalf("close outside the modal flow recorded %d diagnostics, want 0", n)
	}
}

func TestHandleModalClose_RefusedWhileContactProcessing(t *testing.T) {
	ctx := context.Background()
	machine := flow.NewMachine()
	machine.Transition(flow.EventStartModalFlow)
	machine.Transition(flow.EventSubmitAddress)
	machine.Transition(flow.EventSuccess)
	machine.Transition(flow.EventSubmitContact)

	confirmCalls := 0
	fn, _ := newTestFunnel(t, WithMachine(machine), WithConfirm(func(context.Context, string) (bool, error) {
		confirmCalls++
		return true, nil
	}))

	closed, err := fn.Modal().HandleModalClose(ctx)
	if !errors.Is(err, ErrExitRefused) {
		t.Fatalf("expected ErrExitRefused, got %v", err)
	}
	if closed {
		t.Fatal("modal must not close during contact processing")
	}
	if confirmCalls != 0 {
		t.Fatal("confirmation must not run during contact processing")
	}
	if got := fn.State(); got != flow.StateContactFormProcessing {
		t.Fatalf("state moved to %q", got)
	}
}

func TestHandleModalClose_ConfirmsOnlyWithContactInput(t *testing.T) {
	ctx := context.Background()

	t.Run("empty form closes without confirmation", func(t *testing.T) {
		confirmCalls := 0
		fn, _ := newTestFunnel(t, WithConfirm(func(context.Context, string) (bool, error) {
			confirmCalls++
			return false, nil
		}))
		walkToContactForm(t, ctx, fn)

		closed, err := fn.Modal().HandleModalClose(ctx)
		if err != nil || !closed {
			t.Fatalf("HandleModalClose = (%v, %v), want (true, nil)", closed, err)
		}
		if confirmCalls != 0 {
			t.Fatal("empty form should not prompt for confirmation")
		}
		if got := fn.State(); got != flow.StateDefault {
			t.Fatalf("state = %q, want default", got)
		}
	})

	t.Run("declined confirmation keeps the flow in place", func(t *testing.T) {
		fn, _ := newTestFunnel(t, WithConfirm(func(context.Context, string) (bool, error) {
			return false, nil
		}))
		walkToContactForm(t, ctx, fn)
		fn.Contact().SetFirstName("Dana")

		closed, err := fn.Modal().HandleModalClose(ctx)
		if err != nil {
			t.Fatalf("HandleModalClose: %v", err)
		}
		if closed {
			t.Fatal("declined confirmation must not close the modal")
		}
		if got := fn.State(); got != flow.StateContactForm {
			t.Fatalf("state = %q, want contact form", got)
		}
	})

	t.Run("approved confirmation closes", func(t *testing.T) {
		fn, _ := newTestFunnel(t, WithConfirm(func(context.Context, string) (bool, error) {
			return true, nil
		}))
		walkToContactForm(t, ctx, fn)
		fn.Contact().SetFirstName("Dana")

		closed, err := fn.Modal().HandleModalClose(ctx)
		if err != nil || !closed {
			t.Fatalf("HandleModalClose = (%v, %v), want (true, nil)", closed, err)
		}
		if got := fn.State(); got != flow.StateDefault {
			t.Fatalf("state = %q, want default", got)
		}
	})
}

func TestHandleModalClose_ConfirmErrorPropagates(t *testing.T) {
	ctx := context.Background()
	confirmErr := errors.New("terminal gone")
	fn, _ := newTestFunnel(t, WithConfirm(func(context.Context, string) (bool, error) {
		return false, confirmErr
	}))
	walkToContactForm(t, ctx, fn)
	fn.Contact().SetFirstName("Dana")

	closed, err := fn.Modal().HandleModalClose(ctx)
	if !errors.Is(err, confirmErr) {
		t.Fatalf("expected confirm error, got %v", err)
	}
	if closed {
		t.Fatal("modal must not close when confirmation errors")
	}
}

func TestHandleModalClose_NoConfirmationFromContactError(t *testing.T) {
	ctx := context.Background()
	confirmCalls := 0

	// Drive to the contact error state through a failing lead call.
	fn, svc := newTestFunnel(t, WithConfirm(func(context.Context, string) (bool, error) {
		confirmCalls++
		return false, nil
	}))
	svc.leadFn = func(context.Context, services.Lead) error {
		return errors.New("503")
	}
	walkToContactForm(t, ctx, fn)
	fn.Contact().SetFirstName("Dana")
	if err := fn.Contact().Submit(ctx); err == nil {
		t.Fatal("expected lead failure")
	}
	if got := fn.State(); got != flow.StateContactFormError {
		t.Fatalf("setup ended in %q", got)
	}

	closed, err := fn.Modal().HandleModalClose(ctx)
	if err != nil || !closed {
		t.Fatalf("HandleModalClose = (%v, %v), want (true, nil)", closed, err)
	}
	if confirmCalls != 0 {
		t.Fatal("close from the error state should not prompt for confirmation")
	}
}
