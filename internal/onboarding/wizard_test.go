package onboarding

import "testing"

// TestWizard_FullTraversal tests the happy path from welcome to complete
func TestWizard_FullTraversal(t *testing.T) {
	w := New()

	if w.Step != StepWelcome {
		t.Fatalf("Expected initial step welcome, got '%s'", w.Step)
	}

	w = w.Next()
	if w.Step != StepInterests {
		t.Fatalf("Expected interests after welcome, got '%s'", w.Step)
	}

	w = w.WithInterests([]string{"recycling", "energy"}).Next()
	if w.Step != StepActivities {
		t.Fatalf("Expected activities after interests, got '%s'", w.Step)
	}

	w = w.WithActivities([]string{"eco-cleanup"}).Next()
	if w.Step != StepComplete {
		t.Fatalf("Expected complete after activities, got '%s'", w.Step)
	}
	if !w.Done() {
		t.Error("Expected Done at the terminal step")
	}

	sel := w.Selections()
	if len(sel.Interests) != 2 || len(sel.Activities) != 1 {
		t.Errorf("Unexpected selections: %+v", sel)
	}
}

// TestWizard_InterestsGuard tests that leaving interests with no selection
// is a no-op
func TestWizard_InterestsGuard(t *testing.T) {
	w := New().Next() // at interests

	advanced := w.Next()
	if advanced.Step != StepInterests {
		t.Errorf("Expected guard to hold at interests, got '%s'", advanced.Step)
	}

	// One interest unlocks the transition
	advanced = w.WithInterests([]string{"nature"}).Next()
	if advanced.Step != StepActivities {
		t.Errorf("Expected activities with one interest, got '%s'", advanced.Step)
	}
}

// TestWizard_ActivitiesOptional tests that pushing through activities with
// no selection is a valid skip
func TestWizard_ActivitiesOptional(t *testing.T) {
	w := New().Next().WithInterests([]string{"water"}).Next()

	w = w.Next()
	if w.Step != StepComplete {
		t.Errorf("Expected complete with no activities selected, got '%s'", w.Step)
	}
	if len(w.Selections().Activities) != 0 {
		t.Error("Expected empty activity selection")
	}
}

// TestWizard_BackRetainsSelections tests non-destructive backward navigation
func TestWizard_BackRetainsSelections(t *testing.T) {
	w := New().Next().WithInterests([]string{"transport", "air"}).Next().WithActivities([]string{"bike-tour"})

	back := w.Back()
	if back.Step != StepInterests {
		t.Fatalf("Expected interests after back, got '%s'", back.Step)
	}
	if len(back.Interests) != 2 {
		t.Error("Expected interests retained through back")
	}
	if len(back.Activities) != 1 {
		t.Error("Expected activities retained through back")
	}

	// Forward again finds everything intact
	forward := back.Next()
	if forward.Step != StepActivities {
		t.Fatalf("Expected activities after forward, got '%s'", forward.Step)
	}
	if len(forward.Activities) != 1 {
		t.Error("Expected activity selection intact after round trip")
	}
}

// TestWizard_BackFromWelcome tests that back at the first step is a no-op
func TestWizard_BackFromWelcome(t *testing.T) {
	w := New().Back()
	if w.Step != StepWelcome {
		t.Errorf("Expected welcome, got '%s'", w.Step)
	}
}

// TestWizard_CompleteTerminal tests that a finished wizard stays finished
func TestWizard_CompleteTerminal(t *testing.T) {
	w := New().Next().WithInterests([]string{"food"}).Next().Next()

	if !w.Done() {
		t.Fatal("Expected wizard to be complete")
	}
	if w.Next().Step != StepComplete {
		t.Error("Expected Next at complete to be a no-op")
	}
}

// TestWizard_ValueSemantics tests that transitions never mutate the receiver
func TestWizard_ValueSemantics(t *testing.T) {
	w := New().Next().WithInterests([]string{"garden"})

	_ = w.Next()
	if w.Step != StepInterests {
		t.Errorf("Expected receiver unchanged, got '%s'", w.Step)
	}

	ids := []string{"a", "b"}
	w2 := w.WithInterests(ids)
	ids[0] = "mutated"
	if w2.Interests[0] != "a" {
		t.Error("Expected WithInterests to copy the input slice")
	}
}
