package domain

import (
	"testing"
	"time"
)

func TestRun_Transitions(t *testing.T) {
	run := &Run{Status: RunStatusPending}

	run.MarkRunning()
	if run.Status != RunStatusRunning || run.StartedAt == nil {
		t.Errorf("after MarkRunning: %+v", run)
	}

	run.MarkSucceeded(&ExecutionResult{Success: true})
	if run.Status != RunStatusSucceeded || run.FinishedAt == nil || run.Result == nil {
		t.Errorf("after MarkSucceeded: %+v", run)
	}

	failed := &Run{Status: RunStatusRunning}
	failed.MarkFailed("engine unavailable")
	if failed.Status != RunStatusFailed || failed.Error != "engine unavailable" {
		t.Errorf("after MarkFailed: %+v", failed)
	}
}

func TestRun_Duration(t *testing.T) {
	run := &Run{}
	if run.Duration() != 0 {
		t.Error("unfinished run should have zero duration")
	}

	start := time.Now()
	finish := start.Add(3 * time.Second)
	run.StartedAt = &start
	run.FinishedAt = &finish
	if run.Duration() != 3*time.Second {
		t.Errorf("duration = %v", run.Duration())
	}
}

func TestRunStatus_IsTerminal(t *testing.T) {
	if RunStatusPending.IsTerminal() || RunStatusRunning.IsTerminal() {
		t.Error("pending and running are not terminal")
	}
	if !RunStatusSucceeded.IsTerminal() || !RunStatusFailed.IsTerminal() {
		t.Error("succeeded and failed are terminal")
	}
}
