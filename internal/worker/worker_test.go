package worker

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	w := New(Config{})

	if w.pollInterval != defaultPollInterval {
		t.Errorf("pollInterval = %v, want %v", w.pollInterval, defaultPollInterval)
	}
	if w.batchSize != defaultBatchSize {
		t.Errorf("batchSize = %d, want %d", w.batchSize, defaultBatchSize)
	}
	if w.logger == nil {
		t.Error("logger should default to slog.Default")
	}
}

func TestNew_Overrides(t *testing.T) {
	w := New(Config{
		PollInterval: 3 * time.Second,
		BatchSize:    5,
	})

	if w.pollInterval != 3*time.Second {
		t.Errorf("pollInterval = %v", w.pollInterval)
	}
	if w.batchSize != 5 {
		t.Errorf("batchSize = %d", w.batchSize)
	}
}

func TestWorker_IsStopped(t *testing.T) {
	w := New(Config{})
	if w.IsStopped() {
		t.Error("new worker should not be stopped")
	}

	// Stop без Start безопасен: горутины не запускались
	w.Stop()
	if !w.IsStopped() {
		t.Error("worker should report stopped")
	}
}
