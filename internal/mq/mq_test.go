package mq

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/shaiso/Kadr/internal/domain"
)

// Payload приходит из JSON распарсенным в map — ParsePayload
// восстанавливает типизированную структуру.
func TestParsePayload_RunPending(t *testing.T) {
	runID := uuid.New()

	raw, err := json.Marshal(Message{
		ID:      uuid.NewString(),
		Type:    MessageTypeRunPending,
		Payload: RunPendingPayload{RunID: runID},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	payload, err := ParsePayload[RunPendingPayload](&msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.RunID != runID {
		t.Errorf("run_id = %s, want %s", payload.RunID, runID)
	}
}

func TestParsePayload_RunCompleted(t *testing.T) {
	runID := uuid.New()

	msg := Message{
		Type: MessageTypeRunCompleted,
		Payload: map[string]any{
			"run_id": runID.String(),
			"status": string(domain.RunStatusFailed),
			"error":  "engine unavailable",
		},
	}

	payload, err := ParsePayload[RunCompletedPayload](&msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.RunID != runID {
		t.Errorf("run_id = %s", payload.RunID)
	}
	if payload.Status != domain.RunStatusFailed {
		t.Errorf("status = %s", payload.Status)
	}
	if payload.Error != "engine unavailable" {
		t.Errorf("error = %q", payload.Error)
	}
}

func TestParsePayload_WrongShape(t *testing.T) {
	msg := Message{
		Type:    MessageTypeRunPending,
		Payload: map[string]any{"run_id": "not-a-uuid"},
	}

	if _, err := ParsePayload[RunPendingPayload](&msg); err == nil {
		t.Error("expected error for malformed uuid")
	}
}
