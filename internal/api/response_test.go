package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaiso/Kadr/internal/repo"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"name": "demo"})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp DataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["name"] != "demo" {
		t.Errorf("data = %v", resp.Data)
	}
}

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "invalid pipeline id")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != ErrCodeBadRequest {
		t.Errorf("code = %s", resp.Error.Code)
	}
	if resp.Error.Message != "invalid pipeline id" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestHandleRepoError(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{repo.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("pipeline: %w", repo.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{repo.ErrAlreadyExists, http.StatusConflict, ErrCodeConflict},
		{repo.ErrInvalidState, http.StatusUnprocessableEntity, ErrCodeInvalidState},
		{errors.New("connection reset"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		if !HandleRepoError(rec, logger, tt.err, "not found") {
			t.Errorf("%v: should report handled", tt.err)
			continue
		}
		if rec.Code != tt.wantStatus {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.wantStatus)
		}

		var resp ErrorResponse
		json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Error.Code != tt.wantCode {
			t.Errorf("%v: code = %s, want %s", tt.err, resp.Error.Code, tt.wantCode)
		}
	}

	// nil не обрабатывается
	rec := httptest.NewRecorder()
	if HandleRepoError(rec, logger, nil, "") {
		t.Error("nil error should not be handled")
	}
}
