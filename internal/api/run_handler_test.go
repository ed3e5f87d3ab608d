package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/shaiso/Kadr/internal/domain"
)

func TestParseRunFilter(t *testing.T) {
	pipelineID := uuid.New()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/runs?pipeline_id="+pipelineID.String()+"&status=FAILED&limit=10&offset=5", nil)

	filter, ok := parseRunFilter(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("filter should parse")
	}
	if filter.PipelineID == nil || *filter.PipelineID != pipelineID {
		t.Errorf("pipeline_id = %v", filter.PipelineID)
	}
	if filter.Status != domain.RunStatusFailed {
		t.Errorf("status = %s", filter.Status)
	}
	if filter.Limit != 10 || filter.Offset != 5 {
		t.Errorf("limit/offset = %d/%d", filter.Limit, filter.Offset)
	}
}

func TestParseRunFilter_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)

	filter, ok := parseRunFilter(httptest.NewRecorder(), req)
	if !ok {
		t.Fatal("empty filter should parse")
	}
	if filter.PipelineID != nil {
		t.Error("pipeline_id should be nil by default")
	}
	if filter.Limit != 50 {
		t.Errorf("default limit = %d, want 50", filter.Limit)
	}
	if filter.Offset != 0 {
		t.Errorf("default offset = %d", filter.Offset)
	}
}

func TestParseRunFilter_Invalid(t *testing.T) {
	urls := []string{
		"/api/v1/runs?pipeline_id=not-a-uuid",
		"/api/v1/runs?limit=0",
		"/api/v1/runs?limit=abc",
		"/api/v1/runs?offset=-1",
	}

	for _, u := range urls {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, u, nil)

		if _, ok := parseRunFilter(rec, req); ok {
			t.Errorf("%s: should be rejected", u)
			continue
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", u, rec.Code)
		}
	}
}
