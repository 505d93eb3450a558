package apierr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lattice-viz/layoutengine/internal/layouterr"
)

func TestNew(t *testing.T) {
	err := New(ErrLayoutInvalidGraph, "graph is not well-formed", http.StatusBadRequest)
	if err.Code != ErrLayoutInvalidGraph {
		t.Errorf("expected code %s, got %s", ErrLayoutInvalidGraph, err.Code)
	}
	if err.Message != "graph is not well-formed" {
		t.Errorf("expected message 'graph is not well-formed', got '%s'", err.Message)
	}
	if err.Status() != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.Status())
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ErrValidationInvalidValue, "invalid field", http.StatusBadRequest).
		WithDetails(map[string]interface{}{"field": "algorithm"})

	if err.Details == nil {
		t.Fatal("expected details to be set")
	}
	if field, ok := err.Details["field"]; !ok || field != "algorithm" {
		t.Errorf("expected field 'algorithm', got %v", field)
	}
}

func TestWithRequestID(t *testing.T) {
	requestID := "test-request-123"
	err := New(ErrSystemInternal, "internal error", http.StatusInternalServerError).
		WithRequestID(requestID)

	if err.RequestID != requestID {
		t.Errorf("expected request ID %s, got %s", requestID, err.RequestID)
	}
}

func TestErrorInterface(t *testing.T) {
	err := New(ErrRateLimitIP, "too many requests", http.StatusTooManyRequests)
	expected := "RATE_LIMIT_IP: too many requests"
	if err.Error() != expected {
		t.Errorf("expected error string %s, got %s", expected, err.Error())
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	err := New(ErrSystemTimeout, "timeout", http.StatusRequestTimeout).
		WithRequestID("req-123")

	WriteError(w, err)

	if w.Code != http.StatusRequestTimeout {
		t.Errorf("expected status %d, got %d", http.StatusRequestTimeout, w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Error == nil {
		t.Fatal("expected error in response")
	}
	if resp.Error.Code != ErrSystemTimeout {
		t.Errorf("expected code %s, got %s", ErrSystemTimeout, resp.Error.Code)
	}
	if resp.Error.Message != "timeout" {
		t.Errorf("expected message 'timeout', got '%s'", resp.Error.Message)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("expected request ID 'req-123', got '%s'", resp.Error.RequestID)
	}
}

func TestHelperFunctions(t *testing.T) {
	tests := []struct {
		name       string
		createErr  func() *Error
		wantCode   ErrorCode
		wantStatus int
	}{
		{"SystemInternal", func() *Error { return SystemInternal("") }, ErrSystemInternal, http.StatusInternalServerError},
		{"SystemUnavailable", func() *Error { return SystemUnavailable("") }, ErrSystemUnavailable, http.StatusServiceUnavailable},
		{"SystemTimeout", func() *Error { return SystemTimeout("") }, ErrSystemTimeout, http.StatusRequestTimeout},
		{"ValidationInvalidJSON", func() *Error { return ValidationInvalidJSON() }, ErrValidationInvalidJSON, http.StatusBadRequest},
		{"ValidationInvalidFormat", func() *Error { return ValidationInvalidFormat("") }, ErrValidationInvalidFormat, http.StatusBadRequest},
		{"ValidationMissingField", func() *Error { return ValidationMissingField("algorithm") }, ErrValidationMissingField, http.StatusBadRequest},
		{"ValidationInvalidValue", func() *Error { return ValidationInvalidValue("distance", "") }, ErrValidationInvalidValue, http.StatusBadRequest},
		{"ResourceNotFound", func() *Error { return ResourceNotFound("transition token") }, ErrResourceNotFound, http.StatusNotFound},
		{"ResourceConflict", func() *Error { return ResourceConflict("") }, ErrResourceConflict, http.StatusConflict},
		{"RateLimitGlobal", func() *Error { return RateLimitGlobal() }, ErrRateLimitGlobal, http.StatusTooManyRequests},
		{"RateLimitIP", func() *Error { return RateLimitIP() }, ErrRateLimitIP, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.createErr()
			if err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, err.Code)
			}
			if err.Status() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, err.Status())
			}
			if err.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestValidationMissingFieldDetails(t *testing.T) {
	err := ValidationMissingField("algorithm")
	if err.Details == nil {
		t.Fatal("expected details to be set")
	}
	if field, ok := err.Details["field"]; !ok || field != "algorithm" {
		t.Errorf("expected field 'algorithm', got %v", field)
	}
}

func TestResourceNotFoundDetails(t *testing.T) {
	err := ResourceNotFound("transition token")
	if err.Details == nil {
		t.Fatal("expected details to be set")
	}
	if rt, ok := err.Details["resource_type"]; !ok || rt != "transition token" {
		t.Errorf("expected resource_type 'transition token', got %v", rt)
	}
}

func TestFromLayoutErrorInvalidGraph(t *testing.T) {
	src := layouterr.NewInvalidGraph("duplicate node id: a").WithDetails(map[string]any{"node_id": "a"})
	out := FromLayoutError(src)

	if out.Code != ErrLayoutInvalidGraph {
		t.Errorf("expected code %s, got %s", ErrLayoutInvalidGraph, out.Code)
	}
	if out.Status() != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", out.Status())
	}
	if out.Details["node_id"] != "a" {
		t.Errorf("expected details to carry through, got %v", out.Details)
	}
}

func TestFromLayoutErrorUnknownAlgorithm(t *testing.T) {
	src := layouterr.NewUnknownAlgorithm("spiral")
	out := FromLayoutError(src)

	if out.Code != ErrLayoutUnknownAlgorithm {
		t.Errorf("expected code %s, got %s", ErrLayoutUnknownAlgorithm, out.Code)
	}
	if out.Status() != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", out.Status())
	}
}

func TestFromLayoutErrorDefaultsToSystemInternal(t *testing.T) {
	src := layouterr.NewSimulationDiverged("n1", 1e9)
	out := FromLayoutError(src)

	if out.Code != ErrSystemInternal {
		t.Errorf("non-fatal codes routed through FromLayoutError should map to system internal, got %s", out.Code)
	}
}
