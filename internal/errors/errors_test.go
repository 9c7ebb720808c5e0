package errors

import (
	"fmt"
	"testing"
)

func TestConciergeError_Error(t *testing.T) {
	err := &ConciergeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "flight not found",
	}

	expected := "NOT_FOUND: flight not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("question is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "question is required" {
		t.Errorf("Message = %q, want %q", err.Message, "question is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("page", "/nowhere")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message != "page not found: /nowhere" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["identifier"] != "/nowhere" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "/nowhere")
	}
	if err.Details["kind"] != "page" {
		t.Errorf("Details[kind] = %v, want %q", err.Details["kind"], "page")
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("snapshot closed"))
	if err.Code != ErrInternal || err.Status != 500 {
		t.Errorf("got %q/%d, want INTERNAL/500", err.Code, err.Status)
	}
	if err.Message != "snapshot closed" {
		t.Errorf("Message = %q", err.Message)
	}

	if NewInternal(nil).Message != "internal error" {
		t.Errorf("nil error should produce generic message")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", NewNotFound("flight", "x"), ErrNotFound, true},
		{"different code", NewNotFound("flight", "x"), ErrInternal, false},
		{"plain error", fmt.Errorf("boom"), ErrInternal, false},
		{"nil", nil, ErrInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}
