package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDate, "cannot parse: %s", "value")

	if err.Code != ErrCodeInvalidDate {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDate)
	}

	if err.Message != "cannot parse: value" {
		t.Errorf("Message = %v, want %v", err.Message, "cannot parse: value")
	}

	expected := "INVALID_DATE: cannot parse: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("bad font")
	err := Wrap(ErrCodeUnsupported, cause, "load face")

	if err.Code != ErrCodeUnsupported {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnsupported)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "UNSUPPORTED: load face: bad font" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"different code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidDate, false},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(ErrCodeInvalidContainer, "nil")), ErrCodeInvalidContainer, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := fmt.Errorf("render: %w", New(ErrCodeInvalidOptions, "bad color"))
	if got := GetCode(err); got != ErrCodeInvalidOptions {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidOptions)
	}
	if got := UserMessage(err); got != "bad color" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad color")
	}
	plain := errors.New("plain")
	if GetCode(plain) != "" {
		t.Error("GetCode(plain) should be empty")
	}
	if UserMessage(plain) != "plain" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(New(ErrCodeInvalidDate, "x")) {
		t.Error("INVALID_DATE should be invalid")
	}
	if IsInvalid(New(ErrCodeUnsupported, "x")) {
		t.Error("UNSUPPORTED should not be invalid")
	}
	if IsInvalid(errors.New("x")) {
		t.Error("plain error should not be invalid")
	}
}
