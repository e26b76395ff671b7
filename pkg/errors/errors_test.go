package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedTime, "Invalid time format: %s", "25:99 XM")

	if err.Code != ErrCodeMalformedTime {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedTime)
	}

	if err.Message != "Invalid time format: 25:99 XM" {
		t.Errorf("Message = %v, want %v", err.Message, "Invalid time format: 25:99 XM")
	}

	expected := "MALFORMED_TIME: Invalid time format: 25:99 XM"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWithField(t *testing.T) {
	err := New(ErrCodeMalformedTime, "Invalid time format: %s", "13:70 XM").
		WithField("Monday[0].Time", "13:70 XM")

	if err.Field != "Monday[0].Time" {
		t.Errorf("Field = %q, want %q", err.Field, "Monday[0].Time")
	}
	if err.Text != "13:70 XM" {
		t.Errorf("Text = %q, want %q", err.Text, "13:70 XM")
	}

	expected := "MALFORMED_TIME: Invalid time format: 13:70 XM (at Monday[0].Time)"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}

	wrapped := fmt.Errorf("compile: %w", err)
	if got := Field(wrapped); got != "Monday[0].Time" {
		t.Errorf("Field(wrapped) = %q, want %q", got, "Monday[0].Time")
	}
	if got := Text(wrapped); got != "13:70 XM" {
		t.Errorf("Text(wrapped) = %q, want %q", got, "13:70 XM")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := Wrap(ErrCodeDocumentShape, cause, "cannot decode document")

	if err.Code != ErrCodeDocumentShape {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDocumentShape)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidRange, "test"),
			code:     ErrCodeInvalidRange,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidRange, "test"),
			code:     ErrCodeMalformedTime,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeDocumentShape, New(ErrCodeMalformedTime, "inner"), "outer"),
			code:     ErrCodeDocumentShape,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("compile: %w", New(ErrCodeInvalidRange, "inner")),
			code:     ErrCodeInvalidRange,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDocumentShape, "test"),
			expected: ErrCodeDocumentShape,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMalformedTime, "Invalid time format: 25:99 XM").WithField("End", "25:99 XM"),
			expected: "Invalid time format: 25:99 XM",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
