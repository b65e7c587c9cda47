package readability

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapError(t *testing.T) {
	wrapped := WrapError(ErrNoContent, ExtractionError, "Parse", "scoring failed")

	if !strings.Contains(wrapped.Error(), "[extraction:Parse]") {
		t.Errorf("Error message should contain formatted prefix, got: %s", wrapped.Error())
	}
	if !strings.Contains(wrapped.Error(), "scoring failed") {
		t.Errorf("Error message should contain the message, got: %s", wrapped.Error())
	}
	if !errors.Is(wrapped, ErrNoContent) {
		t.Errorf("errors.Is should return true for the sentinel")
	}

	if got := WrapError(ErrNoDocument, ValidationError, "Parse", "").Error(); got != "[validation:Parse] no document to parse" {
		t.Errorf("unexpected message without context: %q", got)
	}
	if WrapError(nil, ParseError, "Parse", "x") != nil {
		t.Errorf("wrapping nil should return nil")
	}
}

func TestWrapErrorSpecificTypes(t *testing.T) {
	baseErr := errors.New("base error")

	tests := []struct {
		name      string
		wrapFunc  func(error, string, string) error
		errorType ErrorType
		checkFunc func(error) bool
	}{
		{"ParseError", WrapParseError, ParseError, IsParseError},
		{"ExtractionError", WrapExtractionError, ExtractionError, IsExtractionError},
		{"ValidationError", WrapValidationError, ValidationError, IsValidationError},
		{"TimeoutError", WrapTimeoutError, TimeoutError, IsTimeoutError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedErr := tt.wrapFunc(baseErr, "TestFunc", "test message")

			if !tt.checkFunc(wrappedErr) {
				t.Errorf("%s should be detected by Is%s", tt.name, tt.name)
			}
			if !IsErrorType(wrappedErr, tt.errorType) {
				t.Errorf("IsErrorType should identify %s as type %s", tt.name, tt.errorType)
			}
			if IsErrorType(baseErr, tt.errorType) {
				t.Errorf("unwrapped error should not match %s", tt.errorType)
			}
		})
	}
}
