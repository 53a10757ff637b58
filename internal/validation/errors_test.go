package validation

import (
	"strings"
	"testing"
)

func TestValidationErrorEmpty(t *testing.T) {
	ve := NewValidationError()

	if ve.HasErrors() {
		t.Error("new ValidationError should have no errors")
	}
	if ve.Error() != "validation error" {
		t.Errorf("empty ValidationError.Error() = %q", ve.Error())
	}
	if ve.GetUserFriendlyMessage() != "Input validation failed" {
		t.Errorf("empty GetUserFriendlyMessage() = %q", ve.GetUserFriendlyMessage())
	}
}

func TestValidationErrorSingle(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")

	if !ve.HasErrors() {
		t.Error("ValidationError should report errors after AddRequiredError")
	}
	if ve.GetUserFriendlyMessage() != "task_name is required" {
		t.Errorf("GetUserFriendlyMessage() = %q", ve.GetUserFriendlyMessage())
	}
	if !strings.Contains(ve.Error(), "task_name") {
		t.Errorf("Error() should name the field, got %q", ve.Error())
	}
}

func TestValidationErrorMultiple(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	ve.AddInvalidRangeError("hours", 25, "hours must be between 0 and 23")

	message := ve.GetUserFriendlyMessage()
	if !strings.Contains(message, "Multiple validation errors occurred") {
		t.Errorf("GetUserFriendlyMessage() = %q", message)
	}
	if !strings.Contains(message, "task_name is required") {
		t.Errorf("message should include the first error, got %q", message)
	}
	if !strings.Contains(message, "hours must be between 0 and 23") {
		t.Errorf("message should include the second error, got %q", message)
	}
}

func TestGetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")
	ve.AddInvalidLengthError("task_name", strings.Repeat("a", 300), 1, 255)
	ve.AddInvalidRangeError("hours", 25, "hours must be between 0 and 23")

	taskErrors := ve.GetFieldErrors("task_name")
	if len(taskErrors) != 2 {
		t.Errorf("GetFieldErrors(task_name) returned %d errors, want 2", len(taskErrors))
	}
	if taskErrors[0].Type != ErrorTypeRequired {
		t.Errorf("first task_name error type = %v, want %v", taskErrors[0].Type, ErrorTypeRequired)
	}

	if len(ve.GetFieldErrors("minutes")) != 0 {
		t.Error("GetFieldErrors for an untouched field should be empty")
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("task_name")

	if !IsValidationError(ve) {
		t.Error("IsValidationError should recognize *ValidationError")
	}

	fieldErr := &FieldError{Field: "hours", Type: ErrorTypeInvalidRange, Message: "out of range"}
	if IsValidationError(fieldErr) {
		t.Error("IsValidationError should be false for a bare FieldError")
	}
}
