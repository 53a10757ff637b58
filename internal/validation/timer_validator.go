package validation

import (
	"github.com/askk-pro/karyayana/internal/domain"
)

// TimerValidator provides validation for timer lifecycle operations
type TimerValidator struct {
	validator *Validator
}

// NewTimerValidator creates a new timer validator
func NewTimerValidator() *TimerValidator {
	return &TimerValidator{
		validator: NewValidator(),
	}
}

// ValidateTaskName validates a timer's display label
func (tv *TimerValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("task_name")
		return validationError
	}

	if !tv.validator.IsValidStringLength(trimmedName, 1, 255) {
		validationError.AddInvalidLengthError("task_name", trimmedName, 1, 255)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDuration validates the configured duration components. The derived
// total must be positive for the timer to be usable.
func (tv *TimerValidator) ValidateDuration(hours, minutes, seconds int) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidHours(hours) {
		validationError.AddInvalidRangeError("hours", hours, "must be non-negative")
	}
	if !tv.validator.IsValidDurationComponent(minutes) {
		validationError.AddInvalidRangeError("minutes", minutes, "must be between 0 and 59")
	}
	if !tv.validator.IsValidDurationComponent(seconds) {
		validationError.AddInvalidRangeError("seconds", seconds, "must be between 0 and 59")
	}

	if !validationError.HasErrors() && domain.TotalSeconds(hours, minutes, seconds) <= 0 {
		validationError.AddInvalidValueError("total_seconds", 0, "duration must be greater than zero")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateRepeat validates the repeat configuration
func (tv *TimerValidator) ValidateRepeat(isRepeating bool, intervalSeconds int) error {
	if !isRepeating {
		return nil
	}
	if intervalSeconds <= 0 {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("repeat_interval_seconds", intervalSeconds, "must be positive when repeating")
		return validationError
	}
	return nil
}

// ValidateAppearance validates customization fields. Empty values are allowed
// and replaced with defaults by the caller.
func (tv *TimerValidator) ValidateAppearance(primaryColor, secondaryColor, fontFamily, fontSize string) error {
	validationError := NewValidationError()

	if primaryColor != "" && !tv.validator.IsValidHexColor(primaryColor) {
		validationError.AddInvalidFormatError("primary_color", primaryColor, "#rrggbb")
	}
	if secondaryColor != "" && !tv.validator.IsValidHexColor(secondaryColor) {
		validationError.AddInvalidFormatError("secondary_color", secondaryColor, "#rrggbb")
	}
	if fontFamily != "" && !tv.validator.IsValidFontFamily(fontFamily) {
		validationError.AddInvalidValueError("font_family", fontFamily, "unsupported font family")
	}
	if fontSize != "" && !tv.validator.IsValidFontSize(fontSize) {
		validationError.AddInvalidValueError("font_size", fontSize, "unsupported font size")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTimerID validates a timer identifier
func (tv *TimerValidator) ValidateTimerID(id string) error {
	if !tv.validator.IsValidTimerID(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("timer_id")
		return validationError
	}
	return nil
}

// ValidateTimer validates a complete domain timer, including the cross-field
// invariants (duration consistency, repeat/overtime exclusivity).
func (tv *TimerValidator) ValidateTimer(timer domain.Timer) error {
	validationError := NewValidationError()

	if nameErr := tv.ValidateTaskName(timer.TaskName); nameErr != nil {
		if nameValidationErr, ok := nameErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, nameValidationErr.Errors...)
		}
	}
	if durErr := tv.ValidateDuration(timer.Hours, timer.Minutes, timer.Seconds); durErr != nil {
		if durValidationErr, ok := durErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, durValidationErr.Errors...)
		}
	}
	if repErr := tv.ValidateRepeat(timer.IsRepeating, timer.RepeatInterval); repErr != nil {
		if repValidationErr, ok := repErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, repValidationErr.Errors...)
		}
	}
	if appErr := tv.ValidateAppearance(timer.PrimaryColor, timer.SecondaryColor, timer.FontFamily, timer.FontSize); appErr != nil {
		if appValidationErr, ok := appErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, appValidationErr.Errors...)
		}
	}

	if timer.TotalSeconds != domain.TotalSeconds(timer.Hours, timer.Minutes, timer.Seconds) {
		validationError.AddInvalidValueError("total_seconds", timer.TotalSeconds, "must equal hours*3600 + minutes*60 + seconds")
	}
	if timer.IsRepeating && timer.IsNegative {
		validationError.AddInvalidValueError("is_repeating", true, "repeat and overtime modes are mutually exclusive")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TimerValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}
