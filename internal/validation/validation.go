package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tasklane/tasklane/internal/models"
)

var (
	ErrNameTooShort    = errors.New("name must be at least 2 characters")
	ErrEmailInvalid    = errors.New("email is not a valid address")
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("status must be 'pending' or 'completed'")
	ErrInvalidPriority = errors.New("priority must be 'low', 'medium', or 'high'")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateRegistration(name, email, password string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	if len(password) < 6 {
		return ErrPasswordTooWeak
	}
	return nil
}

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return nil
}

func ValidateStatus(status string) error {
	switch status {
	case models.StatusPending, models.StatusCompleted:
		return nil
	}
	return ErrInvalidStatus
}

func ValidatePriority(priority string) error {
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	}
	return ErrInvalidPriority
}

// IsValidationError reports whether err is one of this package's sentinels,
// so handlers can map it to a 400 without enumerating them.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrNameTooShort,
		ErrEmailInvalid,
		ErrPasswordTooWeak,
		ErrTitleRequired,
		ErrInvalidStatus,
		ErrInvalidPriority,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
