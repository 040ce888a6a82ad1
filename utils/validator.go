// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}

// ValidateSubmissionTitle checks contest entry titles.
func ValidateSubmissionTitle(title string) (bool, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, "Title is required"
	}
	if len([]rune(title)) > 200 {
		return false, "Title must be at most 200 characters"
	}
	return true, ""
}

// ValidateSubmissionBody checks contest entry bodies.
func ValidateSubmissionBody(body string) (bool, string) {
	if strings.TrimSpace(body) == "" {
		return false, "Body is required"
	}
	return true, ""
}
