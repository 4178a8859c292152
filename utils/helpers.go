package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// GenerateShortID returns a short random identifier, handy for usernames
// derived from email addresses.
func GenerateShortID(length int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if length > 0 && length < len(id) {
		return id[:length]
	}
	return id
}

// Slugify produces a URL-friendly slug from free text.
func Slugify(text string) string {
	return slug.Make(text)
}

// TruncateText shortens text to maxLength runes, appending "..." when cut.
func TruncateText(text string, maxLength int) string {
	const suffix = "..."
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= len(suffix) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(suffix)]) + suffix
}

// FormatDuration renders seconds as "2h 5m" / "3m 20s" / "45s".
func FormatDuration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		minutes := seconds / 60
		secs := seconds % 60
		if secs > 0 {
			return fmt.Sprintf("%dm %ds", minutes, secs)
		}
		return fmt.Sprintf("%dm", minutes)
	default:
		hours := seconds / 3600
		minutes := (seconds % 3600) / 60
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
}

// ValidatePassword checks minimum strength rules and returns every failure.
func ValidatePassword(password string) []string {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		errs = append(errs, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain at least one digit")
	}
	return errs
}
