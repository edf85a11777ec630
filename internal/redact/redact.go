// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. This helps prevent the accidental leakage
// of credentials, connection strings, tokens, and query text that might be
// included in error messages bubbling up from lower layers.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database|connection)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	secretRegex   = regexp.MustCompile(`(?i)(jwt[_-]?secret|secret|token|key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// JWT tokens - the standard three-part base64url-encoded format
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// bcrypt hashes - never useful in a log line
	bcryptHashRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$]+)?`,
	)

	// All patterns and their placeholders, applied in order
	patterns = []*regexp.Regexp{
		dbConnRegex, passwordRegex, secretRegex, jwtTokenRegex, bcryptHashRegex, sqlRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:     RedactedCredentialPlaceholder,
		passwordRegex:   RedactedCredentialPlaceholder,
		secretRegex:     RedactedKeyPlaceholder,
		jwtTokenRegex:   "[REDACTED_JWT]",
		bcryptHashRegex: "[REDACTED_HASH]",
		sqlRegex:        "[REDACTED_SQL]",
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
