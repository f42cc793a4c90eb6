// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import "strings"

// =============================================================================
// PASSWORD POLICY
// =============================================================================

// specialChars are the symbols the signup policy accepts.
const specialChars = "@$!%*?&"

// minPasswordLen is the minimum signup password length.
const minPasswordLen = 8

// CheckPassword validates a signup password against the account policy:
// at least 8 characters with one lowercase letter, one uppercase letter,
// one digit, and one special character from @$!%*?&. It returns a
// human-readable reason for the first failed rule, or "" when the
// password passes.
func CheckPassword(password string) string {
	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters long."
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}
	switch {
	case !hasLower:
		return "Password must contain a lowercase letter."
	case !hasUpper:
		return "Password must contain an uppercase letter."
	case !hasDigit:
		return "Password must contain a digit."
	case !hasSpecial:
		return "Password must contain a special character (@$!%*?&)."
	}
	return ""
}
