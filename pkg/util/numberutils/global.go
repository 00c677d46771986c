package numberutils

// IsDigits checks if the given string contains only ASCII digits (0-9).
// It returns true if all characters in the string are digits, false otherwise.
func IsDigits(str string) bool {
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
