// Package shell escapes text for embedding in platform script languages.
package shell

import "strings"

// EscapePowerShell doubles single quotes for embedding inside
// PowerShell single-quoted strings.
func EscapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeAppleScript escapes backslashes and double quotes for embedding
// inside AppleScript string literals.
func EscapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
