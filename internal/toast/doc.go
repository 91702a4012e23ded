// Package toast shows a desktop notification when a generation finishes.
package toast
