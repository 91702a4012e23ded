//go:build !windows && !darwin && !linux

package toast

import "errors"

// Show is unsupported on this platform.
func Show(title, message string) error {
	return errors.New("desktop notifications are not supported on this platform")
}
