//go:build darwin

package toast

import (
	"fmt"
	"os/exec"

	"github.com/Mavwarf/favicon/internal/shell"
)

// Show displays a macOS notification using osascript.
func Show(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		shell.EscapeAppleScript(message), shell.EscapeAppleScript(title))
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("toast failed: %w\n%s", err, out)
	}
	return nil
}
