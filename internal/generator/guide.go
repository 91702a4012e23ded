package generator

import (
	"fmt"
	"strings"

	"github.com/Mavwarf/favicon/internal/catalog"
)

// Guide returns the integration text written next to the project root.
func Guide(m catalog.Mode, outputDir, accent string) string {
	var b strings.Builder
	b.WriteString("Favicon integration\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Mode:   %s\n", m)
	fmt.Fprintf(&b, "Output: %s\n\n", outputDir)

	if m == catalog.AppRouter {
		b.WriteString("The icons were written to the app-router directory. The framework\n")
		b.WriteString("discovers favicon.ico, icon.svg, icon.png and apple-icon.png there\n")
		b.WriteString("and adds the matching <link> tags itself. No markup is needed.\n")
		return b.String()
	}

	b.WriteString("Copy the following tags into the <head> of your HTML entry point\n")
	b.WriteString("(or run `favicon html`):\n\n")
	b.WriteString(catalog.LinkBlock(accent, "  "))
	b.WriteString("\n")
	return b.String()
}
