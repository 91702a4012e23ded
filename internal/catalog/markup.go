package catalog

import (
	"fmt"
	"strings"
)

// LinkTags returns the <link> elements a document head needs to reference
// the traditional-mode assets. accent colors the Safari pinned tab.
func LinkTags(accent string) []string {
	return []string{
		`<link rel="icon" href="/favicon.ico" sizes="32x32">`,
		fmt.Sprintf(`<link rel="icon" href="/%s" type="image/svg+xml">`, VectorCopyFile),
		`<link rel="apple-touch-icon" href="/apple-touch-icon.png">`,
		fmt.Sprintf(`<link rel="manifest" href="/%s">`, ManifestFile),
		fmt.Sprintf(`<link rel="mask-icon" href="/%s" color="%s">`, PinnedTabFile, accent),
	}
}

// LinkBlock joins LinkTags with newlines, prefixing each line with indent.
func LinkBlock(accent, indent string) string {
	var b strings.Builder
	for i, tag := range LinkTags(accent) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(tag)
	}
	return b.String()
}
