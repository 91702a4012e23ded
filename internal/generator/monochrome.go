package generator

import (
	"regexp"
	"strings"
)

var colorAttr = regexp.MustCompile(`(\s)(fill|stroke)(\s*=\s*)(?:"[^"]*"|'[^']*')`)

// Monochrome replaces the value of every fill and stroke attribute in svg
// with accent.
func Monochrome(svg []byte, accent string) []byte {
	repl := `${1}${2}${3}"` + strings.ReplaceAll(accent, "$", "$$") + `"`
	return colorAttr.ReplaceAll(svg, []byte(repl))
}
