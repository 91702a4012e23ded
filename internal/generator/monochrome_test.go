package generator

import (
	"strings"
	"testing"
)

func TestMonochrome(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"fill and stroke",
			`<path fill="#112233" stroke="#445566" d="M0 0"/>`,
			`<path fill="#000000" stroke="#000000" d="M0 0"/>`,
		},
		{
			"single quotes and spacing",
			`<rect fill = 'red' stroke='blue'/>`,
			`<rect fill = "#000000" stroke="#000000"/>`,
		},
		{
			"other attributes untouched",
			`<rect fill-opacity="0.5" data-fill="x" fill="none"/>`,
			`<rect fill-opacity="0.5" data-fill="x" fill="#000000"/>`,
		},
		{
			"no color attributes",
			`<svg><g/></svg>`,
			`<svg><g/></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Monochrome([]byte(tt.in), "#000000"))
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestMonochromeDollarInAccent(t *testing.T) {
	got := string(Monochrome([]byte(`<a fill="x"/>`), "$1"))
	if !strings.Contains(got, `fill="$1"`) {
		t.Errorf("got %s", got)
	}
}
