package tmpl

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"traditional", "Traditional"},
		{"App-router", "App-router"},
		{"a", "A"},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	full := Vars{Mode: "traditional", Output: "/p/public", Source: "/p/logo.svg", Count: 8, Bytes: 2048, Status: "ok"}
	tests := []struct {
		name string
		s    string
		vars Vars
		want string
	}{
		{"no placeholders", "done", full, "done"},
		{"default message", DefaultMessage, full, "8 icons generated (traditional) in /p/public"},
		{"failed message", DefaultFor("error"), Vars{Source: "/p/logo.png", Status: "error", Error: "decode failed"}, "icon generation failed for /p/logo.png: decode failed"},
		{"ok default", DefaultFor("ok"), full, "8 icons generated (traditional) in /p/public"},
		{"mode title", "{Mode} run", full, "Traditional run"},
		{"source and size", "{source}: {size}", full, "/p/logo.svg: 2.0 kB"},
		{"status and error", "{status} {error}", Vars{Status: "error", Error: "boom"}, "error boom"},
		{"empty vars", "{mode}{output}", Vars{}, ""},
		{"zero count", "{count}", Vars{}, "0"},
		{"unknown placeholder", "{nope}", full, "{nope}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(tt.s, tt.vars); got != tt.want {
				t.Errorf("Expand(%q, %+v) = %q, want %q", tt.s, tt.vars, got, tt.want)
			}
		})
	}
}
