package htmlinject

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const page = `<!doctype html>
<html>
  <HEAD lang="en">
    <title>x</title>
  </HEAD>
  <body></body>
</html>
`

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIntegrateInserts(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "index.html")
	write(t, p, page)

	out, err := Integrate(root, "", "")
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if out.Status != Inserted || out.Path != p {
		t.Errorf("outcome = %+v", out)
	}
	data, _ := os.ReadFile(p)
	s := string(data)
	if !strings.Contains(s, "<HEAD lang=\"en\">\n    <link rel=\"icon\" href=\"/favicon.ico\"") {
		t.Errorf("block not spliced after head tag:\n%s", s)
	}
	if !strings.Contains(s, `color="#5bbad5"`) {
		t.Error("default accent missing")
	}
	if !strings.HasSuffix(s, "</html>\n") {
		t.Error("document tail lost")
	}
}

func TestIntegrateIdempotent(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "index.html")
	write(t, p, page)

	if _, err := Integrate(root, "", ""); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(p)

	out, err := Integrate(root, "", "")
	if !errors.Is(err, ErrAlreadyIntegrated) {
		t.Fatalf("second run err = %v, want ErrAlreadyIntegrated", err)
	}
	if out.Status != AlreadyPresent {
		t.Errorf("Status = %s", out.Status)
	}
	second, _ := os.ReadFile(p)
	if string(first) != string(second) {
		t.Error("second run modified the file")
	}
}

func TestIntegrateNoHeadTag(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "index.html")
	write(t, p, "<html><body>hi</body></html>")

	out, err := Integrate(root, "", "#123456")
	if !errors.Is(err, ErrNoHeadTag) {
		t.Fatalf("err = %v, want ErrNoHeadTag", err)
	}
	if out.Status != NoHeadTag || !strings.Contains(out.Markup, `color="#123456"`) {
		t.Errorf("outcome = %+v", out)
	}
	data, _ := os.ReadFile(p)
	if string(data) != "<html><body>hi</body></html>" {
		t.Error("file modified")
	}
}

func TestIntegrateHeaderIsNotHead(t *testing.T) {
	const doc = "<html><body><header>nav</header></body></html>"
	root := t.TempDir()
	p := filepath.Join(root, "index.html")
	write(t, p, doc)

	out, err := Integrate(root, "", "")
	if !errors.Is(err, ErrNoHeadTag) {
		t.Fatalf("err = %v, want ErrNoHeadTag", err)
	}
	if out.Status != NoHeadTag || out.Markup == "" {
		t.Errorf("outcome = %+v", out)
	}
	data, _ := os.ReadFile(p)
	if string(data) != doc {
		t.Errorf("file modified:\n%s", data)
	}
}

func TestIntegrateBareHeadBeforeHeader(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "index.html")
	write(t, p, "<html><head></head><body><header>nav</header></body></html>")

	if _, err := Integrate(root, "", ""); err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	data, _ := os.ReadFile(p)
	if !strings.HasPrefix(string(data), "<html><head>\n    <link") {
		t.Errorf("block not spliced after <head>:\n%s", data)
	}
}

func TestIntegrateNotFound(t *testing.T) {
	root := t.TempDir()
	_, err := Integrate(root, "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	_, err = Integrate(root, "missing.html", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("explicit err = %v, want ErrNotFound", err)
	}
}

func TestIntegrateExplicitPath(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "index.html"), page)
	custom := filepath.Join(root, "site", "home.html")
	write(t, custom, page)

	out, err := Integrate(root, "site/home.html", "")
	if err != nil {
		t.Fatal(err)
	}
	if out.Path != custom {
		t.Errorf("Path = %q, want %q", out.Path, custom)
	}
	data, _ := os.ReadFile(filepath.Join(root, "index.html"))
	if strings.Contains(string(data), "favicon.ico") {
		t.Error("default entry point modified")
	}
}

func TestFindEntry(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"none", nil, "index.html"},
		{"root first", []string{"index.html", "public/index.html"}, "index.html"},
		{"public", []string{"public/index.html", "src/index.html"}, "public/index.html"},
		{"sveltekit", []string{"src/app.html"}, "src/app.html"},
		{"astro layout", []string{"src/layouts/Layout.astro"}, "src/layouts/Layout.astro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				write(t, filepath.Join(root, filepath.FromSlash(f)), page)
			}
			if got := FindEntry(root); got != filepath.Join(root, filepath.FromSlash(tt.want)) {
				t.Errorf("FindEntry = %q, want %s", got, tt.want)
			}
		})
	}
}
