package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumeapi/internal/testutil"
)

func newTestComposer(t *testing.T, templatePath, stylesheetPath string) *Composer {
	t.Helper()
	c, err := NewComposer("http://localhost:5000", templatePath, stylesheetPath)
	testutil.AssertNoError(t, err)
	return c
}

func TestNewComposerRejectsRelativeBase(t *testing.T) {
	if _, err := NewComposer("/just/a/path", "", ""); err == nil {
		t.Error("expected an error for a base URL without scheme and host")
	}
}

func TestResolve(t *testing.T) {
	c := newTestComposer(t, "", "")

	tests := []struct {
		ref  string
		want string
	}{
		{"images/photo.png", "http://localhost:5000/images/photo.png"},
		{"./images/photo.png", "http://localhost:5000/images/photo.png"},
		{"/static/logo.svg", "http://localhost:5000/static/logo.svg"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"//cdn.example.com/a.png", "//cdn.example.com/a.png"},
		{"data:image/png;base64,iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo="},
		{"blob:http://localhost:5000/1234", "blob:http://localhost:5000/1234"},
		{"#anchor", "#anchor"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := c.Resolve(tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRewriteImageSources(t *testing.T) {
	c := newTestComposer(t, "", "")

	in := `<img src="images/a.png"><img class="x" src='/b.jpg'><img src="data:image/gif;base64,R0lG"><script src="https://x.test/s.js"></script>`
	out := c.RewriteImageSources(in)

	for _, want := range []string{
		`src="http://localhost:5000/images/a.png"`,
		`src='http://localhost:5000/b.jpg'`,
		`src="data:image/gif;base64,R0lG"`,
		`src="https://x.test/s.js"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestRewriteCSSURLs(t *testing.T) {
	c := newTestComposer(t, "", "")

	css := `.a{background:url("img/bg.png")} .b{background:url( /x.png )} .c{background:url(data:image/png;base64,AAA)} .d{src:url('https://f.test/f.woff2')}`
	out := c.RewriteCSSURLs(css)

	for _, want := range []string{
		`url("http://localhost:5000/img/bg.png")`,
		`url(http://localhost:5000/x.png)`,
		`url(data:image/png;base64,AAA)`,
		`url('https://f.test/f.woff2')`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestCompose(t *testing.T) {
	t.Run("embedded template", func(t *testing.T) {
		c := newTestComposer(t, "", "")

		doc, err := c.Compose(`<h1>Jane Doe</h1><img src="me.png">`, "Jane <Doe>")
		testutil.AssertNoError(t, err)

		if !strings.Contains(doc, "<h1>Jane Doe</h1>") {
			t.Error("fragment not injected")
		}
		if !strings.Contains(doc, "<title>Jane &lt;Doe&gt; - Resume</title>") {
			t.Errorf("username not escaped into title: %s", doc)
		}
		if !strings.Contains(doc, `src="http://localhost:5000/me.png"`) {
			t.Error("image source not rewritten")
		}
		if strings.Contains(doc, contentPlaceholder) || strings.Contains(doc, usernamePlaceholder) {
			t.Error("placeholders left in document")
		}
	})

	t.Run("stylesheet injected with rewritten urls", func(t *testing.T) {
		dir := t.TempDir()
		cssPath := filepath.Join(dir, "resume.css")
		if err := os.WriteFile(cssPath, []byte(`body{background:url(bg.png)}`), 0o644); err != nil {
			t.Fatal(err)
		}
		c := newTestComposer(t, "", cssPath)

		doc, err := c.Compose("<p>x</p>", "Resume")
		testutil.AssertNoError(t, err)

		style := "<style>\nbody{background:url(http://localhost:5000/bg.png)}\n</style>"
		userCSS := strings.Index(doc, style)
		if userCSS < 0 {
			t.Fatalf("stylesheet not injected: %s", doc)
		}
		templateCSS := strings.Index(doc, "<style>\n        @page")
		if templateCSS < 0 || userCSS < templateCSS {
			t.Errorf("stylesheet must come after the template styles: user=%d template=%d", userCSS, templateCSS)
		}
		if !strings.Contains(doc, style+"\n</body>") {
			t.Errorf("stylesheet should sit right before </body>: %s", doc)
		}
		if strings.Contains(doc, stylesheetPlaceholder) {
			t.Error("stylesheet placeholder left in document")
		}
	})

	t.Run("username placeholder inside the fragment is kept", func(t *testing.T) {
		c := newTestComposer(t, "", "")

		doc, err := c.Compose("<p>{{username}}</p>", "Alice")
		testutil.AssertNoError(t, err)

		if !strings.Contains(doc, "<p>{{username}}</p>") {
			t.Errorf("fragment text was rewritten: %s", doc)
		}
		if !strings.Contains(doc, "<title>Alice - Resume</title>") {
			t.Errorf("title not filled: %s", doc)
		}
	})

	t.Run("stylesheet appended before body when template has no marker", func(t *testing.T) {
		dir := t.TempDir()
		tmplPath := filepath.Join(dir, "t.html")
		cssPath := filepath.Join(dir, "s.css")
		if err := os.WriteFile(tmplPath, []byte("<html><body><!-- Resume content will be injected here --></body></html>"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(cssPath, []byte("p{color:red}"), 0o644); err != nil {
			t.Fatal(err)
		}
		c := newTestComposer(t, tmplPath, cssPath)

		doc, err := c.Compose("<p>x</p>", "Resume")
		testutil.AssertNoError(t, err)

		want := "<html><body><p>x</p><style>\np{color:red}\n</style>\n</body></html>"
		if doc != want {
			t.Errorf("got %q, want %q", doc, want)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		c := newTestComposer(t, filepath.Join(t.TempDir(), "absent.html"), "")
		_, err := c.Compose("<p>x</p>", "Resume")
		testutil.AssertAppError(t, err, "TEMPLATE_MISSING")
	})

	t.Run("missing stylesheet", func(t *testing.T) {
		c := newTestComposer(t, "", filepath.Join(t.TempDir(), "absent.css"))
		_, err := c.Compose("<p>x</p>", "Resume")
		testutil.AssertAppError(t, err, "TEMPLATE_MISSING")
	})
}

func TestA4Geometry(t *testing.T) {
	p := A4()
	if p.ViewportWidth() != 794 || p.ViewportHeight() != 1123 {
		t.Errorf("unexpected viewport %dx%d", p.ViewportWidth(), p.ViewportHeight())
	}
	if p.MarginInches() != 0 || p.Scale != 1 || !p.PrintBackground {
		t.Errorf("unexpected print settings %+v", p)
	}
}
