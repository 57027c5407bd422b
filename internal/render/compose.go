package render

import (
	_ "embed"
	"fmt"
	"html"
	"net/url"
	"os"
	"regexp"
	"strings"

	apperrors "resumeapi/internal/errors"
)

const (
	contentPlaceholder    = "<!-- Resume content will be injected here -->"
	stylesheetPlaceholder = "<!-- CSS will be injected by server -->"
	usernamePlaceholder   = "{{username}}"
)

//go:embed templates/resume.html
var defaultTemplate string

var (
	srcAttrPattern = regexp.MustCompile(`(?i)(\bsrc\s*=\s*)("[^"]*"|'[^']*')`)
	cssURLPattern  = regexp.MustCompile(`(?i)url\(\s*(["']?)([^"')]*)(["']?)\s*\)`)
)

// Composer builds the self-contained HTML document handed to the renderer.
type Composer struct {
	base           *url.URL
	templatePath   string
	stylesheetPath string
}

// NewComposer creates a Composer. Relative asset references are resolved
// against baseURL. Empty paths select the embedded template and no
// stylesheet respectively.
func NewComposer(baseURL, templatePath, stylesheetPath string) (*Composer, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid public base URL %q", baseURL)
	}
	return &Composer{
		base:           base,
		templatePath:   templatePath,
		stylesheetPath: stylesheetPath,
	}, nil
}

// Compose merges the resume fragment into the page template, injects the
// stylesheet and rewrites asset references to absolute URLs.
func (c *Composer) Compose(fragment, username string) (string, error) {
	tmpl, err := c.loadTemplate()
	if err != nil {
		return "", err
	}
	css, err := c.loadStylesheet()
	if err != nil {
		return "", err
	}

	// The username goes into the template before the fragment so resume
	// text containing the placeholder is left alone.
	doc := strings.ReplaceAll(tmpl, usernamePlaceholder, html.EscapeString(username))
	doc = strings.Replace(doc, stylesheetPlaceholder, "", 1)
	doc = strings.Replace(doc, contentPlaceholder, c.RewriteImageSources(fragment), 1)

	// User styles must follow the template's <style> block.
	if css != "" {
		style := "<style>\n" + c.RewriteCSSURLs(css) + "\n</style>"
		if i := strings.LastIndex(doc, "</body>"); i >= 0 {
			doc = doc[:i] + style + "\n" + doc[i:]
		} else {
			doc += style
		}
	}

	return doc, nil
}

func (c *Composer) loadTemplate() (string, error) {
	if c.templatePath == "" {
		return defaultTemplate, nil
	}
	b, err := os.ReadFile(c.templatePath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTemplateMissing, err)
	}
	return string(b), nil
}

func (c *Composer) loadStylesheet() (string, error) {
	if c.stylesheetPath == "" {
		return "", nil
	}
	b, err := os.ReadFile(c.stylesheetPath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.WithMessage(apperrors.ErrTemplateMissing, "Stylesheet file not found"), err)
	}
	return string(b), nil
}

// RewriteImageSources makes every relative src attribute absolute.
func (c *Composer) RewriteImageSources(doc string) string {
	return srcAttrPattern.ReplaceAllStringFunc(doc, func(m string) string {
		sub := srcAttrPattern.FindStringSubmatch(m)
		quoted := sub[2]
		q, ref := quoted[:1], quoted[1:len(quoted)-1]
		return sub[1] + q + c.Resolve(ref) + q
	})
}

// RewriteCSSURLs makes every relative url() reference absolute.
func (c *Composer) RewriteCSSURLs(css string) string {
	return cssURLPattern.ReplaceAllStringFunc(css, func(m string) string {
		sub := cssURLPattern.FindStringSubmatch(m)
		return "url(" + sub[1] + c.Resolve(strings.TrimSpace(sub[2])) + sub[3] + ")"
	})
}

// Resolve returns ref as an absolute URL. Absolute, protocol-relative,
// fragment-only and inline (data:, blob:) references are returned unchanged.
func (c *Composer) Resolve(ref string) string {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		return ref
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme != "" {
		return ref
	}
	return c.base.ResolveReference(u).String()
}
