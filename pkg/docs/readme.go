// Package docs renders the service README as the html home page.
package docs

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sync"

	"github.com/russross/blackfriday/v2"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 2rem;
      display: flex;
      justify-content: center;
      align-items: center;
      min-height: 100vh;
      font-family: sans-serif;
      background: #fff;
    }
    main {
      max-width: 80ch;
      width: 100%;
    }
  </style>
</head>
<body>
  <main>
{{.Body}}
  </main>
</body>
</html>
`))

// Readme renders a markdown file once and serves the cached page afterwards.
type Readme struct {
	path  string
	title string
	page  func() ([]byte, error)
}

func NewReadme(path, title string) *Readme {
	r := &Readme{path: path, title: title}
	r.page = sync.OnceValues(r.render)
	return r
}

// Page returns the full html document.
func (r *Readme) Page() ([]byte, error) {
	return r.page()
}

func (r *Readme) render() ([]byte, error) {
	markdown, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.path, err)
	}
	return RenderPage(r.title, markdown)
}

func RenderPage(title string, markdown []byte) ([]byte, error) {
	body := blackfriday.Run(markdown)

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body), //nolint:gosec // rendered from the service's own README
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}
