package web

import (
	"html/template"
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
)

const (
	aboutMarkdown = `This app is a KIVA loan amount predicter!`

	explanationMarkdown = `This plot shows how each feature contributes to the predicted price:

- Blue bars push the price lower
- Red bars push the price higher
- The length of each bar indicates the strength of the feature's impact
`
)

var (
	markdownPolicyOnce sync.Once
	markdownPolicy     *bluemonday.Policy
)

func markdownSanitizer() *bluemonday.Policy {
	markdownPolicyOnce.Do(func() {
		markdownPolicy = bluemonday.UGCPolicy()
	})
	return markdownPolicy
}

// renderMarkdown converts markdown into sanitized html safe to embed in the page
func renderMarkdown(md string) template.HTML {
	raw := markdown.ToHTML([]byte(strings.TrimSpace(md)), nil, nil)
	return template.HTML(markdownSanitizer().SanitizeBytes(raw))
}
