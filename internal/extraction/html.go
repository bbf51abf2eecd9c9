// Package extraction pulls plain text, titles and keywords out of clipped
// HTML so the summarizer works on readable content instead of markup.
package extraction

import (
	"regexp"
	"strings"
)

var (
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptRe  = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Result is the readable view of one HTML document.
type Result struct {
	Title     string
	Content   string
	WordCount int
}

// Extract strips markup from HTML and returns the readable text and title.
// Documents without a usable <title> get "Untitled".
func Extract(html string) Result {
	title := "Untitled"
	if m := titleRe.FindStringSubmatch(html); m != nil {
		if cleaned := cleanText(m[1]); cleaned != "" {
			title = cleaned
		}
	}

	body := scriptRe.ReplaceAllString(html, " ")
	body = commentRe.ReplaceAllString(body, " ")
	body = tagRe.ReplaceAllString(body, " ")
	content := cleanText(decodeEntities(body))

	return Result{
		Title:     title,
		Content:   content,
		WordCount: len(strings.Fields(content)),
	}
}

func cleanText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
)

func decodeEntities(s string) string {
	return entityReplacer.Replace(s)
}
