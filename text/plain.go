// Package text renders chapter markup for a terminal.
package text

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// blockElements end with a line break when flattened.
const blockElements = "p, div, h1, h2, h3, h4, h5, h6, li, blockquote, pre, hr, tr"

// PlainText flattens chapter content to readable text. Images are dropped,
// block elements become paragraphs. Content without any markup, such as
// Markdown, passes through unchanged apart from whitespace trimming.
func PlainText(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse content: %v", err)
	}
	body := doc.Find("body")
	body.Find("img, script, style").Remove()
	body.Find("br").ReplaceWithHtml("\n")
	body.Find(blockElements).Each(func(i int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	text := strings.ReplaceAll(body.Text(), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}
