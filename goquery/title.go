// Package goquery implements HTML processing for linklist on top of
// PuerkitoBio/goquery: page title extraction and browser bookmark import.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dosTaiyaki/linklist"
)

// Ensure TitleExtractor implements linklist.TitleExtractor at compile time.
var _ linklist.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor finds the title of an HTML page.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle returns the first non-empty of the Open Graph title, the
// <title> element and the first <h1>, with whitespace collapsed.
func (e *TitleExtractor) ExtractTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	candidates := []string{
		doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""),
		doc.Find("title").First().Text(),
		doc.Find("h1").First().Text(),
	}
	for _, c := range candidates {
		if title := collapse(c); title != "" {
			return title, nil
		}
	}
	return "", linklist.Errorf(linklist.ENOTFOUND, "page has no title")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
