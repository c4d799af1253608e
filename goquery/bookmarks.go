package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dosTaiyaki/linklist"
)

// Ensure BookmarkParser implements linklist.BookmarkParser at compile time.
var _ linklist.BookmarkParser = (*BookmarkParser)(nil)

// BookmarkParser reads the Netscape bookmark file format that browsers
// use for bookmark exports.
type BookmarkParser struct{}

// NewBookmarkParser creates a new BookmarkParser.
func NewBookmarkParser() *BookmarkParser {
	return &BookmarkParser{}
}

// skippedSchemes are bookmark targets that are not web links.
var skippedSchemes = []string{"javascript:", "place:", "data:"}

// ParseBookmarks returns one link per bookmark in document order. The
// nearest enclosing folder name becomes the category, the TAGS attribute is
// split on commas and ADD_DATE (Unix seconds) becomes the ID. Bookmarklets
// and browser-internal entries are skipped. The links are not normalized.
func (p *BookmarkParser) ParseBookmarks(html string) ([]*linklist.Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, linklist.Errorf(linklist.EFORMAT, "invalid bookmark file: %s", err)
	}

	links := []*linklist.Link{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || hasScheme(href, skippedSchemes) {
			return
		}

		title := collapse(a.Text())
		if title == "" {
			title = href
		}

		links = append(links, &linklist.Link{
			ID:       addDate(a.AttrOr("add_date", "")),
			Title:    title,
			URL:      href,
			Tags:     splitTags(a.AttrOr("tags", "")),
			Category: folder(a),
		})
	})
	return links, nil
}

// folder returns the name of the folder holding a. Each folder is a <DT>
// containing an <H3> heading followed by the <DL> of its entries.
func folder(a *goquery.Selection) string {
	dl := a.Closest("dl")
	return collapse(dl.PrevAllFiltered("h3").First().Text())
}

func addDate(s string) int64 {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return secs * 1000
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return linklist.NormalizeTags(strings.Split(s, ","))
}

func hasScheme(href string, schemes []string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range schemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}
