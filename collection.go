package linklist

import (
	"cmp"
	"slices"
	"strings"
)

// SortOrder represents a display order for FindLinks.
type SortOrder string

// SortOrder constants for LinkFilter. The zero value keeps insertion order.
const (
	SortNone        SortOrder = ""
	SortTitleAsc    SortOrder = "title-asc"
	SortTitleDesc   SortOrder = "title-desc"
	SortCreatedAsc  SortOrder = "created-asc"
	SortCreatedDesc SortOrder = "created-desc"
)

// SortOrders lists every non-default sort order.
var SortOrders = []SortOrder{SortTitleAsc, SortTitleDesc, SortCreatedAsc, SortCreatedDesc}

// ParseSortOrder converts s to a SortOrder.
// Returns EINVALID for unknown values.
func ParseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if order == SortNone || slices.Contains(SortOrders, order) {
		return order, nil
	}
	return SortNone, Errorf(EINVALID, "unknown sort order %q", s)
}

// Category is a named group of links.
type Category struct {
	Name  string  `json:"name"`
	Links []*Link `json:"links"`
}

// Search returns the links whose title, URL or any tag contains query,
// ignoring case. An empty query returns every link. The input is not
// modified.
func Search(links []*Link, query string) []*Link {
	out := make([]*Link, 0, len(links))
	if query == "" {
		return append(out, links...)
	}
	q := strings.ToLower(query)
	for _, l := range links {
		if matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l *Link, q string) bool {
	if strings.Contains(strings.ToLower(l.Title), q) || strings.Contains(strings.ToLower(l.URL), q) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy of links. The input slice is never reordered.
//
// Creation-time orders rely on link IDs and return EUNSUPPORTED when any
// link has none.
func Sort(links []*Link, order SortOrder) ([]*Link, error) {
	out := slices.Clone(links)
	if out == nil {
		out = []*Link{}
	}

	switch order {
	case SortNone:
	case SortTitleAsc:
		slices.SortStableFunc(out, compareTitle)
	case SortTitleDesc:
		slices.SortStableFunc(out, func(a, b *Link) int { return compareTitle(b, a) })
	case SortCreatedAsc, SortCreatedDesc:
		for _, l := range out {
			if l.ID == 0 {
				return nil, Errorf(EUNSUPPORTED, "sort by creation time requires every link to have an ID")
			}
		}
		if order == SortCreatedAsc {
			slices.SortStableFunc(out, func(a, b *Link) int { return cmp.Compare(a.ID, b.ID) })
		} else {
			slices.SortStableFunc(out, func(a, b *Link) int { return cmp.Compare(b.ID, a.ID) })
		}
	default:
		return nil, Errorf(EINVALID, "unknown sort order %q", order)
	}
	return out, nil
}

// compareTitle orders case-insensitively, then by exact title, then by ID,
// so descending order is the exact reverse of ascending.
func compareTitle(a, b *Link) int {
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// GroupByCategory groups links by category name in order of first
// appearance. Links without a category land in Uncategorized.
func GroupByCategory(links []*Link) []*Category {
	var groups []*Category
	index := make(map[string]int)
	for _, l := range links {
		name := l.CategoryName()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, &Category{Name: name})
		}
		groups[i].Links = append(groups[i].Links, l)
	}
	return groups
}

// FilterLinks applies filter to links: category first, then query, then
// sort order.
func FilterLinks(links []*Link, filter LinkFilter) ([]*Link, error) {
	if filter.Category != nil {
		name := strings.TrimSpace(*filter.Category)
		if name == "" {
			name = Uncategorized
		}
		links = slices.DeleteFunc(slices.Clone(links), func(l *Link) bool {
			return l.CategoryName() != name
		})
	}
	return Sort(Search(links, filter.Query), filter.SortBy)
}
