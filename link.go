package linklist

import (
	"context"
	"strings"
)

// Uncategorized is the category bucket for links without a category.
const Uncategorized = "uncategorized"

// Link represents a single bookmark in a collection.
type Link struct {
	// ID is derived from the creation time in Unix milliseconds and is
	// unique within a collection. Zero means no identity was assigned.
	ID       int64    `json:"id,omitempty"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`
	Category string   `json:"category,omitempty"`
	Favicon  string   `json:"favicon,omitempty"`
}

// Validate returns an error if the link contains invalid fields.
func (l *Link) Validate() error {
	if l.Title == "" {
		return Errorf(EINVALID, "link title required")
	}
	if l.URL == "" {
		return Errorf(EINVALID, "link URL required")
	}
	return nil
}

// Normalize trims every field, applies the default URL scheme and drops
// blank tags. It is idempotent.
func (l *Link) Normalize() {
	l.Title = strings.TrimSpace(l.Title)
	l.URL = NormalizeURL(l.URL)
	l.Tags = NormalizeTags(l.Tags)
	l.Category = strings.TrimSpace(l.Category)
	l.Favicon = strings.TrimSpace(l.Favicon)
}

// CategoryName returns the link's category or Uncategorized when blank.
func (l *Link) CategoryName() string {
	if l.Category == "" {
		return Uncategorized
	}
	return l.Category
}

// Clone returns a deep copy of the link.
func (l *Link) Clone() *Link {
	other := *l
	other.Tags = append([]string{}, l.Tags...)
	return &other
}

// NormalizeURL trims raw and prefixes "https://" when it carries no scheme.
// Opaque URIs such as mailto: and tel: are left alone.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	switch {
	case u == "":
		return ""
	case strings.Contains(u, "://"):
		return u
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	}
	lower := strings.ToLower(u)
	for _, scheme := range opaqueSchemes {
		if strings.HasPrefix(lower, scheme) {
			return u
		}
	}
	return "https://" + u
}

var opaqueSchemes = []string{"mailto:", "tel:", "sms:"}

// NormalizeTags trims each tag and drops empty ones. Order and duplicates
// are preserved. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// LinkService represents a service for managing a link collection.
type LinkService interface {
	// CreateLink normalizes and appends a new link, assigning its ID and
	// favicon. Returns EINVALID if title or URL is empty. Returns
	// EUNAVAILABLE if the link was added but could not be persisted.
	CreateLink(ctx context.Context, link *Link) error

	// FindLinkByID retrieves a link by ID.
	// Returns ENOTFOUND if link does not exist.
	FindLinkByID(ctx context.Context, id int64) (*Link, error)

	// FindLinks retrieves links matching the filter in the requested order.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*Link, error)

	// UpdateLink updates an existing link in place.
	// Returns ENOTFOUND if link does not exist.
	UpdateLink(ctx context.Context, id int64, upd LinkUpdate) (*Link, error)

	// DeleteLink permanently removes a link.
	// Returns ENOTFOUND if link does not exist.
	DeleteLink(ctx context.Context, id int64) error

	// ImportLinks appends the links encoded in data.
	// Returns EFORMAT, without changes, if data is not a JSON array of links.
	ImportLinks(ctx context.Context, data []byte) ([]*Link, error)

	// ExportLinks encodes the whole collection in the import format.
	ExportLinks(ctx context.Context) ([]byte, error)

	// BackfillFavicons sets a favicon on every link lacking one and
	// returns how many were filled.
	BackfillFavicons(ctx context.Context) (int, error)

	// Categories returns links grouped by category.
	Categories(ctx context.Context) ([]*Category, error)
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	// Query matches case-insensitively against title, URL and tags.
	// Empty matches everything.
	Query string `json:"query"`

	// Category restricts results to one category bucket.
	Category *string `json:"category"`

	SortBy SortOrder `json:"sortBy"`
}

// LinkUpdate represents fields that can be updated on a link.
type LinkUpdate struct {
	Title    *string   `json:"title"`
	URL      *string   `json:"url"`
	Tags     *[]string `json:"tags"`
	Category *string   `json:"category"`
	Favicon  *string   `json:"favicon"`
}

// Apply copies the set fields of upd onto l.
func (upd LinkUpdate) Apply(l *Link) {
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.URL != nil {
		l.URL = *upd.URL
	}
	if upd.Tags != nil {
		l.Tags = append([]string{}, (*upd.Tags)...)
	}
	if upd.Category != nil {
		l.Category = *upd.Category
	}
	if upd.Favicon != nil {
		l.Favicon = *upd.Favicon
	}
}
