// Package favicon derives favicon image URLs for links.
package favicon

import (
	"net/url"
	"strconv"

	"github.com/dosTaiyaki/linklist"
)

// Ensure Google implements linklist.FaviconService at compile time.
var _ linklist.FaviconService = (*Google)(nil)

// Default settings of the Google s2 favicon endpoint.
const (
	DefaultBaseURL = "https://www.google.com/s2/favicons"
	DefaultSize    = 32
)

// Google builds favicon URLs served by Google's s2 endpoint. It never
// performs a network call.
type Google struct {
	baseURL string
	size    int
}

// Option configures Google.
type Option func(*Google)

// WithBaseURL overrides the favicon endpoint.
func WithBaseURL(u string) Option {
	return func(g *Google) {
		g.baseURL = u
	}
}

// WithSize sets the requested icon size in pixels.
func WithSize(px int) Option {
	return func(g *Google) {
		g.size = px
	}
}

// NewGoogle creates a Google favicon service.
func NewGoogle(opts ...Option) *Google {
	g := &Google{
		baseURL: DefaultBaseURL,
		size:    DefaultSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FaviconURL returns the icon URL for linkURL, passing the whole link URL
// as the domain parameter.
func (g *Google) FaviconURL(linkURL string) string {
	return g.baseURL + "?domain=" + url.QueryEscape(linkURL) + "&sz=" + strconv.Itoa(g.size)
}
