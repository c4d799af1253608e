package linklist

// FaviconService derives an icon image URL for a link URL.
// Implementations must be deterministic.
type FaviconService interface {
	FaviconURL(linkURL string) string
}
