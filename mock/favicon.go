package mock

import "github.com/dosTaiyaki/linklist"

var _ linklist.FaviconService = (*FaviconService)(nil)

// FaviconService is a mock implementation of linklist.FaviconService.
type FaviconService struct {
	FaviconURLFn func(linkURL string) string
}

func (s *FaviconService) FaviconURL(linkURL string) string {
	return s.FaviconURLFn(linkURL)
}
