package mock

import (
	"context"

	"github.com/dosTaiyaki/linklist"
)

var _ linklist.LinkService = (*LinkService)(nil)

// LinkService is a mock implementation of linklist.LinkService.
type LinkService struct {
	CreateLinkFn       func(ctx context.Context, link *linklist.Link) error
	FindLinkByIDFn     func(ctx context.Context, id int64) (*linklist.Link, error)
	FindLinksFn        func(ctx context.Context, filter linklist.LinkFilter) ([]*linklist.Link, error)
	UpdateLinkFn       func(ctx context.Context, id int64, upd linklist.LinkUpdate) (*linklist.Link, error)
	DeleteLinkFn       func(ctx context.Context, id int64) error
	ImportLinksFn      func(ctx context.Context, data []byte) ([]*linklist.Link, error)
	ExportLinksFn      func(ctx context.Context) ([]byte, error)
	BackfillFaviconsFn func(ctx context.Context) (int, error)
	CategoriesFn       func(ctx context.Context) ([]*linklist.Category, error)
}

func (s *LinkService) CreateLink(ctx context.Context, link *linklist.Link) error {
	return s.CreateLinkFn(ctx, link)
}

func (s *LinkService) FindLinkByID(ctx context.Context, id int64) (*linklist.Link, error) {
	return s.FindLinkByIDFn(ctx, id)
}

func (s *LinkService) FindLinks(ctx context.Context, filter linklist.LinkFilter) ([]*linklist.Link, error) {
	return s.FindLinksFn(ctx, filter)
}

func (s *LinkService) UpdateLink(ctx context.Context, id int64, upd linklist.LinkUpdate) (*linklist.Link, error) {
	return s.UpdateLinkFn(ctx, id, upd)
}

func (s *LinkService) DeleteLink(ctx context.Context, id int64) error {
	return s.DeleteLinkFn(ctx, id)
}

func (s *LinkService) ImportLinks(ctx context.Context, data []byte) ([]*linklist.Link, error) {
	return s.ImportLinksFn(ctx, data)
}

func (s *LinkService) ExportLinks(ctx context.Context) ([]byte, error) {
	return s.ExportLinksFn(ctx)
}

func (s *LinkService) BackfillFavicons(ctx context.Context) (int, error) {
	return s.BackfillFaviconsFn(ctx)
}

func (s *LinkService) Categories(ctx context.Context) ([]*linklist.Category, error) {
	return s.CategoriesFn(ctx)
}
