// Package store implements the link collection engine on top of any
// linklist.KeyValue backend.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dosTaiyaki/linklist"
)

// Ensure Store implements linklist.LinkService.
var _ linklist.LinkService = (*Store)(nil)

// Store holds an ordered link collection in memory and rewrites it to a
// KeyValue backend after every mutation.
//
// When persisting fails the mutation stays applied in memory and the
// method returns an EUNAVAILABLE error alongside its normal result.
type Store struct {
	mu    sync.Mutex
	links []*linklist.Link

	kv       linklist.KeyValue
	favicons linklist.FaviconService
	key      string
	now      func() time.Time

	// unread is set when the last Load could not read the backend. The
	// persisted collection is then unknown and must not be overwritten.
	unread bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the key the collection is persisted under.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets the time source used for new link IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty Store. Call Load to read the persisted
// collection. favicons may be nil, in which case no favicons are filled.
func NewStore(kv linklist.KeyValue, favicons linklist.FaviconService, opts ...Option) *Store {
	s := &Store{
		links:    []*linklist.Link{},
		kv:       kv,
		favicons: favicons,
		key:      linklist.DefaultKey,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one.
//
// A missing key yields an empty collection. A backend failure yields an
// empty collection and EUNAVAILABLE, and mutations stay in memory until a
// later Load succeeds. Malformed data yields an empty collection and
// EFORMAT. The store remains usable in every case.
//
// Records given a new ID are saved right away so the ID survives the
// session.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links = []*linklist.Link{}
	s.unread = false

	data, err := s.kv.Get(ctx, s.key)
	if linklist.ErrorCode(err) == linklist.ENOTFOUND {
		return nil
	} else if err != nil {
		s.unread = true
		return unavailable("load links", err)
	}

	links, err := linklist.UnmarshalLinks(data)
	if err != nil {
		return linklist.Errorf(linklist.EFORMAT, "stored links are malformed: %s", linklist.ErrorMessage(err))
	}

	for _, l := range links {
		l.Normalize()
	}
	// Records without a usable ID get one so edit and delete can reach them.
	repaired := newIDSet(nil).assign(links, s.now().UnixMilli())
	s.links = links

	if repaired {
		return s.persist(ctx)
	}
	return nil
}

// Save writes the whole collection to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) error {
	if s.unread {
		return linklist.Errorf(linklist.EUNAVAILABLE, "not saved: collection could not be loaded")
	}
	data, err := linklist.MarshalLinks(s.links)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return unavailable("save links", err)
	}
	return nil
}

// CreateLink normalizes link, assigns its ID and favicon, and appends it.
// Any ID already set on link is replaced.
func (s *Store) CreateLink(ctx context.Context, link *linklist.Link) error {
	link.Normalize()
	if err := link.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link.ID = newIDSet(s.links).next(s.now().UnixMilli())
	s.fillFavicon(link)
	s.links = append(slices.Clip(s.links), link.Clone())

	return s.persist(ctx)
}

// FindLinkByID returns a copy of the link with the given ID.
func (s *Store) FindLinkByID(_ context.Context, id int64) (*linklist.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	return s.links[i].Clone(), nil
}

// FindLinks returns copies of the links matching filter.
func (s *Store) FindLinks(_ context.Context, filter linklist.LinkFilter) ([]*linklist.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := linklist.FilterLinks(s.links, filter)
	if err != nil {
		return nil, err
	}
	return cloneAll(links), nil
}

// UpdateLink applies upd to the link with the given ID. The link keeps its
// ID and position. A favicon cleared by upd is derived again from the URL.
func (s *Store) UpdateLink(ctx context.Context, id int64, upd linklist.LinkUpdate) (*linklist.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}

	link := s.links[i].Clone()
	upd.Apply(link)
	link.Normalize()
	if err := link.Validate(); err != nil {
		return nil, err
	}
	s.fillFavicon(link)

	links := slices.Clone(s.links)
	links[i] = link
	s.links = links

	return link.Clone(), s.persist(ctx)
}

// DeleteLink removes the link with the given ID.
func (s *Store) DeleteLink(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	s.links = slices.Delete(slices.Clone(s.links), i, i+1)

	return s.persist(ctx)
}

// ImportLinks decodes data and appends the links in input order. Positive
// IDs not yet in use are kept; the rest are assigned fresh ones.
func (s *Store) ImportLinks(ctx context.Context, data []byte) ([]*linklist.Link, error) {
	incoming, err := linklist.UnmarshalLinks(data)
	if err != nil {
		return nil, err
	}
	for i, l := range incoming {
		l.Normalize()
		if err := l.Validate(); err != nil {
			return nil, linklist.Errorf(linklist.EFORMAT, "record %d: %s", i+1, linklist.ErrorMessage(err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newIDSet(s.links).assign(incoming, s.now().UnixMilli())
	for _, l := range incoming {
		s.fillFavicon(l)
	}
	s.links = append(slices.Clip(s.links), incoming...)

	return cloneAll(incoming), s.persist(ctx)
}

// ExportLinks encodes the collection in base order.
func (s *Store) ExportLinks(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return linklist.MarshalLinksIndent(s.links)
}

// BackfillFavicons fills missing favicons and saves only if any changed.
func (s *Store) BackfillFavicons(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favicons == nil {
		return 0, nil
	}

	var n int
	links := slices.Clone(s.links)
	for i, l := range links {
		if l.Favicon != "" {
			continue
		}
		l = l.Clone()
		s.fillFavicon(l)
		links[i] = l
		n++
	}
	if n == 0 {
		return 0, nil
	}
	s.links = links

	return n, s.persist(ctx)
}

// Categories groups copies of the links by category.
func (s *Store) Categories(_ context.Context) ([]*linklist.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return linklist.GroupByCategory(cloneAll(s.links)), nil
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.links, func(l *linklist.Link) bool {
		return l.ID == id
	})
}

func (s *Store) fillFavicon(l *linklist.Link) {
	if s.favicons != nil && l.Favicon == "" {
		l.Favicon = s.favicons.FaviconURL(l.URL)
	}
}

func cloneAll(links []*linklist.Link) []*linklist.Link {
	out := make([]*linklist.Link, len(links))
	for i, l := range links {
		out[i] = l.Clone()
	}
	return out
}

func notFound(id int64) error {
	return linklist.Errorf(linklist.ENOTFOUND, "link %d not found", id)
}

// unavailable converts a backend error into EUNAVAILABLE, keeping the
// backend's own message.
func unavailable(op string, err error) error {
	msg := err.Error()
	var e *linklist.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return linklist.Errorf(linklist.EUNAVAILABLE, "%s: %s", op, msg)
}
