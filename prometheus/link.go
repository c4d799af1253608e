// Package prometheus instruments linklist services with Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/dosTaiyaki/linklist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure InstrumentedService implements linklist.LinkService.
var _ linklist.LinkService = (*InstrumentedService)(nil)

// InstrumentedService wraps a LinkService and records a counter and a
// latency histogram per operation, plus a gauge of the collection size.
type InstrumentedService struct {
	next       linklist.LinkService
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewInstrumentedService registers the metrics with reg and returns the
// wrapped service.
func NewInstrumentedService(next linklist.LinkService, reg prometheus.Registerer) *InstrumentedService {
	factory := promauto.With(reg)
	s := &InstrumentedService{
		next: next,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linklist_operations_total",
			Help: "Link store operations by outcome code.",
		}, []string{"operation", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "linklist_operation_duration_seconds",
			Help:    "Time spent in link store operations.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"operation"}),
	}
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "linklist_links",
		Help: "Number of links in the collection.",
	}, s.countLinks)
	return s
}

func (s *InstrumentedService) countLinks() float64 {
	links, err := s.next.FindLinks(context.Background(), linklist.LinkFilter{})
	if err != nil {
		return 0
	}
	return float64(len(links))
}

func (s *InstrumentedService) observe(op string, begin time.Time, err error) {
	code := "ok"
	if err != nil {
		code = linklist.ErrorCode(err)
	}
	s.operations.WithLabelValues(op, code).Inc()
	s.duration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}

func (s *InstrumentedService) CreateLink(ctx context.Context, link *linklist.Link) (err error) {
	defer func(begin time.Time) { s.observe("create", begin, err) }(time.Now())
	return s.next.CreateLink(ctx, link)
}

func (s *InstrumentedService) FindLinkByID(ctx context.Context, id int64) (_ *linklist.Link, err error) {
	defer func(begin time.Time) { s.observe("find_by_id", begin, err) }(time.Now())
	return s.next.FindLinkByID(ctx, id)
}

func (s *InstrumentedService) FindLinks(ctx context.Context, filter linklist.LinkFilter) (_ []*linklist.Link, err error) {
	defer func(begin time.Time) { s.observe("find", begin, err) }(time.Now())
	return s.next.FindLinks(ctx, filter)
}

func (s *InstrumentedService) UpdateLink(ctx context.Context, id int64, upd linklist.LinkUpdate) (_ *linklist.Link, err error) {
	defer func(begin time.Time) { s.observe("update", begin, err) }(time.Now())
	return s.next.UpdateLink(ctx, id, upd)
}

func (s *InstrumentedService) DeleteLink(ctx context.Context, id int64) (err error) {
	defer func(begin time.Time) { s.observe("delete", begin, err) }(time.Now())
	return s.next.DeleteLink(ctx, id)
}

func (s *InstrumentedService) ImportLinks(ctx context.Context, data []byte) (_ []*linklist.Link, err error) {
	defer func(begin time.Time) { s.observe("import", begin, err) }(time.Now())
	return s.next.ImportLinks(ctx, data)
}

func (s *InstrumentedService) ExportLinks(ctx context.Context) (_ []byte, err error) {
	defer func(begin time.Time) { s.observe("export", begin, err) }(time.Now())
	return s.next.ExportLinks(ctx)
}

func (s *InstrumentedService) BackfillFavicons(ctx context.Context) (_ int, err error) {
	defer func(begin time.Time) { s.observe("backfill", begin, err) }(time.Now())
	return s.next.BackfillFavicons(ctx)
}

func (s *InstrumentedService) Categories(ctx context.Context) (_ []*linklist.Category, err error) {
	defer func(begin time.Time) { s.observe("categories", begin, err) }(time.Now())
	return s.next.Categories(ctx)
}
