package availability

import (
	"context"
	"strings"

	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// TimesFetcher is the backend call the client depends on.
type TimesFetcher interface {
	AvailableTimes(ctx context.Context, date string) (*backend.AvailableTimes, error)
}

// Fetcher returns a snapshot for a date and never fails.
type Fetcher interface {
	Fetch(ctx context.Context, date string) Snapshot
}

// Client turns every backend failure into an empty snapshot.
type Client struct {
	backend TimesFetcher
	logger  *logging.Logger
	metrics *metrics.FrontendMetrics
}

func NewClient(b TimesFetcher, logger *logging.Logger, m *metrics.FrontendMetrics) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{backend: b, logger: logger.Component("availability"), metrics: m}
}

// Fetch returns the snapshot for date. An empty date yields an empty snapshot
// without a backend call.
func (c *Client) Fetch(ctx context.Context, date string) Snapshot {
	date = strings.TrimSpace(date)
	if date == "" {
		return EmptySnapshot("")
	}
	resp, err := c.backend.AvailableTimes(ctx, date)
	if err != nil {
		c.logger.Warn("availability fetch failed, showing no slots", "date", date, "error", err)
		c.metrics.ObserveAvailabilityFallback()
		return EmptySnapshot(date)
	}
	return FromBackend(date, resp)
}
