package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wolfman30/elitecuts-web/internal/observability/metrics"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

const defaultSessionCacheSize = 1024

// Sessions holds live widgets in a bounded LRU. Transcripts are never
// persisted; an evicted or unknown id starts over.
type Sessions struct {
	cache   *lru.Cache[string, *Widget]
	bot     Chatbot
	now     func() time.Time
	logger  *logging.Logger
	metrics *metrics.FrontendMetrics
}

func NewSessions(size int, bot Chatbot, logger *logging.Logger, m *metrics.FrontendMetrics) (*Sessions, error) {
	if size <= 0 {
		size = defaultSessionCacheSize
	}
	if logger == nil {
		logger = logging.Default()
	}
	cache, err := lru.New[string, *Widget](size)
	if err != nil {
		return nil, fmt.Errorf("chat: create session cache: %w", err)
	}
	return &Sessions{cache: cache, bot: bot, now: time.Now, logger: logger.Component("chat"), metrics: m}, nil
}

// Create mints a widget with a fresh id and the greeting.
func (s *Sessions) Create() *Widget {
	w := newWidget(uuid.NewString(), s.bot, s.now, s.logger, s.metrics)
	s.cache.Add(w.ID(), w)
	return w
}

func (s *Sessions) Get(id string) (*Widget, bool) {
	if id == "" {
		return nil, false
	}
	return s.cache.Get(id)
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}
