package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// DefaultPollInterval is how often Watch reloads in development.
const DefaultPollInterval = 5 * time.Second

type Source string

const (
	SourceAPI     Source = "api"
	SourceBundled Source = "bundled"
)

// Result is one load: the document plus where it came from. Err holds the
// API failure that caused a fallback, if any; it is informational only.
type Result struct {
	Doc    *portfolio.Document
	Source Source
	Err    error
}

// Fetcher is the read half of Client.
type Fetcher interface {
	Fetch(ctx context.Context) (*portfolio.Document, error)
}

// Loader fetches the document for rendering. It never fails: when the API is
// unreachable or returns garbage, the bundled copy is used instead.
type Loader struct {
	fetcher    Fetcher
	production bool
	log        *zap.Logger
}

// NewLoader returns a Loader backed by f, usually a *Client. In production
// the API is treated as a development-only convenience and the bundled
// document is always used.
func NewLoader(f Fetcher, production bool, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{fetcher: f, production: production, log: log}
}

func (l *Loader) Load(ctx context.Context) Result {
	if l.production {
		return Result{Doc: portfolio.Default(), Source: SourceBundled}
	}
	doc, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.log.Debug("API not available, using bundled data", zap.Error(err))
		return Result{Doc: portfolio.Default(), Source: SourceBundled, Err: err}
	}
	return Result{Doc: doc, Source: SourceAPI}
}

// Watch loads once immediately and then every interval until ctx is done,
// handing each result to fn. There is no push from the server; this polling
// is how edits made elsewhere show up.
func (l *Loader) Watch(ctx context.Context, interval time.Duration, fn func(Result)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	fn(l.Load(ctx))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(l.Load(ctx))
		}
	}
}
