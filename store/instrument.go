package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Pratheesh-555/My-Portfolio/metrics"
	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// instrumented wraps a Store, timing each call and logging failures.
type instrumented struct {
	next    Store
	backend string
	m       *metrics.Metrics
	log     *zap.Logger
}

// Instrument decorates s with metrics and logging. A nil m skips metrics.
func Instrument(s Store, backend string, m *metrics.Metrics, log *zap.Logger) Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &instrumented{next: s, backend: backend, m: m, log: log}
}

func (s *instrumented) Read(ctx context.Context) (*portfolio.Document, error) {
	start := time.Now()
	doc, err := s.next.Read(ctx)
	outcome := outcomeOf(err)
	s.observe("read", outcome, time.Since(start))
	switch outcome {
	case "not_found":
		s.log.Warn("No portfolio data stored yet", zap.String("backend", s.backend))
	case "failed":
		s.log.Error("Error reading portfolio data", zap.String("backend", s.backend), zap.Error(err))
	}
	return doc, err
}

func (s *instrumented) Write(ctx context.Context, doc *portfolio.Document) error {
	start := time.Now()
	err := s.next.Write(ctx, doc)
	outcome := outcomeOf(err)
	s.observe("write", outcome, time.Since(start))
	if s.m != nil {
		s.m.IncrementWrites(outcome)
	}
	switch outcome {
	case "success":
		s.log.Info("Portfolio data saved successfully", zap.String("backend", s.backend))
	case "invalid":
		s.log.Warn("Rejected portfolio data", zap.Error(err))
	default:
		s.log.Error("Error saving portfolio data", zap.String("backend", s.backend), zap.Error(err))
	}
	return err
}

func (s *instrumented) observe(op, outcome string, d time.Duration) {
	if s.m != nil {
		s.m.RecordStoreOperation(s.backend, op, outcome, d)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, portfolio.ErrInvalidDocument):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
