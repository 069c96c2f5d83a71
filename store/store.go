// Package store persists the portfolio document.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

var (
	// ErrStorageRead is returned when the stored document cannot be loaded:
	// it is missing, unreadable, or not valid JSON.
	ErrStorageRead = errors.New("failed to read portfolio data")

	// ErrStorageWrite is returned on any I/O fault while saving.
	ErrStorageWrite = errors.New("failed to save portfolio data")

	// ErrNotFound means no document has been written yet. It wraps ErrStorageRead.
	ErrNotFound = fmt.Errorf("%w: no document stored", ErrStorageRead)
)

// Store is the interface that all backing stores must implement.
// A write always replaces the whole document; there is no merge and no
// version check, so the last writer wins.
type Store interface {
	// Read loads the stored document.
	Read(ctx context.Context) (*portfolio.Document, error)

	// Write validates doc and replaces the stored document with it. An invalid
	// document is rejected with portfolio.ErrInvalidDocument before any I/O.
	Write(ctx context.Context, doc *portfolio.Document) error
}

func readError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageRead, err)
}

func writeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageWrite, err)
}

// Seed writes doc if s has no document yet. It reports whether it wrote.
// A corrupt document is left alone so it can be inspected.
func Seed(ctx context.Context, s Store, doc *portfolio.Document) (bool, error) {
	_, err := s.Read(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if err := s.Write(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}
