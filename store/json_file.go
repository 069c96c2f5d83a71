package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// JsonFileStore keeps the document as one pretty-printed JSON file.
//
// Writes go to a temp file in the same directory which is then renamed over
// the target, so readers only ever see a complete document. Writers within
// one process are serialised; separate processes still race and the last
// rename wins.
type JsonFileStore struct {
	mu   sync.Mutex
	path string
}

func NewJsonFileStore(path string) (*JsonFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &JsonFileStore{path: path}, nil
}

// Path returns the file the document lives in.
func (s *JsonFileStore) Path() string {
	return s.path
}

func (s *JsonFileStore) Read(_ context.Context) (*portfolio.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, readError(err)
	}
	doc, err := portfolio.Unmarshal(data)
	if err != nil {
		return nil, readError(err)
	}
	return doc, nil
}

func (s *JsonFileStore) Write(_ context.Context, doc *portfolio.Document) error {
	if err := portfolio.Validate(doc); err != nil {
		return err
	}
	b, err := portfolio.Marshal(doc)
	if err != nil {
		return writeError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.replace(b); err != nil {
		return writeError(err)
	}
	return nil
}

func (s *JsonFileStore) replace(b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
