package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Pratheesh-555/My-Portfolio/metrics"
	"github.com/Pratheesh-555/My-Portfolio/portfolio"
	"github.com/Pratheesh-555/My-Portfolio/store"
)

func sampleDoc(name string) *portfolio.Document {
	return &portfolio.Document{
		PersonalInfo: portfolio.PersonalInfo{"name": name, "github": "https://github.com/" + name},
		Skills: []portfolio.SkillCategory{
			{Title: "Languages", Items: []portfolio.SkillItem{{Name: "Go"}, {Name: "C"}}},
		},
		Projects: []portfolio.Project{
			{ID: 1, Title: "Analyzer", Tech: "Go", Link: "#", RequiresAuth: true},
			{ID: 1, Title: "Duplicate id is allowed"},
		},
		Achievements: []portfolio.Achievement{
			{ID: 1735689600000, Title: "Hackathon", Year: "2025"},
		},
	}
}

// runStoreTests runs a common test suite against any Store implementation.
func runStoreTests(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Read empty", func(t *testing.T) {
		_, err := s.Read(ctx)
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if !errors.Is(err, store.ErrStorageRead) {
			t.Fatalf("expected ErrNotFound to wrap ErrStorageRead, got %v", err)
		}
	})

	t.Run("Write and Read", func(t *testing.T) {
		want := sampleDoc("X")
		if err := s.Write(ctx, want); err != nil {
			t.Fatal(err)
		}
		got, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", want, got)
		}
	})

	t.Run("Read returns a copy", func(t *testing.T) {
		got, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		got.PersonalInfo["name"] = "mutated"
		again, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if again.PersonalInfo.Name() != "X" {
			t.Fatalf("expected name=X, got %q", again.PersonalInfo.Name())
		}
	})

	t.Run("Write replaces whole document", func(t *testing.T) {
		next := sampleDoc("Y")
		next.Projects = []portfolio.Project{}
		if err := s.Write(ctx, next); err != nil {
			t.Fatal(err)
		}
		got, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got.PersonalInfo.Name() != "Y" {
			t.Fatalf("expected name=Y, got %q", got.PersonalInfo.Name())
		}
		if len(got.Projects) != 0 {
			t.Fatalf("expected omitted projects to be gone, got %d", len(got.Projects))
		}
	})

	t.Run("Write invalid leaves document unchanged", func(t *testing.T) {
		before, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		for _, field := range []string{"personalInfo", "skills", "projects", "achievements"} {
			bad := sampleDoc("Z")
			switch field {
			case "personalInfo":
				bad.PersonalInfo = nil
			case "skills":
				bad.Skills = nil
			case "projects":
				bad.Projects = nil
			case "achievements":
				bad.Achievements = nil
			}
			if err := s.Write(ctx, bad); !errors.Is(err, portfolio.ErrInvalidDocument) {
				t.Fatalf("missing %s: expected ErrInvalidDocument, got %v", field, err)
			}
		}
		after, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(before, after) {
			t.Fatal("document changed after rejected writes")
		}
	})

	t.Run("Seed existing", func(t *testing.T) {
		wrote, err := store.Seed(ctx, s, portfolio.Default())
		if err != nil {
			t.Fatal(err)
		}
		if wrote {
			t.Fatal("expected Seed to leave an existing document alone")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, store.NewMemoryStore())
}

func TestJsonFileStore(t *testing.T) {
	s, err := store.NewJsonFileStore(filepath.Join(t.TempDir(), "data", "portfolio.json"))
	if err != nil {
		t.Fatal(err)
	}
	runStoreTests(t, s)
}

func TestSqliteStore(t *testing.T) {
	s, err := store.NewSqliteStore(filepath.Join(t.TempDir(), "portfolio.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runStoreTests(t, s)
}

// TestRedisStore needs a server; set REDIS_ADDR (e.g. localhost:6379) to run it.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s not reachable: %v", addr, err)
	}
	key := fmt.Sprintf("portfolio:test:%d", time.Now().UnixNano())
	s := store.NewRedisStore(rdb, key)
	t.Cleanup(func() {
		rdb.Del(context.Background(), key)
		s.Close()
	})
	runStoreTests(t, s)
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
	}{
		{"json"},
		{"sqlite"},
		{"memory"},
		{"redis"},
		{""},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			s, err := store.New(tc.backend, store.Options{
				DataFile:  filepath.Join(dir, tc.backend, "portfolio.json"),
				RedisAddr: "localhost:6379",
				RedisKey:  "portfolio:test",
			})
			if err != nil {
				t.Fatal(err)
			}
			if c, ok := s.(interface{ Close() error }); ok {
				c.Close()
			}
		})
	}

	t.Run("sqlite path", func(t *testing.T) {
		if _, err := os.Stat(filepath.Join(dir, "sqlite", "portfolio.db")); err != nil {
			t.Fatalf("expected portfolio.db next to the data file: %v", err)
		}
	})

	t.Run("open failure returns nil store", func(t *testing.T) {
		notDir := filepath.Join(dir, "file")
		if err := os.WriteFile(notDir, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		for _, backend := range []string{"json", "sqlite"} {
			s, err := store.New(backend, store.Options{DataFile: filepath.Join(notDir, "portfolio.json")})
			if err == nil {
				t.Fatalf("%s: expected error when the data directory is a file", backend)
			}
			if s != nil {
				t.Fatalf("%s: expected nil store on error, got %#v", backend, s)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := store.New("mongo", store.Options{DataFile: filepath.Join(dir, "x.json")})
		if err == nil {
			t.Fatal("expected error for unknown backend")
		}
	})
}

func TestJsonFileStoreFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	s, err := store.NewJsonFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Write(context.Background(), sampleDoc("X")); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "{\n  \"personalInfo\": {\n    \"github\"") {
		t.Fatalf("expected 2-space indented JSON, got:\n%s", b)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the data file, found %d entries", len(entries))
	}
}

func TestJsonFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte(`{"personalInfo": {"name": "X"`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := store.NewJsonFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Read(ctx)
	if !errors.Is(err, store.ErrStorageRead) {
		t.Fatalf("expected ErrStorageRead, got %v", err)
	}
	if errors.Is(err, store.ErrNotFound) {
		t.Fatal("corrupt file must not be reported as not found")
	}

	wrote, err := store.Seed(ctx, s, portfolio.Default())
	if err == nil || wrote {
		t.Fatalf("expected Seed to refuse a corrupt file, wrote=%v err=%v", wrote, err)
	}

	if err := s.Write(ctx, sampleDoc("fixed")); err != nil {
		t.Fatal(err)
	}
	got, err := s.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.PersonalInfo.Name() != "fixed" {
		t.Fatalf("expected repaired document, got %q", got.PersonalInfo.Name())
	}
}

func TestJsonFileStoreWriteFailure(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.json")
	// A directory at the target path makes the final rename fail.
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	s, err := store.NewJsonFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Write(ctx, sampleDoc("X")); !errors.Is(err, store.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}
	if _, err := s.Read(ctx); !errors.Is(err, store.ErrStorageRead) {
		t.Fatalf("expected ErrStorageRead, got %v", err)
	}
}

func TestJsonFileStoreConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewJsonFileStore(filepath.Join(t.TempDir(), "portfolio.json"))
	if err != nil {
		t.Fatal(err)
	}
	a, b := sampleDoc("A"), sampleDoc("B")
	b.Projects = append(b.Projects, portfolio.Project{ID: 9, Title: "only in B"})

	for i := 0; i < 20; i++ {
		var wg sync.WaitGroup
		for _, doc := range []*portfolio.Document{a, b} {
			wg.Add(1)
			go func(doc *portfolio.Document) {
				defer wg.Done()
				if err := s.Write(ctx, doc); err != nil {
					t.Error(err)
				}
			}(doc)
		}
		wg.Wait()

		got, err := s.Read(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, a) && !reflect.DeepEqual(got, b) {
			t.Fatalf("expected exactly A or B, got %#v", got)
		}
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	wrote, err := store.Seed(ctx, s, portfolio.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !wrote {
		t.Fatal("expected Seed to write into an empty store")
	}
	got, err := s.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, portfolio.Default()) {
		t.Fatal("seeded document differs from default")
	}
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())
	core, logs := observer.New(zap.InfoLevel)
	s := store.Instrument(store.NewMemoryStore(), "memory", m, zap.New(core))

	if _, err := s.Read(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Write(ctx, sampleDoc("X")); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(ctx, &portfolio.Document{}); !errors.Is(err, portfolio.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}

	if got := testutil.ToFloat64(m.PortfolioWrites.WithLabelValues("success")); got != 1 {
		t.Fatalf("expected 1 successful write, got %v", got)
	}
	if got := testutil.ToFloat64(m.PortfolioWrites.WithLabelValues("invalid")); got != 1 {
		t.Fatalf("expected 1 invalid write, got %v", got)
	}
	if n := logs.FilterMessage("Portfolio data saved successfully").Len(); n != 1 {
		t.Fatalf("expected 1 save log, got %d", n)
	}
	if n := logs.FilterMessage("Rejected portfolio data").Len(); n != 1 {
		t.Fatalf("expected 1 rejection log, got %d", n)
	}
}
