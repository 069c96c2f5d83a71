// admin.go - admin editing session with debounced auto-save

package client

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// DefaultDebounce is the quiet period after the last edit before auto-save fires.
const DefaultDebounce = time.Second

// DefaultAdminPassword unlocks the admin view. It only hides the editing UI;
// the API itself is unauthenticated.
const DefaultAdminPassword = "555"

var (
	ErrLocked          = errors.New("admin session is locked")
	ErrInvalidPassword = errors.New("invalid password")
	ErrReadOnly        = errors.New("admin session is read-only in production")
)

// Banner is a transient status message for the admin view.
type Banner struct {
	Text  string
	Error bool
	TTL   time.Duration
}

var (
	bannerAutoSaved = Banner{Text: "Changes saved automatically!", TTL: 3 * time.Second}
	bannerSaved     = Banner{Text: "Changes saved!", TTL: 3 * time.Second}
	bannerFailed    = Banner{Text: "Failed to save changes", Error: true, TTL: 5 * time.Second}
	bannerOffline   = Banner{Text: "Auto-save failed - API server may be offline", Error: true, TTL: 5 * time.Second}
	bannerBadLogin  = Banner{Text: "Invalid password", Error: true, TTL: 5 * time.Second}
)

// Saver is the write half of Client.
type Saver interface {
	Save(ctx context.Context, doc *portfolio.Document) error
}

type AdminOptions struct {
	Password string
	Debounce time.Duration

	// Production makes the session read-only: edits stay in memory and no
	// save is ever sent.
	Production bool

	// OnStatus receives every banner. It is called without the session lock
	// held, possibly from the auto-save timer goroutine.
	OnStatus func(Banner)

	Now    func() time.Time
	Logger *zap.Logger
}

// AdminSession holds the in-memory copy being edited and pushes it back to
// the API. Each edit restarts a single debounce timer, so a burst of edits
// becomes one save. Failed saves are reported, not retried; the edits stay
// in memory so SaveNow can try again.
type AdminSession struct {
	saver Saver
	opts  AdminOptions
	log   *zap.Logger

	mu       sync.Mutex
	doc      *portfolio.Document
	unlocked bool
	autoSave bool
	saving   bool
	// done is closed when the in-flight save finishes.
	done chan struct{}
	// pending is set when the timer fired during an in-flight save.
	pending bool
	timer   *time.Timer
	// gen invalidates timers that fired after being replaced.
	gen uint64
}

func NewAdminSession(s Saver, doc *portfolio.Document, opts AdminOptions) *AdminSession {
	if opts.Password == "" {
		opts.Password = DefaultAdminPassword
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminSession{
		saver:    s,
		opts:     opts,
		log:      log,
		doc:      doc.Clone(),
		autoSave: true,
	}
}

// Unlock opens the editing view if password matches.
func (a *AdminSession) Unlock(password string) error {
	ok := subtle.ConstantTimeCompare([]byte(password), []byte(a.opts.Password)) == 1

	a.mu.Lock()
	a.unlocked = a.unlocked || ok
	a.mu.Unlock()

	if !ok {
		a.log.Info("Failed admin unlock attempt")
		a.notify(bannerBadLogin)
		return ErrInvalidPassword
	}
	return nil
}

func (a *AdminSession) Unlocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unlocked
}

// Document returns a copy of the current in-memory document.
func (a *AdminSession) Document() *portfolio.Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Clone()
}

// Now is the clock used for new project and achievement IDs.
func (a *AdminSession) Now() time.Time {
	return a.opts.Now()
}

// Edit replaces the in-memory document with fn's result and, when auto-save
// is on, restarts the debounce timer.
//
//	s.Edit(func(d *portfolio.Document) *portfolio.Document { return d.SetPersonalInfo("name", "Y") })
func (a *AdminSession) Edit(fn func(*portfolio.Document) *portfolio.Document) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.unlocked {
		return ErrLocked
	}
	next := fn(a.doc.Clone())
	if next == nil {
		return nil
	}
	a.doc = next
	if a.autoSave {
		a.scheduleLocked()
	}
	return nil
}

func (a *AdminSession) AutoSave() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.autoSave
}

// SetAutoSave toggles auto-save. Turning it on schedules a save of the
// current document; turning it off drops any pending one.
func (a *AdminSession) SetAutoSave(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.autoSave == on {
		return
	}
	a.autoSave = on
	if on && a.unlocked {
		a.scheduleLocked()
	} else {
		a.cancelLocked()
	}
}

// SaveNow saves immediately, skipping the debounce. It works whether or not
// auto-save is enabled. If a save is already running, SaveNow waits for it
// and then saves the document as it is at that point.
func (a *AdminSession) SaveNow(ctx context.Context) error {
	for {
		a.mu.Lock()
		if !a.saving {
			snapshot, err := a.beginLocked()
			if err == nil {
				a.cancelLocked()
			}
			a.mu.Unlock()
			if err != nil {
				return err
			}
			return a.finish(a.saver.Save(ctx, snapshot), false)
		}
		wait := a.done
		a.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops any pending auto-save.
func (a *AdminSession) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

func (a *AdminSession) scheduleLocked() {
	if a.opts.Production {
		return
	}
	a.cancelLocked()
	gen := a.gen
	a.timer = time.AfterFunc(a.opts.Debounce, func() { a.fire(gen) })
}

func (a *AdminSession) cancelLocked() {
	a.gen++
	a.pending = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *AdminSession) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || !a.autoSave {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	if a.saving {
		a.pending = true
		a.mu.Unlock()
		return
	}
	snapshot, err := a.beginLocked()
	a.mu.Unlock()
	if err != nil {
		return
	}
	a.finish(a.saver.Save(context.Background(), snapshot), true)
}

// beginLocked claims the single save slot and snapshots the document.
func (a *AdminSession) beginLocked() (*portfolio.Document, error) {
	switch {
	case !a.unlocked:
		return nil, ErrLocked
	case a.opts.Production:
		return nil, ErrReadOnly
	}
	a.saving = true
	a.done = make(chan struct{})
	return a.doc.Clone(), nil
}

// finish releases the save slot, reschedules a save the timer queued
// meanwhile, and reports the outcome.
func (a *AdminSession) finish(err error, auto bool) error {
	a.mu.Lock()
	a.saving = false
	close(a.done)
	if a.pending && a.autoSave {
		a.scheduleLocked()
	}
	a.mu.Unlock()

	switch {
	case err == nil && auto:
		a.notify(bannerAutoSaved)
	case err == nil:
		a.notify(bannerSaved)
	case errors.Is(err, ErrNetwork):
		a.log.Warn("Auto-save error", zap.Error(err))
		a.notify(bannerOffline)
	default:
		a.log.Warn("Failed to save portfolio data", zap.Error(err))
		a.notify(bannerFailed)
	}
	return err
}

func (a *AdminSession) notify(b Banner) {
	if a.opts.OnStatus != nil {
		a.opts.OnStatus(b)
	}
}
