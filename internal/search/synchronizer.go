package search

import (
	"net/url"
	"sync"
	"time"
)

// DefaultWait is the quiet window after the last keystroke before the URL is
// updated.
const DefaultWait = 300 * time.Millisecond

// Navigator replaces the current URL in place, without adding a history entry.
type Navigator interface {
	Replace(url string)
}

// Synchronizer mirrors a free-text search field into the query string of the
// current URL. Input is debounced: each keystroke replaces the pending timer,
// so only the last term of a burst is applied. At most one timer is ever
// outstanding.
type Synchronizer struct {
	nav    Navigator
	path   string
	params url.Values
	wait   time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func New(nav Navigator, path string, params url.Values) *Synchronizer {
	return NewWithWait(nav, path, params, DefaultWait)
}

func NewWithWait(nav Navigator, path string, params url.Values, wait time.Duration) *Synchronizer {
	return &Synchronizer{
		nav:    nav,
		path:   path,
		params: params,
		wait:   wait,
	}
}

func (s *Synchronizer) OnInput(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.wait, func() {
		s.apply(term)
	})
}

// Close cancels any pending update. Call on teardown of the owning view.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Synchronizer) apply(term string) {
	params := url.Values{}
	for key, values := range s.params {
		params[key] = append([]string(nil), values...)
	}

	// Every new search starts from the first page.
	params.Set("page", "1")

	if term != "" {
		params.Set("query", term)
	} else {
		params.Del("query")
	}

	s.nav.Replace(s.path + "?" + params.Encode())
}
