package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/pagedigest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the number of pages rendered by one Chrome process
// before it is replaced. Chrome's resident memory grows with every page and
// never returns to baseline, so long ingest runs restart it periodically.
const DefaultRecycleAfter = 75

// instance is one launched Chrome process.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int64
	inFlight int
	retired  bool
}

func (in *instance) shutdown() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// Session hands out browser tabs from a headless Chrome process and
// replaces the process after RecycleAfter tabs. A retired process stays
// alive until its last tab is released.
//
// Session is safe for concurrent use.
type Session struct {
	mu           sync.Mutex
	current      *instance
	recycleAfter int64
	generation   int
	closed       bool
}

// NewSession launches Chrome. recycleAfter <= 0 uses DefaultRecycleAfter.
// Close must be called when the Session is no longer needed.
func NewSession(recycleAfter int64) (*Session, error) {
	if recycleAfter <= 0 {
		recycleAfter = DefaultRecycleAfter
	}
	s := &Session{recycleAfter: recycleAfter}
	in, err := launch()
	if err != nil {
		return nil, err
	}
	s.current = in
	s.generation = 1
	return s, nil
}

// Acquire opens a blank tab. The returned release function closes the tab
// and must be called exactly once.
func (s *Session) Acquire() (*rod.Page, func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, pagedigest.Errorf(pagedigest.EINVALID, "browser session is closed")
	}
	if s.current.rendered >= s.recycleAfter {
		s.recycle()
	}
	in := s.current
	in.rendered++
	in.inFlight++
	s.mu.Unlock()

	page, err := in.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		s.release(in)
		return nil, nil, fmt.Errorf("opening tab: %w", err)
	}

	var once sync.Once
	return page, func() {
		once.Do(func() {
			_ = page.Close()
			s.release(in)
		})
	}, nil
}

// Generation reports how many Chrome processes the session has launched.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// LauncherPID returns the process ID of the current Chrome launcher.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.launcher.PID()
}

// Close shuts Chrome down. Tabs still open are closed with it.
// Close is safe to call multiple times.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.current.shutdown()
	s.current = nil
	return err
}

// recycle swaps in a fresh process. A failed launch keeps the old one.
// Must be called with mu held.
func (s *Session) recycle() {
	next, err := launch()
	if err != nil {
		return
	}
	old := s.current
	s.current = next
	s.generation++
	old.retired = true
	if old.inFlight == 0 {
		_ = old.shutdown()
	}
}

func (s *Session) release(in *instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in.inFlight--
	if in.retired && in.inFlight == 0 {
		_ = in.shutdown()
	}
}

// launch starts headless Chrome with flags that keep background tabs from
// being throttled during concurrent renders.
func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}
