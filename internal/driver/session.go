package driver

import (
	"sync"
	"time"

	"github.com/simplecom/storefront-smoke/internal/browser"
	"github.com/simplecom/storefront-smoke/internal/logging"
)

// LocalTarget is the Target of a session running on this machine.
const LocalTarget = "local"

// Session is one running browser. It is owned by whoever acquired it; page
// objects only borrow it.
type Session struct {
	ID       string
	Target   string
	Browser  Kind
	Viewport Viewport
	// WaitUnit is the duration of one unit of a page wait budget.
	WaitUnit time.Duration
	Driver   browser.Driver
	Logger   logging.Logger

	mu       sync.Mutex
	released bool
}

// Wait returns an explicit wait of the given number of units, polling every
// half unit.
func (s *Session) Wait(units int) *browser.Wait {
	return browser.NewWait(s.Driver, time.Duration(units)*s.WaitUnit, s.WaitUnit/2)
}

// Logf logs through the session's logger, tagged with the session ID.
func (s *Session) Logf(format string, args ...interface{}) {
	logging.OrDefault(s.Logger).Printf("[session %s] "+format, append([]interface{}{s.ID}, args...)...)
}

// Released reports whether Release has already run for this session.
func (s *Session) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// markReleased flips the released flag and reports whether this call did it.
func (s *Session) markReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return false
	}
	s.released = true
	return true
}
