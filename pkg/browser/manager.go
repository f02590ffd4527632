package browser

import (
	"fmt"
	"sync"

	"github.com/talentloop/linkscout/pkg/logging"
)

// SessionManager owns the single browser session for the process. The
// session is launched lazily on first acquire, reused by every subsequent
// command, and torn down on release or shutdown.
type SessionManager struct {
	mu       sync.Mutex
	launcher Launcher
	driver   Driver
	log      *logging.Logger
}

// NewSessionManager creates a session manager around the given launcher.
func NewSessionManager(launcher Launcher) *SessionManager {
	log, _ := logging.NewLogger("session")
	return &SessionManager{
		launcher: launcher,
		log:      log,
	}
}

// Acquire returns the live driver, launching the browser if no session
// exists yet. Repeated calls within the session lifetime return the same
// driver. Launch failure is returned to the caller; the next Acquire will
// attempt a fresh launch.
func (m *SessionManager) Acquire() (Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver != nil {
		return m.driver, nil
	}

	m.log.Infof("Launching browser session")
	driver, err := m.launcher()
	if err != nil {
		m.log.Errorf("Browser launch failed: %v", err)
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	m.driver = driver
	m.log.Infof("Browser session ready")
	return m.driver, nil
}

// Active reports whether a session is currently live.
func (m *SessionManager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.driver != nil
}

// Release closes the browser and discards the session. Safe to call when
// no session exists.
func (m *SessionManager) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver == nil {
		return nil
	}

	m.log.Infof("Closing browser session")
	err := m.driver.Close()
	m.driver = nil
	if err != nil {
		m.log.Errorf("Browser close reported error: %v", err)
		return err
	}
	return nil
}
