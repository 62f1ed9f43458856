// Package session holds the per-page-session state: one bus, one
// coordinator, one instance of every view, and the mutex that serializes
// all access to them. The bus and views are written for cooperative
// single-threaded use; the session lock is what provides that guarantee
// to concurrent HTTP handlers.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/coordinator"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
	"github.com/leavedesk/leavedesk/internal/core/views"
	"github.com/leavedesk/leavedesk/internal/push"
)

// Session is one user's page session. Every field is owned by the
// session lock; callers go through Do.
type Session struct {
	ID         string
	EmployeeID string

	Bus         *bus.Bus
	Coordinator *coordinator.Coordinator
	Push        *push.Hub

	MyRequests      *views.MyRequestsView
	TeamRequests    *views.TeamRequestsView
	TreatedLog      *views.TreatedLogView
	Calendar        *views.CalendarView
	Detail          *views.RequestDetailView
	Editor          *views.RequestEditorView
	TeamDashboard   *views.TeamDashboardView
	BalanceOverview *views.BalanceOverviewView
	MyHistory       *views.BalanceHistoryView
	HRBalances      *views.HRBalancesView
	HRHistory       *views.BalanceHistoryView
	HRHolidays      *views.HRHolidaysView
	HRAbsences      *views.HRAbsencesView
	Policy          *views.PolicySettingsView

	mu         sync.Mutex
	lastActive time.Time
	closed     bool
}

func newSession(gw ports.Gateway, employeeID string, scope domain.CalendarScope, logger *slog.Logger) *Session {
	id := uuid.NewString()
	logger = logger.With(slog.String("session_id", id))

	b := bus.New(logger)
	hub := push.NewHub(logger)
	go hub.Run()

	s := &Session{
		ID:          id,
		EmployeeID:  employeeID,
		Bus:         b,
		Coordinator: coordinator.New(b, scope, logger),
		Push:        hub,

		MyRequests:      views.NewMyRequestsView(gw.LeaveQueries, gw.LeaveCommands, b, hub, logger),
		TeamRequests:    views.NewTeamRequestsView(gw.LeaveQueries, gw.LeaveCommands, b, hub, logger),
		TreatedLog:      views.NewTreatedLogView(gw.LeaveQueries, b, logger),
		Calendar:        views.NewCalendarView(gw.LeaveQueries, gw.HolidayQueries, b, scope, logger),
		Detail:          views.NewRequestDetailView(gw.LeaveQueries, gw.Attachments, b, hub, logger),
		Editor:          views.NewRequestEditorView(gw, b, hub, employeeID, logger),
		TeamDashboard:   views.NewTeamDashboardView(gw.LeaveQueries, b, logger),
		BalanceOverview: views.NewBalanceOverviewView(gw.BalanceQueries, b, logger),
		MyHistory:       views.NewBalanceHistoryView(gw.BalanceQueries, b, "", logger),
		HRBalances:      views.NewHRBalancesView(gw.BalanceQueries, gw.BalanceCommands, b, hub, logger),
		HRHistory:       views.NewBalanceHistoryView(gw.BalanceQueries, b, views.ScopeAll, logger),
		HRHolidays:      views.NewHRHolidaysView(gw.HolidayQueries, gw.HolidayCommands, hub, logger),
		HRAbsences:      views.NewHRAbsencesView(gw.LeaveQueries, b, logger),
		Policy:          views.NewPolicySettingsView(gw.Policy, hub, logger),

		lastActive: time.Now(),
	}
	return s
}

// Do runs fn with the session lock held, refreshing the idle timestamp.
// Handlers perform every view interaction inside one Do call so that bus
// cascades triggered by the interaction complete atomically.
func (s *Session) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.lastActive = time.Now()
	fn()
}

// IdleSince reports the time of the last interaction.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.MyRequests.Close()
	s.TeamRequests.Close()
	s.TreatedLog.Close()
	s.Calendar.Close()
	s.Detail.Close()
	s.TeamDashboard.Close()
	s.BalanceOverview.Close()
	s.MyHistory.Close()
	s.HRBalances.Close()
	s.HRHistory.Close()
	s.HRAbsences.Close()
	s.Coordinator.Close()
	s.Push.Close()
}

// Manager tracks live sessions and prunes idle ones.
type Manager struct {
	gateway ports.Gateway
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager builds a session manager on the shared gateway.
func NewManager(gw ports.Gateway, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		gateway:  gw,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new page session mounted at the given calendar scope.
func (m *Manager) Create(employeeID string, scope domain.CalendarScope) *Session {
	s := newSession(m.gateway, employeeID, scope, m.logger)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.logger.Info("session created",
		slog.String("session_id", s.ID),
		slog.String("scope", string(scope)))
	return s
}

// Get resolves a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

// Close ends one session, detaching its views and sockets.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.close()
		m.logger.Info("session closed", slog.String("session_id", id))
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// PruneIdle closes every session idle for longer than maxIdle and returns
// how many were closed.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.close()
	}
	if len(stale) > 0 {
		m.logger.Info("pruned idle sessions", slog.Int("count", len(stale)))
	}
	return len(stale)
}

// RunPruner prunes on an interval until ctx is cancelled.
func (m *Manager) RunPruner(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.PruneIdle(maxIdle)
		}
	}
}
