package card

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hass-reminders-tui/internal/hass"
)

// LoadStatus governs which view is rendered.
type LoadStatus int

const (
	StatusLoading LoadStatus = iota
	StatusError
	StatusReady
)

// SyncEngine owns the cached copy of the bound reminder list. The cache is
// replaced wholesale on every successful refresh and is never authoritative
// between refreshes; the backend mutates lists independently of this card.
type SyncEngine struct {
	binding  Binding
	status   LoadStatus
	errMsg   string
	items    []hass.Reminder
	inFlight bool
}

// NewSyncEngine returns an engine bound to nothing; the first registry poll
// installs a real binding, and until then no read may be issued.
func NewSyncEngine() *SyncEngine {
	return &SyncEngine{binding: NoSessionBinding(), status: StatusLoading}
}

// Binding returns the current list binding.
func (s *SyncEngine) Binding() Binding {
	return s.binding
}

// Status returns the current load status.
func (s *SyncEngine) Status() LoadStatus {
	return s.status
}

// ErrorMessage returns the message of the current error status.
func (s *SyncEngine) ErrorMessage() string {
	return s.errMsg
}

// Rebind installs a new binding and drops the cache. Any response still in
// flight for the previous binding will be discarded by its tag when it
// arrives.
func (s *SyncEngine) Rebind(b Binding) {
	s.binding = b
	s.inFlight = false
	s.items = nil
	s.errMsg = ""
	if b.Resolved() {
		s.status = StatusLoading
	} else {
		// Not an error: the binding carries its own message and the view
		// surfaces it from the empty state.
		s.status = StatusReady
	}
}

// Refresh issues a read for the bound list. While a refresh is in flight
// further triggers are coalesced into no-ops, so overlapping timer-driven and
// event-driven triggers never race on the cache.
func (s *SyncEngine) Refresh(client *hass.Client) tea.Cmd {
	if !s.binding.Resolved() {
		s.items = nil
		s.status = StatusReady
		return nil
	}
	if s.inFlight {
		return nil
	}
	s.inFlight = true
	s.status = StatusLoading
	entityID := s.binding.EntityID
	return func() tea.Msg {
		items, err := client.GetReminderItems(entityID)
		return remindersMsg{entityID: entityID, items: items, err: err}
	}
}

// Apply folds a completed refresh into the cache. Responses tagged with a
// binding other than the current one are stale and dropped. On failure the
// previously cached data is discarded; the view must show the error, not a
// stale list.
func (s *SyncEngine) Apply(msg remindersMsg) {
	if msg.entityID != s.binding.EntityID {
		return
	}
	s.inFlight = false
	if msg.err != nil {
		s.items = nil
		s.status = StatusError
		s.errMsg = loadErrorMessage(msg.err)
		return
	}
	s.items = msg.items
	s.status = StatusReady
	s.errMsg = ""
}

// loadErrorMessage maps a failed read to the text shown in the error view.
// Auth failures point at the config fix instead of echoing a raw status line.
func loadErrorMessage(err error) string {
	if apiErr, ok := hass.IsAPIError(err); ok {
		switch {
		case apiErr.IsUnauthorized():
			return "Home Assistant rejected the access token; check hass.token in the config"
		case apiErr.IsServerError():
			return fmt.Sprintf("Home Assistant error: %s", apiErr.Message)
		}
	}
	return fmt.Sprintf("Failed to load reminders: %v", err)
}

// Snapshot returns the cached reminders ordered by due timestamp ascending.
// The sort is stable: equal due values keep their arrival order, and items
// with an unparseable due sort last in arrival order.
func (s *SyncEngine) Snapshot() []hass.Reminder {
	due := make([]time.Time, len(s.items))
	parsed := make([]bool, len(s.items))
	for i, r := range s.items {
		if t, err := r.DueTime(); err == nil {
			due[i], parsed[i] = t, true
		}
	}
	idx := make([]int, len(s.items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if parsed[i] != parsed[j] {
			return parsed[i]
		}
		if !parsed[i] {
			return false
		}
		return due[i].Before(due[j])
	})
	out := make([]hass.Reminder, len(s.items))
	for k, i := range idx {
		out[k] = s.items[i]
	}
	return out
}
