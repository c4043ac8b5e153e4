package card

import (
	"errors"
	"strings"
	"testing"

	"hass-reminders-tui/internal/hass"
)

func resolvedBinding() Binding {
	return Binding{EntityID: "reminders.user_reminders_glob_herman", Status: BindingResolved}
}

func TestFreshEngineIssuesNoReadBeforeFirstBinding(t *testing.T) {
	s := NewSyncEngine()

	if s.Binding().Resolved() {
		t.Fatal("a fresh engine must not report a resolved binding")
	}
	if cmd := s.Refresh(hass.NewClient("http://example.invalid", "t")); cmd != nil {
		t.Error("no read may be issued before a binding is installed")
	}
}

func TestSyncUnauthorizedReadPointsAtTheToken(t *testing.T) {
	s := NewSyncEngine()
	s.Rebind(resolvedBinding())
	s.Refresh(hass.NewClient("http://example.invalid", "t"))

	s.Apply(remindersMsg{
		entityID: resolvedBinding().EntityID,
		err:      &hass.APIError{StatusCode: 401, Message: "Unauthorized"},
	})

	if s.Status() != StatusError {
		t.Fatalf("status = %v, want error", s.Status())
	}
	if !strings.Contains(s.ErrorMessage(), "token") {
		t.Errorf("a 401 must point at the token, got %q", s.ErrorMessage())
	}
}

func TestSyncUnresolvedBindingIsReadyAndEmpty(t *testing.T) {
	s := NewSyncEngine()
	s.Rebind(Binding{Status: BindingNotFound, Message: "no list"})

	if cmd := s.Refresh(nil); cmd != nil {
		t.Error("unresolved binding must not issue a read")
	}
	if s.Status() != StatusReady {
		t.Errorf("unresolved binding status = %v, want ready", s.Status())
	}
	if len(s.Snapshot()) != 0 {
		t.Error("unresolved binding must present an empty snapshot")
	}
}

func TestSyncCoalescesWhileInFlight(t *testing.T) {
	s := NewSyncEngine()
	s.Rebind(resolvedBinding())
	client := hass.NewClient("http://example.invalid", "t")

	if cmd := s.Refresh(client); cmd == nil {
		t.Fatal("first refresh must issue a read")
	}
	if s.Status() != StatusLoading {
		t.Fatalf("status = %v, want loading", s.Status())
	}
	if cmd := s.Refresh(client); cmd != nil {
		t.Error("a refresh requested while one is outstanding must coalesce")
	}
}

func TestSyncDiscardsStaleResponse(t *testing.T) {
	s := NewSyncEngine()
	s.Rebind(resolvedBinding())
	client := hass.NewClient("http://example.invalid", "t")
	s.Refresh(client)

	// The session switched bindings while the read was in flight.
	s.Rebind(Binding{EntityID: "reminders.user_reminders_pat_smith", Status: BindingResolved})
	s.Refresh(client)

	s.Apply(remindersMsg{
		entityID: "reminders.user_reminders_glob_herman",
		items:    []hass.Reminder{{ID: "stale", Summary: "old list", Due: "2026-09-01T10:00:00"}},
	})

	if s.Status() != StatusLoading {
		t.Errorf("stale response must be discarded, status = %v", s.Status())
	}
	if len(s.Snapshot()) != 0 {
		t.Error("stale items must not land in the cache")
	}
}

func TestSyncErrorReplacesCache(t *testing.T) {
	s := NewSyncEngine()
	s.Rebind(resolvedBinding())
	client := hass.NewClient("http://example.invalid", "t")

	s.Refresh(client)
	s.Apply(remindersMsg{
		entityID: resolvedBinding().EntityID,
		items:    []hass.Reminder{{ID: "a1", Summary: "x", Due: "2026-09-01T10:00:00"}},
	})
	if s.Status() != StatusReady || len(s.Snapshot()) != 1 {
		t.Fatalf("setup failed: %v / %d items", s.Status(), len(s.Snapshot()))
	}

	s.Refresh(client)
	s.Apply(remindersMsg{
		entityID: resolvedBinding().EntityID,
		err:      errors.New("connection refused"),
	})

	if s.Status() != StatusError {
		t.Fatalf("status = %v, want error", s.Status())
	}
	if !strings.Contains(s.ErrorMessage(), "connection refused") {
		t.Errorf("error message must embed the transport reason, got %q", s.ErrorMessage())
	}
	if len(s.Snapshot()) != 0 {
		t.Error("the error view must not keep stale data around")
	}
}

func TestSnapshotSortedStably(t *testing.T) {
	s := NewSyncEngine()
	s.Rebind(resolvedBinding())
	client := hass.NewClient("http://example.invalid", "t")
	s.Refresh(client)
	s.Apply(remindersMsg{
		entityID: resolvedBinding().EntityID,
		items: []hass.Reminder{
			{ID: "c", Summary: "third", Due: "2026-09-03T10:00:00"},
			{ID: "a1", Summary: "tie first", Due: "2026-09-01T10:00:00"},
			{ID: "bad", Summary: "no due", Due: "garbage"},
			{ID: "a2", Summary: "tie second", Due: "2026-09-01T10:00:00"},
		},
	})

	got := s.Snapshot()
	order := make([]string, len(got))
	for i, r := range got {
		order[i] = r.ID
	}

	want := []string{"a1", "a2", "c", "bad"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
