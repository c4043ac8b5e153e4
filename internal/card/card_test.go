package card

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hass-reminders-tui/internal/config"
	"hass-reminders-tui/internal/hass"
)

const testListEntity = "reminders.user_reminders_glob_herman"

func registryStates(listLastChanged time.Time) []hass.EntityState {
	return []hass.EntityState{
		{
			EntityID: "person.glob_herman",
			State:    "home",
			Attributes: map[string]interface{}{
				"friendly_name": "Glob Herman",
				"user_id":       "u1",
			},
		},
		{
			EntityID:    testListEntity,
			State:       "2",
			LastChanged: listLastChanged,
		},
	}
}

func newTestModel() *Model {
	cfg := config.DefaultConfig()
	cfg.UI.Notifications = false
	m := New(hass.NewClient("http://example.invalid", "t"), cfg)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestNoActionBeforeFirstRegistryPoll(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Error("a refresh before the first registry poll must not issue a read")
	}

	if cmd := m.deleteReminder("x"); cmd != nil {
		t.Error("a delete before the first registry poll must be a no-op")
	}
	m.openAdd()
	if m.draft != nil {
		t.Error("the add dialog must not open before the first registry poll")
	}
}

func TestEmptyRefreshRendersEmptyNotError(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})
	if !m.sync.Binding().Resolved() {
		t.Fatalf("binding did not resolve: %+v", m.sync.Binding())
	}

	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{}})

	if m.sync.Status() != StatusReady {
		t.Fatalf("status = %v, want ready", m.sync.Status())
	}
	view := m.View()
	if !strings.Contains(view, "No reminders") {
		t.Errorf("expected the empty view, got:\n%s", view)
	}
	if strings.Contains(view, "Failed") {
		t.Errorf("an empty list must not render as an error:\n%s", view)
	}
}

func TestUnresolvedBindingSurfacesItsMessage(t *testing.T) {
	m := newTestModel()

	// Registry knows the person but not the derived list entity.
	m.Update(statesMsg{states: registryStates(time.Time{})[:1]})

	if m.sync.Binding().Status != BindingNotFound {
		t.Fatalf("binding = %+v", m.sync.Binding())
	}
	view := m.View()
	if !strings.Contains(view, "Glob Herman") {
		t.Error("the view must name the display name that could not be matched")
	}
	// The missing-list message renders boxed like the error view, not as an
	// empty-list hint.
	if !strings.Contains(view, "╭") {
		t.Errorf("the missing-list message must render in the error box:\n%s", view)
	}
}

func TestStateChangeWhileLoadingIssuesNoSecondRequest(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	// First poll resolves the binding and puts a refresh in flight.
	m.Update(statesMsg{states: registryStates(t0)})
	if m.sync.Status() != StatusLoading {
		t.Fatalf("status = %v, want loading", m.sync.Status())
	}

	// The bound list's last_changed bumps before the read completes.
	_, cmd := m.Update(statesMsg{states: registryStates(t0.Add(time.Minute))})
	if cmd != nil {
		t.Error("a second request must not be issued while one is outstanding")
	}

	// Once the read completes, the next bump triggers a reload again.
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{}})
	_, cmd = m.Update(statesMsg{states: registryStates(t0.Add(2 * time.Minute))})
	if cmd == nil {
		t.Error("a bump after completion must trigger a reload")
	}
}

func TestUnrelatedStateChurnDoesNotReload(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{}})

	churned := append(registryStates(t0), hass.EntityState{
		EntityID: "light.kitchen", State: "on", LastChanged: time.Now(),
	})
	_, cmd := m.Update(statesMsg{states: churned})
	if cmd != nil {
		t.Error("unrelated entity churn must not trigger a reload")
	}
}

func TestFailedDeleteShowsErrorAndStillReconciles(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{
		{ID: "x", Summary: "doomed", Due: "2026-09-01T10:00:00"},
	}})

	_, cmd := m.Update(mutationMsg{op: "delete", err: errors.New("service call rejected")})

	if !strings.Contains(m.cmdErr, "service call rejected") {
		t.Errorf("top-level error not set, got %q", m.cmdErr)
	}
	if !strings.Contains(m.View(), "service call rejected") {
		t.Error("the error must be visible at the top level")
	}
	if cmd == nil {
		t.Error("a reconciling refresh must still be attempted after a failed delete")
	}
}

func TestSuccessfulMutationClearsBannerAndRefreshes(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{}})
	m.cmdErr = "Failed to delete reminder: old news"

	_, cmd := m.Update(mutationMsg{op: "update"})

	if m.cmdErr != "" {
		t.Errorf("banner not cleared: %q", m.cmdErr)
	}
	if cmd == nil {
		t.Error("a refresh must follow every mutation")
	}
}

func TestSessionChangeRebindsAndDropsStaleReads(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})

	// A different user signs in while the first read is still in flight.
	other := []hass.EntityState{
		{
			EntityID: "person.pat_smith",
			Attributes: map[string]interface{}{
				"friendly_name": "Pat Smith",
				"user_id":       "u2",
			},
		},
		{EntityID: "reminders.user_reminders_pat_smith", State: "0", LastChanged: t0},
	}
	m.Update(statesMsg{states: other})

	if got := m.sync.Binding().EntityID; got != "reminders.user_reminders_pat_smith" {
		t.Fatalf("binding = %q", got)
	}

	// The old binding's response arrives late and must be discarded.
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{
		{ID: "stale", Summary: "old", Due: "2026-09-01T10:00:00"},
	}})
	if len(m.sync.Snapshot()) != 0 {
		t.Error("a stale response for an old binding must not be applied")
	}
}

func TestSaveEditClosesDialogAndSubmitsDraft(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})
	rem := hass.Reminder{ID: "a1", Summary: "Water plants", Due: "2026-09-15T18:30:00"}
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{rem}})

	m.openEdit(rem)
	if m.draft == nil {
		t.Fatal("dialog did not open")
	}

	cmd := m.saveEdit()
	if cmd == nil {
		t.Fatal("save must issue an update request")
	}
	if m.draft != nil {
		t.Error("the dialog must close on save")
	}
}

func TestSaveEditInvalidDueKeepsDialogOpen(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	m.Update(statesMsg{states: registryStates(t0)})
	rem := hass.Reminder{ID: "a1", Summary: "x", Due: "garbage"}
	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{rem}})

	m.openEdit(rem)
	if cmd := m.saveEdit(); cmd != nil {
		t.Error("no request may be issued for an unparseable due")
	}
	if m.draft == nil {
		t.Error("the dialog stays open when nothing was submitted")
	}
	if !strings.Contains(m.cmdErr, "Invalid due value") {
		t.Errorf("banner = %q", m.cmdErr)
	}
}

func TestMutationsNoOpWithoutBinding(t *testing.T) {
	m := newTestModel()

	// No session at all: nothing is bound.
	m.Update(statesMsg{states: nil})

	if cmd := m.deleteReminder("x"); cmd != nil {
		t.Error("delete without a binding must be a no-op")
	}
	m.openAdd()
	if m.draft != nil {
		t.Error("the add dialog must not open without a binding")
	}
}

func TestPreferredHeightMonotonicWithFloor(t *testing.T) {
	m := newTestModel()
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	m.Update(statesMsg{states: registryStates(t0)})

	m.Update(remindersMsg{entityID: testListEntity, items: []hass.Reminder{}})
	floor := m.PreferredHeight()
	if floor < 1 {
		t.Fatal("height hint must have a positive floor")
	}

	prev := floor
	items := []hass.Reminder{}
	for i := 0; i < 6; i++ {
		items = append(items, hass.Reminder{ID: string(rune('a' + i)), Due: "2026-09-01T10:00:00"})
		m.sync.Refresh(m.client)
		m.Update(remindersMsg{entityID: testListEntity, items: items})
		h := m.PreferredHeight()
		if h < prev {
			t.Fatalf("height hint shrank from %d to %d at %d items", prev, h, len(items))
		}
		prev = h
	}
	if prev <= floor {
		t.Error("height hint must grow with the reminder count")
	}
}
