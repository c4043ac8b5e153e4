package session

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"hass-reminders-tui/internal/hass"
)

func personState(name, userID string) hass.EntityState {
	return hass.EntityState{
		EntityID: "person." + name,
		State:    "home",
		Attributes: map[string]interface{}{
			"friendly_name": name,
			"user_id":       userID,
		},
	}
}

func TestNewPicksSolePerson(t *testing.T) {
	snap := New([]hass.EntityState{personState("Glob Herman", "u1")}, "", language.English)

	if !snap.HasUser() {
		t.Fatal("expected a user")
	}
	if snap.UserID != "u1" || snap.DisplayName != "Glob Herman" {
		t.Errorf("unexpected identity %q/%q", snap.UserID, snap.DisplayName)
	}
}

func TestNewAmbiguousWithoutConfiguredUser(t *testing.T) {
	states := []hass.EntityState{
		personState("Glob Herman", "u1"),
		personState("Pat Smith", "u2"),
	}

	if snap := New(states, "", language.English); snap.HasUser() {
		t.Errorf("expected no user for ambiguous registry, got %q", snap.DisplayName)
	}

	snap := New(states, "pat smith", language.English)
	if snap.UserID != "u2" {
		t.Errorf("expected configured user to win, got %q", snap.UserID)
	}
}

func TestSameUser(t *testing.T) {
	a := New([]hass.EntityState{personState("Glob Herman", "u1")}, "", language.English)
	b := New([]hass.EntityState{personState("Glob Herman", "u1"), {EntityID: "light.kitchen"}}, "", language.English)
	c := New([]hass.EntityState{personState("Glob Herman", "u9")}, "", language.English)

	if !SameUser(a, b) {
		t.Error("unrelated registry churn must not count as a session change")
	}
	if SameUser(a, c) {
		t.Error("a different user id must count as a session change")
	}
}

func TestEntityChanged(t *testing.T) {
	const list = "reminders.user_reminders_glob_herman"
	t0 := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	mk := func(state string, changed time.Time) Snapshot {
		return New([]hass.EntityState{
			personState("Glob Herman", "u1"),
			{EntityID: list, State: state, LastChanged: changed},
			{EntityID: "light.kitchen", State: "on", LastChanged: t0},
		}, "", language.English)
	}

	base := mk("2", t0)

	if EntityChanged(base, mk("2", t0), list) {
		t.Error("identical stamps must not report a change")
	}
	if !EntityChanged(base, mk("3", t0), list) {
		t.Error("a state value change must be detected")
	}
	if !EntityChanged(base, mk("2", t0.Add(time.Minute)), list) {
		t.Error("a last_changed bump must be detected")
	}
	if !EntityChanged(base, New([]hass.EntityState{personState("Glob Herman", "u1")}, "", language.English), list) {
		t.Error("entity disappearance must be detected")
	}
}
