package card

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"hass-reminders-tui/internal/config"
	"hass-reminders-tui/internal/hass"
	"hass-reminders-tui/internal/session"
	"hass-reminders-tui/internal/styles"
)

// Model is the Bubble Tea model for the reminder card.
type Model struct {
	client *hass.Client
	cfg    *config.Config
	locale language.Tag

	// Last session snapshot, kept only to diff the fields that matter
	// against the next one.
	snap     session.Snapshot
	haveSnap bool

	sync  *SyncEngine
	draft *EditDraft

	cursor int
	width  int
	height int

	// Screen regions recorded at render time for mouse hit testing.
	listTop   int
	dialogBox box

	spinner spinner.Model
	keymap  Keymap

	// cmdErr is the top-level error banner for failed mutations; it is
	// replaced by the next failure and cleared by the next success.
	cmdErr string

	notified map[string]bool

	pollEvery    time.Duration
	refreshEvery time.Duration

	now func() time.Time
}

type box struct {
	x, y, w, h int
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// New creates a card model.
func New(client *hass.Client, cfg *config.Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	locale, err := language.Parse(cfg.Card.Locale)
	if err != nil {
		locale = language.English
	}

	return &Model{
		client:       client,
		cfg:          cfg,
		locale:       locale,
		sync:         NewSyncEngine(),
		spinner:      s,
		keymap:       DefaultKeymap(),
		notified:     make(map[string]bool),
		pollEvery:    time.Duration(cfg.Card.PollSeconds) * time.Second,
		refreshEvery: time.Duration(cfg.Card.RefreshSeconds) * time.Second,
		now:          time.Now,
	}
}

// PreferredHeight reports an approximate display-size hint: it grows with the
// reminder count and never drops below the chrome needed for the empty states.
func (m *Model) PreferredHeight() int {
	rows := len(m.sync.Snapshot())
	if h := rows + 6; h > 8 {
		return h
	}
	return 8
}

// Init starts the spinner, the first registry poll and both timers.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchStates(),
		m.schedulePoll(),
		m.scheduleRefresh(),
	)
}

func (m *Model) fetchStates() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		states, err := client.GetStates()
		return statesMsg{states: states, err: err}
	}
}

func (m *Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.pollEvery, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m *Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.sync.Status() != StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollTickMsg:
		return m, tea.Batch(m.fetchStates(), m.schedulePoll())

	case refreshTickMsg:
		cmds := []tea.Cmd{m.scheduleRefresh()}
		if cmd := m.sync.Refresh(m.client); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case statesMsg:
		return m.handleStates(msg)

	case remindersMsg:
		m.sync.Apply(msg)
		m.clampCursor()
		if m.sync.Status() == StatusReady && m.cfg.UI.Notifications {
			if cmds := overdueNotifications(m.sync.Snapshot(), m.now(), m.notified); len(cmds) > 0 {
				return m, tea.Batch(cmds...)
			}
		}
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.cmdErr = fmt.Sprintf("Failed to %s reminder: %v", msg.op, msg.err)
		} else {
			m.cmdErr = ""
		}
		// Reconcile with the backend regardless of the outcome.
		cmds := []tea.Cmd{}
		if cmd := m.sync.Refresh(m.client); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case notifiedMsg:
		// Notification failures are not worth surfacing.
		return m, nil

	case tea.KeyMsg:
		if m.draft != nil {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// handleStates folds a registry poll into the session, re-resolving the
// binding only when the user identity changed and reloading only when the
// bound entity's observable state changed.
func (m *Model) handleStates(msg statesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.cmdErr = fmt.Sprintf("Failed to poll state registry: %v", msg.err)
		return m, nil
	}

	next := session.New(msg.states, m.cfg.Card.User, m.locale)
	var cmds []tea.Cmd

	switch {
	case !m.haveSnap || !session.SameUser(m.snap, next):
		m.sync.Rebind(Resolve(next, m.cfg.Card.EntityID))
		m.cursor = 0
		m.closeEdit()
		if cmd := m.sync.Refresh(m.client); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Tick)
		}
	case m.sync.Binding().Resolved() && session.EntityChanged(m.snap, next, m.sync.Binding().EntityID):
		if cmd := m.sync.Refresh(m.client); cmd != nil {
			cmds = append(cmds, cmd, m.spinner.Tick)
		}
	}

	m.snap = next
	m.haveSnap = true
	return m, tea.Batch(cmds...)
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.sync.Snapshot()

	switch msg.String() {
	case "ctrl+c", m.keymap.Quit.Key:
		return m, tea.Quit

	case m.keymap.Up.Key, "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case m.keymap.Down.Key, "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case m.keymap.Top.Key:
		m.cursor = 0

	case m.keymap.Bottom.Key:
		if len(items) > 0 {
			m.cursor = len(items) - 1
		}

	case m.keymap.Refresh.Key:
		if cmd := m.sync.Refresh(m.client); cmd != nil {
			return m, tea.Batch(cmd, m.spinner.Tick)
		}

	case m.keymap.Edit.Key:
		if m.cursor < len(items) {
			m.openEdit(items[m.cursor])
		}

	case m.keymap.Add.Key:
		m.openAdd()

	case m.keymap.Delete.Key:
		if m.cursor < len(items) {
			return m, m.deleteReminder(items[m.cursor].ID)
		}

	case m.keymap.Yank.Key:
		if m.cursor < len(items) {
			// Best effort; clipboard access is absent on some terminals.
			_ = clipboard.WriteAll(items[m.cursor].Summary)
		}
	}

	return m, nil
}

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case m.keymap.Cancel.Key:
		m.closeEdit()
		return m, nil
	case m.keymap.Save.Key, "enter":
		return m, m.saveEdit()
	case m.keymap.Next.Key:
		m.draft.NextField()
		return m, nil
	case m.keymap.Prev.Key:
		m.draft.PrevField()
		return m, nil
	}
	return m, m.draft.Update(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// Clicking outside the dialog body dismisses it without saving.
	if m.draft != nil {
		if !m.dialogBox.contains(msg.X, msg.Y) {
			m.closeEdit()
		}
		return m, nil
	}

	items := m.sync.Snapshot()
	row := msg.Y - m.listTop
	if row < 0 || row >= len(items) {
		return m, nil
	}
	m.cursor = row

	// The trailing glyph column is the delete affordance; the row body
	// opens the edit dialog.
	if msg.X >= m.width-deleteHitWidth {
		return m, m.deleteReminder(items[row].ID)
	}
	m.openEdit(items[row])
	return m, nil
}

func (m *Model) clampCursor() {
	if n := len(m.sync.Snapshot()); m.cursor >= n {
		if n == 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	}
}

// openEdit captures a draft seeded from the reminder's current summary and
// due timestamp.
func (m *Model) openEdit(r hass.Reminder) {
	m.draft = NewEditDraft(r)
}

// openAdd opens the dialog with an empty draft.
func (m *Model) openAdd() {
	if !m.sync.Binding().Resolved() {
		return
	}
	m.draft = NewCreateDraft(m.now())
}

// closeEdit discards the draft unconditionally.
func (m *Model) closeEdit() {
	m.draft = nil
}

// saveEdit submits the draft and closes the dialog. A failed save surfaces
// in the error banner; retrying means reopening the dialog against refreshed
// data. An unparseable due string keeps the dialog open instead, since no
// request was issued.
func (m *Model) saveEdit() tea.Cmd {
	if m.draft == nil {
		return nil
	}
	b := m.sync.Binding()
	if !b.Resolved() {
		return nil
	}

	due, err := m.draft.DueTime()
	if err != nil {
		m.cmdErr = fmt.Sprintf("Invalid due value %q (want %s)", m.draft.Due.Value(), DraftDueLayout)
		return nil
	}

	summary := m.draft.Summary.Value()
	target := m.draft.TargetID
	lastFired := m.draft.LastFired
	entityID := b.EntityID
	client := m.client
	user := m.snap.DisplayName
	m.closeEdit()

	return func() tea.Msg {
		if target == "" {
			return mutationMsg{op: "create", err: client.AddReminderItem(entityID, summary, due, user)}
		}
		return mutationMsg{op: "update", err: client.UpdateReminderItem(entityID, target, summary, due, lastFired)}
	}
}

// deleteReminder removes exactly the given id from the bound list.
func (m *Model) deleteReminder(id string) tea.Cmd {
	b := m.sync.Binding()
	if !b.Resolved() {
		return nil
	}
	entityID := b.EntityID
	client := m.client
	return func() tea.Msg {
		return mutationMsg{op: "delete", err: client.RemoveReminderItems(entityID, []string{id})}
	}
}
