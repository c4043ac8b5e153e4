// Package main implements fakehass, an in-memory stand-in for a Home
// Assistant instance running the user_reminders integration. It exists for
// local development of the card: it serves the state registry, implements the
// reminders.* services and runs the due-firing sweep, so the card's polling,
// invalidation and mutation paths can be exercised without a real instance.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func main() {
	var (
		addr  string
		token string
		user  string
		seed  int
	)
	flag.StringVar(&addr, "addr", ":8123", "listen address")
	flag.StringVar(&token, "token", "dev-token", "expected bearer token")
	flag.StringVar(&user, "user", "Demo User", "person friendly name")
	flag.IntVar(&seed, "seed", 3, "number of seeded reminders")
	flag.Parse()

	s := newServer(user, token)
	s.seedReminders(seed)
	go s.schedulerLoop()

	log.Printf("fakehass listening on %s (user %q, list %s)", addr, user, s.listEntityID())
	log.Fatal(http.ListenAndServe(addr, s.router()))
}

type reminderItem struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Due       string `json:"due"`
	UserID    string `json:"user_id"`
	LastFired string `json:"last_fired"`
}

type entityState struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastChanged time.Time              `json:"last_changed"`
	LastUpdated time.Time              `json:"last_updated"`
}

type server struct {
	mu    sync.Mutex
	token string

	userID   string
	userName string

	reminders   map[string]*reminderItem
	arrival     []string
	listChanged time.Time
}

func newServer(userName, token string) *server {
	return &server{
		token:       token,
		userID:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		userName:    userName,
		reminders:   make(map[string]*reminderItem),
		listChanged: time.Now(),
	}
}

func slugify(name string) string {
	var sb strings.Builder
	last := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			last = false
		} else if !last {
			sb.WriteByte('_')
			last = true
		}
	}
	return strings.Trim(sb.String(), "_")
}

func (s *server) listEntityID() string {
	return "reminders.user_reminders_" + slugify(s.userName)
}

func (s *server) personEntityID() string {
	return "person." + slugify(s.userName)
}

func (s *server) seedReminders(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		uid := newUID()
		s.reminders[uid] = &reminderItem{
			ID:      uid,
			Summary: fmt.Sprintf("Seeded reminder %d", i+1),
			Due:     time.Now().Add(time.Duration(i-1) * 26 * time.Hour).Format(time.RFC3339),
			UserID:  s.userID,
		}
		s.arrival = append(s.arrival, uid)
	}
}

func newUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.authMiddleware)
	r.HandleFunc("/api/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/api/states", s.handleStates).Methods(http.MethodGet)
	r.HandleFunc("/api/states/{entityID}", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/api/services/{domain}/{service}", s.handleService).Methods(http.MethodPost)
	return r
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "API running."})
}

func (s *server) states() []entityState {
	now := time.Now()
	return []entityState{
		{
			EntityID: s.personEntityID(),
			State:    "home",
			Attributes: map[string]interface{}{
				"friendly_name": s.userName,
				"user_id":       s.userID,
			},
			LastChanged: now.Add(-time.Hour),
			LastUpdated: now.Add(-time.Hour),
		},
		{
			EntityID: s.listEntityID(),
			State:    fmt.Sprintf("%d", len(s.reminders)),
			Attributes: map[string]interface{}{
				"friendly_name": s.userName + "'s Reminders",
				"icon":          "mdi:check-circle-outline",
			},
			LastChanged: s.listChanged,
			LastUpdated: s.listChanged,
		},
	}
}

func (s *server) handleStates(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.states())
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	entityID := mux.Vars(r)["entityID"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.states() {
		if st.EntityID == entityID {
			writeJSON(w, http.StatusOK, st)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Entity not found."})
}

type serviceRequest struct {
	EntityID  string   `json:"entity_id"`
	Summary   string   `json:"summary"`
	Due       string   `json:"due"`
	UID       string   `json:"uid"`
	UIDs      []string `json:"uids"`
	LastFired string   `json:"last_fired"`
	User      string   `json:"user"`
}

func (s *server) handleService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if vars["domain"] != "reminders" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Unknown domain."})
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.EntityID != s.listEntityID() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Entity not found."})
		return
	}

	_, wantResponse := r.URL.Query()["return_response"]

	switch vars["service"] {
	case "get_items":
		items := make([]reminderItem, 0, len(s.arrival))
		for _, uid := range s.arrival {
			if item, ok := s.reminders[uid]; ok {
				items = append(items, *item)
			}
		}
		if !wantResponse {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Service requires return_response."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"changed_states": []entityState{},
			"service_response": map[string]interface{}{
				s.listEntityID(): map[string]interface{}{"reminders": items},
			},
		})
		return

	case "add_item":
		if req.Summary == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "summary is required."})
			return
		}
		due := req.Due
		if due == "" {
			// The integration defaults a missing due to tomorrow 09:00.
			t := time.Now().AddDate(0, 0, 1)
			due = time.Date(t.Year(), t.Month(), t.Day(), 9, 0, 0, 0, t.Location()).Format(time.RFC3339)
		}
		uid := newUID()
		s.reminders[uid] = &reminderItem{ID: uid, Summary: req.Summary, Due: due, UserID: s.userID}
		s.arrival = append(s.arrival, uid)
		s.touch()

	case "update_item":
		item, ok := s.reminders[req.UID]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Item not found."})
			return
		}
		if req.Summary != "" {
			item.Summary = req.Summary
		}
		if req.Due != "" {
			item.Due = req.Due
		}
		item.LastFired = req.LastFired
		s.touch()

	case "remove_item":
		for _, uid := range req.UIDs {
			delete(s.reminders, uid)
		}
		s.touch()

	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Unknown service."})
		return
	}

	writeJSON(w, http.StatusOK, []entityState{})
}

func (s *server) touch() {
	s.listChanged = time.Now()
}

// schedulerLoop mimics the integration's due sweep: every 10 seconds, items
// past due whose last firing is over 24 hours old get last_fired stamped,
// which also bumps the list entity's last_changed. The card observes that
// bump and reloads.
func (s *server) schedulerLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for now := range ticker.C {
		s.mu.Lock()
		for _, item := range s.reminders {
			due, err := time.Parse(time.RFC3339, item.Due)
			if err != nil || due.After(now) {
				continue
			}
			if item.LastFired != "" {
				if fired, err := time.Parse(time.RFC3339, item.LastFired); err == nil && now.Sub(fired) < 24*time.Hour {
					continue
				}
			}
			log.Printf("firing reminder %s (%s)", item.ID, item.Summary)
			item.LastFired = now.Format(time.RFC3339)
			s.touch()
		}
		s.mu.Unlock()
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
