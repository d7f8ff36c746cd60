package httphost

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sankey/pkg/dataview"
	"github.com/matzehuels/sankey/pkg/interact"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// markingHost is the host side of one browser session. It records every
// request for the current HTTP response and keeps the resulting marking.
type markingHost struct {
	interact.Recorder
	marked map[dataview.RowID]bool
}

func newMarkingHost() *markingHost {
	return &markingHost{marked: make(map[dataview.RowID]bool)}
}

func (h *markingHost) Mark(rows []dataview.RowID, mode interact.MarkMode) {
	h.Recorder.Mark(rows, mode)
	if mode == interact.Replace {
		clear(h.marked)
	}
	for _, id := range rows {
		h.marked[id] = true
	}
}

func (h *markingHost) ClearMarking() {
	h.Recorder.ClearMarking()
	clear(h.marked)
}

// Marked returns the marked row ids in ascending order.
func (h *markingHost) Marked() []dataview.RowID {
	out := make([]dataview.RowID, 0, len(h.marked))
	for id := range h.marked {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Session is one browser session: a controller with its host and canvas.
type Session struct {
	ID string

	mu           sync.Mutex
	host         *markingHost
	scene        *interact.Scene
	controller   *interact.Controller
	renderID     string
	snapshotHash string
	lastSeen     time.Time
}

// touch marks the session as used. Callers hold s.mu.
func (s *Session) touch(now time.Time) { s.lastSeen = now }

// Store keeps sessions in memory and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store. A zero ttl uses [DefaultSessionTTL].
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session whose controller is built by newController.
func (st *Store) Create(newController func(interact.Host, interact.Canvas) *interact.Controller) *Session {
	host := newMarkingHost()
	scene := &interact.Scene{}
	s := &Session{
		ID:         uuid.NewString(),
		host:       host,
		scene:      scene,
		controller: newController(host, scene),
		lastSeen:   st.now(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sweep()
	st.sessions[s.ID] = s
	return s
}

// Get returns a live session. Expired sessions are removed and not returned.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	expired := st.now().Sub(s.lastSeen) > st.ttl
	if !expired {
		s.touch(st.now())
	}
	s.mu.Unlock()
	if expired {
		delete(st.sessions, id)
		return nil, false
	}
	return s, true
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of stored sessions, including expired ones not
// yet swept.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sweep drops expired sessions. Callers hold st.mu.
func (st *Store) sweep() {
	now := st.now()
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := now.Sub(s.lastSeen) > st.ttl
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
		}
	}
}
