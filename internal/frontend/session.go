package frontend

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mdayat/todo-app/internal/todoclient"
)

const (
	sessionCookie      = "todo_session"
	sessionIdleTimeout = 30 * time.Minute
)

// ClientFactory builds the TodoClient of a new browser session. Every session
// gets its own view model, so alerts, the input draft and the freshness of
// the list never leak between visitors.
type ClientFactory func() *todoclient.TodoClient

type session struct {
	mu       sync.Mutex
	client   *todoclient.TodoClient
	lastSeen time.Time
}

type sessions struct {
	mu        sync.Mutex
	newClient ClientFactory
	byId      map[string]*session
	now       func() time.Time
}

func newSessions(newClient ClientFactory) *sessions {
	return &sessions{
		newClient: newClient,
		byId:      make(map[string]*session),
		now:       time.Now,
	}
}

// acquire returns the caller's session locked, creating it and setting the
// cookie when the request carries no known session. Requests of one session
// run one at a time; the caller must unlock.
func (s *sessions) acquire(res http.ResponseWriter, req *http.Request) *session {
	now := s.now()

	s.mu.Lock()
	s.prune(now)

	var sess *session
	if cookie, err := req.Cookie(sessionCookie); err == nil {
		sess = s.byId[cookie.Value]
	}

	if sess == nil {
		sessionId := uuid.NewString()
		sess = &session{client: s.newClient()}
		s.byId[sessionId] = sess

		http.SetCookie(res, &http.Cookie{
			Name:     sessionCookie,
			Value:    sessionId,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	sess.lastSeen = now
	s.mu.Unlock()

	sess.mu.Lock()
	return sess
}

func (s *sessions) prune(now time.Time) {
	for sessionId, sess := range s.byId {
		if now.Sub(sess.lastSeen) > sessionIdleTimeout {
			delete(s.byId, sessionId)
		}
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byId)
}
