package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/metrics"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"
)

const wsWriteTimeout = 10 * time.Second

// Compile-time check
var _ usecase.ChatBroadcaster = (*Hub)(nil)

// wsSession wraps one subscriber connection. gorilla/websocket allows a
// single concurrent writer per connection, so every outbound frame goes
// through the session mutex.
type wsSession struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSession) write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteJSON(v)
}

// Hub fans appended chat messages out to websocket subscribers, keyed by
// job. Messages are durable before they reach the hub, so a slow or dead
// connection is simply dropped; the client catches up over the messages
// endpoint with ?after=.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*wsSession]struct{}
	log   *zerolog.Logger
}

func NewHub(logger *zerolog.Logger) *Hub {
	compLog := logger.With().Str("component", "ChatHub").Logger()
	return &Hub{
		conns: make(map[string]map[*wsSession]struct{}),
		log:   &compLog,
	}
}

func (h *Hub) add(jobID string, sess *wsSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[jobID] == nil {
		h.conns[jobID] = make(map[*wsSession]struct{})
	}
	h.conns[jobID][sess] = struct{}{}
}

func (h *Hub) remove(jobID string, sess *wsSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[jobID], sess)
	if len(h.conns[jobID]) == 0 {
		delete(h.conns, jobID)
	}
}

// Broadcast implements usecase.ChatBroadcaster.
func (h *Hub) Broadcast(jobID string, msg *model.ChatMessage) {
	h.mu.RLock()
	subs := make([]*wsSession, 0, len(h.conns[jobID]))
	for sess := range h.conns[jobID] {
		subs = append(subs, sess)
	}
	h.mu.RUnlock()

	view := newMessageView(msg)
	for _, sess := range subs {
		if err := sess.write(view); err != nil {
			h.log.Debug().Err(err).Str("job_id", jobID).Msg("dropping websocket subscriber")
			h.remove(jobID, sess)
			_ = sess.conn.Close()
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session cookies carry auth; cross-origin browser pages still need a
	// valid session to get here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsHandler subscribes the caller to a job's chat stream. Read access is
// the same check as listing messages; the socket is push-only and inbound
// frames are discarded.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if _, err := s.jobUC.Get(r.Context(), jobID, actorFrom(r.Context())); err != nil {
		s.fail(w, err)
		return
	}
	if s.hub == nil {
		writeError(w, http.StatusNotImplemented, "push transport not configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		s.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := &wsSession{conn: conn}
	s.hub.add(jobID, sess)
	metrics.IncWSConnections()
	defer func() {
		s.hub.remove(jobID, sess)
		metrics.DecWSConnections()
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
