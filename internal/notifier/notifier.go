// FilePath: internal/notifier/notifier.go
package notifier

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/config"
	"github.com/Nakib00/IoT-project-Server/internal/hubservice"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	"github.com/Nakib00/IoT-project-Server/internal/repository"
)

// deviceConn is the slice of *websocket.Conn the hub actually uses. Keeping it
// small lets tests drive sessions with an in-memory fake.
type deviceConn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	Close() error
}

// session is one device connection. A session starts unauthenticated and is
// bound to a project token by a successful auth handshake. writeMu serializes
// handshake replies and broadcast pushes on the same connection.
type session struct {
	conn    deviceConn
	writeMu sync.Mutex

	authenticated bool
	token         string
}

func (s *session) send(hub *Hub, v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if hub.writeTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(hub.writeTimeout))
	}
	return s.conn.WriteJSON(v)
}

// Hub owns all live device connections and fans button state changes out to
// the sessions authenticated for the owning project.
type Hub struct {
	svc      *hubservice.HubService
	upgrader websocket.Upgrader

	writeTimeout   time.Duration
	maxMessageSize int64

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// New creates the hub and subscribes it to button releaseddata changes so the
// fan-out happens no matter which surface (REST or websocket) made the change.
func New(svc *hubservice.HubService, cfg config.WebsocketConfig) *Hub {
	h := &Hub{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Devices connect from firmware, not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeTimeout:   cfg.WriteTimeout,
		maxMessageSize: cfg.MaxMessageSize,
		sessions:       make(map[*session]struct{}),
	}

	svc.Events().On(hubservice.EventReleasedDataChanged, "notifier_fanout", func(change *repository.ReleasedDataChange) {
		h.broadcastReleasedData(change)
	})

	return h
}

// ServeHTTP upgrades the request and runs the session until the device
// disconnects or fails the handshake.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		nuts.L.Warnf("[Notifier] websocket upgrade failed: %v", err)
		return
	}
	h.runSession(r.Context(), conn)
}

// runSession is the read loop for a single connection.
func (h *Hub) runSession(ctx context.Context, conn deviceConn) {
	if h.maxMessageSize > 0 {
		conn.SetReadLimit(h.maxMessageSize)
	}

	sess := &session{conn: conn}
	h.register(sess)
	defer func() {
		h.unregister(sess)
		conn.Close()
	}()

	for {
		var msg models.DeviceMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				nuts.L.Warnf("[Notifier] connection dropped: %v", err)
			}
			return
		}
		if !h.handleMessage(ctx, sess, &msg) {
			return
		}
	}
}

// handleMessage dispatches one inbound frame. It returns false when the
// session must be terminated (the failed-auth contract).
func (h *Hub) handleMessage(ctx context.Context, sess *session, msg *models.DeviceMessage) bool {
	switch {
	case msg.Action == models.DeviceActionAuth && msg.Token != "":
		return h.handleAuth(ctx, sess, msg.Token)

	case msg.Action == models.DeviceActionData || msg.Action == models.DeviceActionUpdate:
		h.handleData(ctx, sess, msg)
		return true

	default:
		nuts.L.Infof("[Notifier] ignoring unknown action %q", msg.Action)
		return true
	}
}

func (h *Hub) handleAuth(ctx context.Context, sess *session, token string) bool {
	projectID, err := h.svc.AuthenticateDeviceToken(ctx, token)
	if err != nil {
		nuts.L.Warnf("[Notifier] device auth failed: %v", err)
		sess.send(h, models.AuthReply{Status: models.AuthStatusFailed})
		return false
	}

	h.mu.Lock()
	sess.authenticated = true
	sess.token = token
	h.mu.Unlock()

	nuts.L.Infof("[Notifier] device authenticated for project %s", projectID)
	if err := sess.send(h, models.AuthReply{Status: models.AuthStatusOK}); err != nil {
		nuts.L.Warnf("[Notifier] auth reply failed: %v", err)
		return false
	}
	return true
}

func (h *Hub) handleData(ctx context.Context, sess *session, msg *models.DeviceMessage) {
	h.mu.Lock()
	authed, token := sess.authenticated, sess.token
	h.mu.Unlock()

	if !authed {
		nuts.L.Warnf("[Notifier] dropping %s message from unauthenticated connection", msg.Action)
		return
	}
	if msg.Payload == nil || len(msg.Payload.Sensors) == 0 {
		return
	}

	if err := h.svc.IngestSensorData(ctx, token, msg.Payload.Sensors); err != nil {
		nuts.L.Warnf("[Notifier] ingestion failed: %v", err)
	}
}

// broadcastReleasedData pushes a button state change to every session
// authenticated for the owning project. Delivery is fire and forget; a failed
// write drops the connection rather than the update.
func (h *Hub) broadcastReleasedData(change *repository.ReleasedDataChange) {
	if change == nil || change.Button == nil {
		return
	}
	update := models.ReleasedDataUpdate{
		Action:       models.ActionReleasedDataUpdate,
		ButtonID:     change.Button.ID,
		ReleasedData: change.Button.ReleasedData,
	}

	h.mu.Lock()
	targets := make([]*session, 0, len(h.sessions))
	for sess := range h.sessions {
		if sess.authenticated && sess.token == change.ProjectToken {
			targets = append(targets, sess)
		}
	}
	h.mu.Unlock()

	for _, sess := range targets {
		if err := sess.send(h, update); err != nil {
			nuts.L.Warnf("[Notifier] push failed, closing connection: %v", err)
			h.unregister(sess)
			sess.conn.Close()
		}
	}
}

func (h *Hub) register(sess *session) {
	h.mu.Lock()
	h.sessions[sess] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(sess *session) {
	h.mu.Lock()
	delete(h.sessions, sess)
	h.mu.Unlock()
}

// ConnectionCount reports live sessions. Used by the health endpoint.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
