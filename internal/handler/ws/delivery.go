package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
	wsmarshaller "github.com/opengram/realtime-delivery-service/internal/handler/marshaller/ws"
	"github.com/opengram/realtime-delivery-service/internal/service"
)

const (
	writeTimeout = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	sendTimeout  = 5 * time.Second
	maxFrameSize = 64 << 10
)

type WSHandler struct {
	logger    *slog.Logger
	auther    service.Auther
	deliverer service.Deliverer
	messenger service.Messenger
	upgrader  websocket.Upgrader
}

func NewWSHandler(logger *slog.Logger, auther service.Auther, deliverer service.Deliverer, messenger service.Messenger) *WSHandler {
	return &WSHandler{
		logger:    logger,
		auther:    auther,
		deliverer: deliverer,
		messenger: messenger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true }, // Security: adjust for production
		},
	}
}

// ServeHTTP performs the credential handshake before the protocol upgrade;
// an invalid token never reaches the registry.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := model.NewSession()
	sess.BeginAuth()

	claims, err := h.auther.Verify(bearerToken(r))
	if err != nil {
		sess.Reject()
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if !sess.Authenticate(claims.UserID) {
		http.Error(w, service.ErrTokenInvalid.Error(), http.StatusUnauthorized)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", "error", err)
		return
	}
	defer wsConn.Close()

	conn, err := h.deliverer.Subscribe(r.Context(), sess)
	if err != nil {
		h.logger.Error("ws subscribe failed", "error", err)
		return
	}
	defer h.deliverer.Disconnect(context.WithoutCancel(r.Context()), sess, conn)

	h.logger.Info("ws opened", "user_id", claims.UserID, "conn_id", conn.GetID())

	welcome := event.NewSystemEvent(claims.UserID, event.Connected, event.PriorityHigh, &model.ConnectedPayload{
		Ok:            true,
		ConnectionID:  conn.GetID().String(),
		ServerVersion: model.ServerVersion,
	})
	conn.Send(welcome, sendTimeout)

	go h.writePump(r.Context(), wsConn, conn)
	h.readPump(r.Context(), wsConn, sess, conn)
}

// readPump consumes client frames until the socket dies. It owns the
// session lifecycle: returning triggers the deferred Disconnect.
func (h *WSHandler) readPump(ctx context.Context, wsConn *websocket.Conn, sess *model.Session, conn registry.Connector) {
	wsConn.SetReadLimit(maxFrameSize)
	_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		return wsConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("ws read failed", "error", err, "conn_id", conn.GetID())
			}
			return
		}

		var in InboundEvent
		if err := json.Unmarshal(data, &in); err != nil {
			h.logger.Debug("undecodable client frame dropped", "error", err)
			continue
		}

		switch in.Event {
		case EventAddUser:
			var announcedID string
			if err := json.Unmarshal(in.Payload, &announcedID); err != nil {
				continue
			}
			h.deliverer.Announce(ctx, sess, conn, announcedID)

		case EventSendMessage:
			var p SendMessagePayload
			if err := json.Unmarshal(in.Payload, &p); err != nil {
				continue
			}
			if err := h.messenger.SendMessage(ctx, sess, p.ReceiverID, p.Content); err != nil {
				h.logger.Error("send_message failed", "error", err, "user_id", sess.UserID())
			}

		default:
			h.logger.Debug("unknown client event ignored", "event", in.Event)
		}
	}
}

// writePump moves events from the connector mailbox onto the wire and keeps
// the socket alive with pings. Closing the socket on exit unblocks readPump.
func (h *WSHandler) writePump(ctx context.Context, wsConn *websocket.Conn, conn registry.Connector) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer wsConn.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			_ = wsConn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case ev, ok := <-conn.Recv():
			if !ok {
				_ = wsConn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = wsConn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			data, err := wsmarshaller.MarshallDeliveryEvent(ev)
			if err != nil {
				h.logger.Error("ws event marshal failed", "error", err)
				continue
			}

			_ = wsConn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := wsConn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warn("ws send failed", "error", err, "conn_id", conn.GetID())
				return
			}
		}
	}
}

// bearerToken extracts the credential from the token query parameter or the
// Authorization header, in that order.
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return ""
}
