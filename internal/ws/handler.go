package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/Alex-Aron/LeagueOverlay/internal/hub"
	"github.com/Alex-Aron/LeagueOverlay/internal/overlay"
	"github.com/Alex-Aron/LeagueOverlay/internal/types"
)

const (
	writeTimeout = 3 * time.Second
	readTimeout  = 30 * time.Second
	outboxSize   = 8
)

// Handler streams overlay views to a websocket client. A ToggleVisibility
// message from the client is forwarded to toggles; with nil toggles it is
// answered with an Error.
func Handler(h *hub.Hub, toggles chan<- struct{}, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// The overlay page is served from a local file or dev server.
			OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan overlay.View, outboxSize)
		clientID := randID(6)
		log := logger.With(zap.String("client_id", clientID))

		if !h.Send(hub.Join{ClientID: clientID, Outbox: out}) {
			conn.Close(websocket.StatusGoingAway, "shutting down")
			return
		}
		log.Debug("overlay client connected")
		defer func() {
			h.Send(hub.Leave{ClientID: clientID})
			log.Debug("overlay client disconnected")
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for v := range out {
				if err := writeJSON(writeCtx, conn, types.FromView(v)); err != nil {
					log.Debug("write failed", zap.Error(err))
				}
			}
			// Outbox closed by the hub: we left, were too slow, or it shut down.
			conn.Close(websocket.StatusGoingAway, "stream ended")
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = writeJSON(r.Context(), conn, types.ErrorMessage("bad json"))
				continue
			}

			switch cm.Type {
			case types.MsgToggleVisibility:
				if toggles == nil {
					_ = writeJSON(r.Context(), conn, types.ErrorMessage("toggle unavailable"))
					continue
				}
				select {
				case toggles <- struct{}{}:
				case <-r.Context().Done():
					return
				}
			default:
				_ = writeJSON(r.Context(), conn, types.ErrorMessage("unknown type"))
			}
		}
	}
}

func writeJSON(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
