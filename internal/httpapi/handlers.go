package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Alex-Aron/LeagueOverlay/internal/fetcher"
	"github.com/Alex-Aron/LeagueOverlay/internal/hub"
	"github.com/Alex-Aron/LeagueOverlay/internal/liveclient"
	"github.com/Alex-Aron/LeagueOverlay/internal/overlay"
	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
	"github.com/Alex-Aron/LeagueOverlay/internal/types"
)

// Overlay is the read side of the consumer.
type Overlay interface {
	Snapshot() (schema.GameInfo, int, bool)
	View() overlay.View
}

type StateSource interface {
	State() fetcher.State
}

// LiveClient passes requests through to the game's live client API.
type LiveClient interface {
	FetchEvents(ctx context.Context) (schema.EventList, error)
	FetchPlayerScores(ctx context.Context, riotID string) (schema.Score, error)
}

type Deps struct {
	Hub        *hub.Hub
	Overlay    Overlay
	Fetcher    StateSource
	LiveClient LiveClient
	Toggles    chan<- struct{}
	Logger     *zap.Logger
}

type health struct {
	Status     string `json:"status"`
	LiveClient string `json:"liveClient,omitempty"`
	Clients    int    `json:"clients"`
	Published  int    `json:"published"`
}

func Healthz(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := health{Status: "ok"}
		if d.Fetcher != nil {
			resp.LiveClient = d.Fetcher.State().String()
		}
		if d.Hub != nil {
			s, ok := d.Hub.Snapshot(r.Context())
			if !ok {
				http.Error(w, "hub stopped", http.StatusServiceUnavailable)
				return
			}
			resp.Clients = s.NumClients
			resp.Published = s.Published
		}
		writeJSON(w, d.Logger, http.StatusOK, resp)
	}
}

// Snapshot returns the last allgamedata snapshot received.
func Snapshot(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, _, ok := d.Overlay.Snapshot()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, info)
	}
}

func Stats(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := d.Overlay.View()
		if v.Stats == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, types.FromView(v))
	}
}

func ToggleVisibility(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Toggles == nil {
			http.Error(w, "toggle unavailable", http.StatusServiceUnavailable)
			return
		}
		select {
		case d.Toggles <- struct{}{}:
			w.WriteHeader(http.StatusAccepted)
		case <-r.Context().Done():
			http.Error(w, "toggle not delivered", http.StatusServiceUnavailable)
		}
	}
}

func Events(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := d.LiveClient.FetchEvents(r.Context())
		if err != nil {
			upstreamError(w, d.Logger, err)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, events)
	}
}

// Scores returns the scoreboard of one player, the active player by default.
func Scores(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		riotID := r.URL.Query().Get("riotId")
		if riotID == "" {
			info, _, ok := d.Overlay.Snapshot()
			if !ok {
				http.Error(w, "missing riotId", http.StatusBadRequest)
				return
			}
			riotID = info.ActivePlayer.RiotID
		}
		score, err := d.LiveClient.FetchPlayerScores(r.Context(), riotID)
		if err != nil {
			upstreamError(w, d.Logger, err)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, score)
	}
}

func upstreamError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Warn("live client request failed", append(liveclient.LogFields(err), zap.Error(err))...)

	var httpErr *liveclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, "live client unavailable", http.StatusBadGateway)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Debug("failed to write response", zap.Error(err))
	}
}
