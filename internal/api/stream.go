package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/vovakirdan/pattern-island/internal/events"
)

const writeTimeout = 5 * time.Second

// handleEvents streams game events as JSON envelopes over a websocket.
// The optional profile query parameter limits the stream to one player.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	bus := s.game.Bus()
	if bus == nil {
		writeError(w, http.StatusServiceUnavailable, "event stream disabled")
		return
	}

	// Subscribe before the handshake so no event published after the
	// client connects is missed.
	ch, cancel := bus.Subscribe()
	defer cancel()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow()

	s.metrics.streams.Inc()
	defer s.metrics.streams.Dec()
	s.log.Debug("event stream opened", "profile", profile, "remote", r.RemoteAddr)

	// Clients never send; CloseRead cancels ctx when they disconnect.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if profile != "" && profileOf(ev) != profile {
				continue
			}
			data, err := json.Marshal(events.Wrap(ev))
			if err != nil {
				s.log.Error("cannot encode event", "kind", ev.Kind(), "err", err)
				continue
			}
			if err := write(ctx, conn, data); err != nil {
				s.log.Debug("event stream closed", "profile", profile, "err", err)
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

func profileOf(ev events.Event) string {
	switch e := ev.(type) {
	case events.Click:
		return e.Profile
	case events.Hover:
		return e.Profile
	case events.HintRequested:
		return e.Profile
	case events.HintResolved:
		return e.Profile
	case events.ChoiceCorrect:
		return e.Profile
	case events.ChoiceWrong:
		return e.Profile
	case events.LevelCompleted:
		return e.Profile
	case events.BadgeUnlocked:
		return e.Profile
	case events.Celebration:
		return e.Profile
	default:
		return ""
	}
}
