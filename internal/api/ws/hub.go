package ws

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/plannyhq/planny/internal/kanban"
)

// ListenerService is the registration half of the kanban service.
// *kanban.Service satisfies it.
type ListenerService interface {
	RegisterListener(l kanban.Listener)
	UnregisterListener(l kanban.Listener)
}

// Hub upgrades client connections and binds their lifetime to a listener
// registration: registered on accept, unregistered on disconnect.
type Hub struct {
	svc ListenerService
}

func NewHub(svc ListenerService) *Hub {
	return &Hub{svc: svc}
}

// ServeEvents handles the event stream endpoint. Events flow server-to-client
// only; the read loop exists to detect the peer going away.
func (h *Hub) ServeEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	c := newClient(conn)
	h.svc.RegisterListener(c)
	defer h.svc.UnregisterListener(c)

	log.Debug().Stringer("listener", c.id).Msg("listener connected")

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			log.Debug().Stringer("listener", c.id).Err(err).Msg("listener disconnected")
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		}
	}
}
