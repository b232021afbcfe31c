package kanban

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Relay forwards events to peer service instances. Implemented by Bridge;
// nil when the service runs single-node.
type Relay interface {
	Publish(ctx context.Context, ev Event) error
}

// Broadcaster delivers events to every registered listener, best-effort.
// One unreachable listener never blocks or fails delivery to the rest.
type Broadcaster struct {
	registry *Registry
	relay    Relay
}

func NewBroadcaster(registry *Registry, relay Relay) *Broadcaster {
	return &Broadcaster{registry: registry, relay: relay}
}

// Broadcast fans the event out to local listeners and, when a relay is
// configured, to peer instances. Callers invoke it strictly after the
// triggering mutation has committed.
func (b *Broadcaster) Broadcast(ctx context.Context, ev Event) {
	b.fanOut(ctx, ev)

	if b.relay != nil {
		if err := b.relay.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("event relay publish failed")
		}
	}
}

// fanOut delivers to the current snapshot only. A delivery error wrapping
// ErrUnreachable removes that listener from the registry; any other error is
// logged and the listener kept. No retry, no acknowledgement.
func (b *Broadcaster) fanOut(ctx context.Context, ev Event) {
	listeners := b.registry.Snapshot()

	for _, l := range listeners {
		err := l.Deliver(ctx, ev)
		if err == nil {
			continue
		}

		if errors.Is(err, ErrUnreachable) {
			b.registry.Unregister(l)
			log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("pruned unreachable listener")
			continue
		}

		log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("listener delivery error, keeping listener")
	}
}
