package kanban

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PubSub is the transport behind the cross-node bridge. *redis.PubSub in
// internal/store/redis satisfies it.
type PubSub interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// envelope tags every relayed event with the publishing instance so that an
// instance never re-delivers its own events.
type envelope struct {
	Origin uuid.UUID `json:"origin"`
	Event  Event     `json:"event"`
}

// Bridge relays committed events between service instances over pub/sub.
// Outbound: Broadcaster calls Publish after the local fan-out. Inbound: Run
// injects foreign events into the local fan-out only, so they are not
// republished.
type Bridge struct {
	pubsub   PubSub
	channel  string
	instance uuid.UUID
}

func NewBridge(pubsub PubSub, channel string) *Bridge {
	return &Bridge{
		pubsub:   pubsub,
		channel:  channel,
		instance: uuid.New(),
	}
}

// Publish relays one locally committed event to peer instances.
func (br *Bridge) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(envelope{Origin: br.instance, Event: ev})
	if err != nil {
		return fmt.Errorf("kanban.Bridge.Publish: marshal: %w", err)
	}

	if err := br.pubsub.Publish(ctx, br.channel, payload); err != nil {
		return fmt.Errorf("kanban.Bridge.Publish: %w", err)
	}

	return nil
}

// Run subscribes to the relay channel and fans foreign events out to the
// local listeners until ctx is cancelled.
func (br *Bridge) Run(ctx context.Context, local *Broadcaster) error {
	messages, cleanup, err := br.pubsub.Subscribe(ctx, br.channel)
	if err != nil {
		return fmt.Errorf("kanban.Bridge.Run: subscribe: %w", err)
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-messages:
			if !ok {
				return nil
			}

			var env envelope
			if err := json.Unmarshal(payload, &env); err != nil {
				log.Warn().Err(err).Msg("bridge: dropping malformed event payload")
				continue
			}
			if env.Origin == br.instance {
				continue
			}

			local.fanOut(ctx, env.Event)
		}
	}
}
