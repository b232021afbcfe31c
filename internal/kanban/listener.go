package kanban

import (
	"context"
	"errors"
)

// ErrUnreachable marks a delivery failure as transport-level. Deliver
// implementations wrap connection errors with it; the fan-out prunes a
// listener only for errors carrying this sentinel and keeps it for anything
// else, so a bug inside a listener does not silently drop the subscription.
var ErrUnreachable = errors.New("kanban: listener unreachable")

// Listener is one connected client's callback endpoint. Implementations must
// be comparable (pointer receivers) because the registry keys on identity.
// Any transport satisfying this interface is a valid listener handle; the
// service never sees more than Deliver.
type Listener interface {
	Deliver(ctx context.Context, ev Event) error
}
